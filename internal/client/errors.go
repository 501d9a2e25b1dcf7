package client

import (
	"errors"
	"fmt"

	"github.com/diewo77/gestion-commandes/validation"
)

// Kind classifies a failed repository call.
type Kind int

const (
	KindValidation Kind = iota + 1 // rejected before any network I/O
	KindNetwork                    // transport failure, no usable response
	KindServer                     // server answered with a failure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
)

// Structured error codes.
const (
	CodeValidationFailed   = "validation_failed"
	CodeNotFound           = "not_found"
	CodeAlreadyExists      = "already_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInternal           = "internal_error"
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeBadResponse        = "bad_response"
)

// Error is returned by every repository operation.
type Error struct {
	Op         string
	Kind       Kind
	Code       string
	Status     int
	Message    string
	Violations validation.Violations
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Code
	}
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	}
	return false
}

// Invalid wraps violations found before a call.
func Invalid(op string, v validation.Violations) *Error {
	return &Error{Op: op, Kind: KindValidation, Code: CodeValidationFailed, Violations: v, Err: v}
}

func networkError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindNetwork, Err: err}
}

// KindOf returns the kind of a client error, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// CodeOf returns the structured code of a client error, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

func codeForStatus(status int) string {
	switch {
	case status == 400 || status == 422:
		return CodeBadRequest
	case status == 401 || status == 403:
		return CodeUnauthorized
	case status == 404:
		return CodeNotFound
	case status == 409:
		return CodeAlreadyExists
	case status >= 500:
		return CodeInternal
	default:
		return CodeBadRequest
	}
}
