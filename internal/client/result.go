package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Result is a backend response normalized to one shape, whatever the
// endpoint's convention (boolean success, error/message keys, bare arrays).
type Result struct {
	Success bool
	Status  int
	Message string
	Code    string
	Data    json.RawMessage // list payload or "data" member
	Body    json.RawMessage // whole body, for endpoint specific members
}

var errUnexpectedBody = errors.New("unexpected response body")

// decodeResult normalizes a raw response. A "success" member wins; otherwise
// an "error" member means failure and a "message" member means success;
// otherwise the HTTP status decides.
func decodeResult(status int, raw []byte) (*Result, error) {
	body := bytes.TrimSpace(raw)
	ok := status >= 200 && status < 300
	res := &Result{Status: status, Body: body, Success: ok}
	if len(body) == 0 {
		return res, nil
	}
	switch body[0] {
	case '[':
		res.Data = body
	case '{':
		var env struct {
			Success *bool           `json:"success"`
			Message string          `json:"message"`
			Error   string          `json:"error"`
			Code    string          `json:"code"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", errUnexpectedBody, err)
		}
		res.Message, res.Code, res.Data = env.Message, env.Code, env.Data
		switch {
		case env.Success != nil:
			res.Success = *env.Success && ok
		case env.Error != "":
			res.Success = false
		}
		if env.Error != "" {
			res.Message = env.Error
		}
	default:
		if !bytes.Equal(body, []byte("null")) {
			if ok {
				return nil, errUnexpectedBody
			}
			// non-JSON error pages
			res.Message = string(body)
		}
	}
	return res, nil
}

// decodeData unmarshals the payload into out. Missing or null payloads
// leave out untouched.
func (r *Result) decodeData(out any) error {
	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}
