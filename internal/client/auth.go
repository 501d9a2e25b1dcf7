package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

// Identity is what a successful login or registration yields.
type Identity struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	return c.authenticate(ctx, "auth.login", models.PathLogin, email, password)
}

func (c *Client) Register(ctx context.Context, email, password string) (Identity, error) {
	return c.authenticate(ctx, "auth.register", models.PathRegister, email, password)
}

func (c *Client) authenticate(ctx context.Context, op, path, email, password string) (Identity, error) {
	v := validation.Violations{}
	validation.Required("email", email, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		return Identity{}, Invalid(op, v)
	}
	res, err := c.do(ctx, op, http.MethodPost, path, map[string]string{"email": email, "password": password})
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Kind == KindServer && e.Code == CodeUnauthorized {
			e.Code = CodeInvalidCredentials
		}
		return Identity{}, err
	}
	var id Identity
	if err := json.Unmarshal(res.Body, &id); err != nil || id.Email == "" {
		id.Email = email
	}
	return id, nil
}
