package client

import (
	"context"
	"net/http"

	"github.com/diewo77/gestion-commandes/internal/models"
)

// SubmitOrder creates an order together with its lines in one call.
func (c *Client) SubmitOrder(ctx context.Context, o models.Order) (models.Order, error) {
	const op = "orders.submit"
	if v := o.ValidateSubmission(); !v.Empty() {
		return o, Invalid(op, v)
	}
	o.ID = 0
	return submit(ctx, c, op, models.PathAddOrder, o)
}

// SubmitProforma creates a pro-forma together with its lines in one call.
func (c *Client) SubmitProforma(ctx context.Context, p models.Proforma) (models.Proforma, error) {
	const op = "proformas.submit"
	if v := p.ValidateSubmission(); !v.Empty() {
		return p, Invalid(op, v)
	}
	p.ID = 0
	return submit(ctx, c, op, models.PathAddProforma, p)
}

func submit[T any](ctx context.Context, c *Client, op, path string, doc T) (T, error) {
	res, err := c.do(ctx, op, http.MethodPost, path, doc)
	if err != nil {
		return doc, err
	}
	created := doc
	if err := res.decodeData(&created); err != nil {
		return doc, nil
	}
	return created, nil
}
