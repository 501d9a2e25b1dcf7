package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

// OrderLines manages the products of one order.
type OrderLines struct {
	c *Client
}

func (c *Client) OrderLines() *OrderLines { return &OrderLines{c: c} }

func (l *OrderLines) List(ctx context.Context, orderID int) ([]models.OrderLine, error) {
	const op = "order_lines.list"
	if orderID <= 0 {
		return nil, Invalid(op, validation.Violations{"idCommande": "required"})
	}
	q := url.Values{"idCommande": {strconv.Itoa(orderID)}}
	res, err := l.c.do(ctx, op, http.MethodGet, models.PathOrderLines+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	lines := []models.OrderLine{}
	if err := res.decodeData(&lines); err != nil {
		return nil, &Error{Op: op, Kind: KindServer, Code: CodeBadResponse, Status: res.Status, Err: err}
	}
	if lines == nil {
		lines = []models.OrderLine{}
	}
	for i := range lines {
		if lines[i].OrderID == 0 {
			lines[i].OrderID = orderID
		}
	}
	return lines, nil
}

func (l *OrderLines) Add(ctx context.Context, line models.OrderLine) error {
	const op = "order_lines.add"
	if v := line.Validate(); !v.Empty() {
		return Invalid(op, v)
	}
	_, err := l.c.do(ctx, op, http.MethodPost, models.PathOrderLines, line)
	return err
}

func (l *OrderLines) Remove(ctx context.Context, orderID int, codeProduit string) error {
	const op = "order_lines.remove"
	v := validation.Violations{}
	validation.PositiveInt("idCommande", orderID, v)
	validation.Required("codeProduit", codeProduit, v)
	if !v.Empty() {
		return Invalid(op, v)
	}
	payload := map[string]any{"idCommande": orderID, "codeProduit": codeProduit}
	_, err := l.c.do(ctx, op, http.MethodDelete, models.PathOrderLines, payload)
	return err
}
