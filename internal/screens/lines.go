package screens

import (
	"context"
	"errors"

	"github.com/diewo77/gestion-commandes/internal/client"
	"github.com/diewo77/gestion-commandes/internal/confirm"
	"github.com/diewo77/gestion-commandes/internal/form"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

type LineRepository interface {
	List(ctx context.Context, orderID int) ([]models.OrderLine, error)
	Add(ctx context.Context, line models.OrderLine) error
	Remove(ctx context.Context, orderID int, codeProduit string) error
}

// LinesScreen shows the products of one order.
type LinesScreen struct {
	confirmation
	orderID int
	repo    LineRepository
	list    ListState[models.OrderLine]
	deps    Deps
	Form    *form.LineForm
}

func NewLinesScreen(orderID int, repo LineRepository, deps Deps) *LinesScreen {
	deps = deps.withDefaults()
	return &LinesScreen{
		confirmation: confirmation{lang: deps.Lang},
		orderID:      orderID,
		repo:         repo,
		deps:         deps,
		Form:         &form.LineForm{},
	}
}

func (s *LinesScreen) OrderID() int { return s.orderID }

func (s *LinesScreen) Open(ctx context.Context) error {
	if err := s.deps.Session.Guard(RouteLines); err != nil {
		s.deps.fail("auth.required")
		return err
	}
	if s.orderID <= 0 {
		s.deps.fail("line.no_order")
		return client.Invalid("order_lines.open", validation.Violations{"idCommande": "required"})
	}
	return s.Refresh(ctx)
}

func (s *LinesScreen) Refresh(ctx context.Context) error {
	rctx, seq := s.list.Begin(ctx)
	lines, err := s.repo.List(rctx, s.orderID)
	if !s.list.Apply(seq, lines, err) {
		return nil
	}
	if err != nil {
		s.deps.Logger.Warn("list failed", "entity", "line", "order", s.orderID, "err", err)
		s.deps.fail("line.list_failed")
		return err
	}
	return nil
}

func (s *LinesScreen) Items() []models.OrderLine { return s.list.Items() }
func (s *LinesScreen) View() View                { return s.list.View() }

// Add adds the line typed in Form to the order.
func (s *LinesScreen) Add(ctx context.Context) error {
	line, err := s.Form.Build(s.orderID)
	if err != nil {
		var v validation.Violations
		if !errors.As(err, &v) {
			v = validation.Violations{}
		}
		s.deps.fail("form.incomplete")
		return client.Invalid("order_lines.add", v)
	}
	if err := s.repo.Add(ctx, line); err != nil {
		s.deps.failWith(err, "error.generic")
		return err
	}
	s.deps.info("line.added")
	s.Form.Reset()
	return s.Refresh(ctx)
}

// RequestRemove stages the removal of line from the order.
func (s *LinesScreen) RequestRemove(line models.OrderLine) error {
	code := line.CodeProduit
	return s.gate.Stage(confirm.Intent{Action: confirm.ActionDelete, Target: line.Label()}, func(ctx context.Context) error {
		if err := s.repo.Remove(ctx, s.orderID, code); err != nil {
			s.deps.failWith(err, "error.delete")
			return err
		}
		s.deps.info("line.removed")
		return s.Refresh(ctx)
	})
}
