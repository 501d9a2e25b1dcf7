package screens

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/gestion-commandes/internal/client"
	"github.com/diewo77/gestion-commandes/internal/confirm"
	"github.com/diewo77/gestion-commandes/internal/form"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

type DocumentKind int

const (
	KindOrder DocumentKind = iota
	KindProforma
)

func (k DocumentKind) String() string {
	if k == KindProforma {
		return "proforma"
	}
	return "order"
}

type ProductLister interface {
	List(ctx context.Context) ([]models.Product, error)
}

type DocumentSubmitter interface {
	SubmitOrder(ctx context.Context, o models.Order) (models.Order, error)
	SubmitProforma(ctx context.Context, p models.Proforma) (models.Proforma, error)
}

// NewDocumentScreen builds an order or a pro-forma from selected products.
// Header totals are optional here; when typed they must be numbers.
type NewDocumentScreen struct {
	confirmation
	kind      DocumentKind
	products  ProductLister
	submitter DocumentSubmitter
	list      ListState[models.Product]
	deps      Deps
	lastID    int

	Header    *form.DocumentForm
	Selection *form.Selection
}

func NewOrderScreen(products ProductLister, submitter DocumentSubmitter, deps Deps) *NewDocumentScreen {
	return newDocumentScreen(KindOrder, products, submitter, deps)
}

// NewProformaScreen starts a pro-forma for codeClient, which may be empty.
func NewProformaScreen(products ProductLister, submitter DocumentSubmitter, codeClient string, deps Deps) *NewDocumentScreen {
	s := newDocumentScreen(KindProforma, products, submitter, deps)
	s.Header.CodeClient = codeClient
	return s
}

func newDocumentScreen(kind DocumentKind, products ProductLister, submitter DocumentSubmitter, deps Deps) *NewDocumentScreen {
	deps = deps.withDefaults()
	return &NewDocumentScreen{
		confirmation: confirmation{lang: deps.Lang},
		kind:         kind,
		products:     products,
		submitter:    submitter,
		deps:         deps,
		Header:       form.NewDocumentForm(),
		Selection:    form.NewSelection(),
	}
}

func (s *NewDocumentScreen) Kind() DocumentKind { return s.kind }

// LastID is the server id of the last submitted document.
func (s *NewDocumentScreen) LastID() int { return s.lastID }

func (s *NewDocumentScreen) Open(ctx context.Context) error {
	route := RouteNewOrder
	if s.kind == KindProforma {
		route = RouteNewProf
	}
	if err := s.deps.Session.Guard(route); err != nil {
		s.deps.fail("auth.required")
		return err
	}
	return s.Refresh(ctx)
}

func (s *NewDocumentScreen) Refresh(ctx context.Context) error {
	rctx, seq := s.list.Begin(ctx)
	items, err := s.products.List(rctx)
	if !s.list.Apply(seq, items, err) {
		return nil
	}
	if err != nil {
		s.deps.fail("product.list_failed")
		return err
	}
	return nil
}

func (s *NewDocumentScreen) Products() []models.Product { return s.list.Items() }
func (s *NewDocumentScreen) View() View                 { return s.list.View() }

// Toggle selects or deselects a listed product. Unknown codes report false.
func (s *NewDocumentScreen) Toggle(code string) bool {
	for _, p := range s.list.Items() {
		if p.Code == code {
			s.Selection.Toggle(p)
			return true
		}
	}
	return false
}

func (s *NewDocumentScreen) SetQuantity(code, text string) bool {
	return s.Selection.SetQuantity(code, text)
}

// Submit validates the selection and stages the submission.
func (s *NewDocumentScreen) Submit() error {
	op := s.kind.String() + "s.submit"
	codeClient := strings.TrimSpace(s.Header.CodeClient)
	if v := s.Selection.Validate(codeClient); !v.Empty() {
		switch {
		case v["codeClient"] != "":
			s.deps.fail("selection.no_client")
		case v["produits"] != "":
			s.deps.fail("selection.empty")
		default:
			s.deps.fail("selection.bad_quantity")
		}
		return client.Invalid(op, v)
	}
	doc, err := s.header(codeClient)
	if err != nil {
		s.deps.fail("form.incomplete")
		var v validation.Violations
		if !errors.As(err, &v) {
			v = validation.Violations{"date": "invalid_date"}
		}
		return client.Invalid(op, v)
	}
	doc.Lines = s.Selection.Lines()

	target := "la commande"
	if s.kind == KindProforma {
		target = "la proforma"
	}
	return s.gate.Stage(confirm.Intent{Action: confirm.ActionSubmit, Target: target}, func(ctx context.Context) error {
		id, err := s.send(ctx, doc)
		if err != nil {
			s.deps.failWith(err, "error.generic")
			return err
		}
		s.lastID = id
		s.deps.info(s.kind.String() + ".added")
		s.Selection.Clear()
		s.Header.Reset()
		return nil
	})
}

func (s *NewDocumentScreen) header(codeClient string) (models.Order, error) {
	h := s.Header
	v := validation.Violations{}
	validation.Date("date", h.Date, v)
	validation.Numeric("totalHT", h.TotalHT, v)
	validation.Numeric("totalTTC", h.TotalTTC, v)
	validation.Numeric("TVA", h.TVA, v)
	if !v.Empty() {
		return models.Order{}, v
	}
	d := models.Today()
	if strings.TrimSpace(h.Date) != "" {
		d, _ = models.ParseDate(h.Date)
	}
	num := func(s string) models.Number { n, _ := models.ParseNumber(s); return n }
	return models.Order{
		CodeClient: codeClient,
		Date:       d,
		TotalHT:    num(h.TotalHT),
		TotalTTC:   num(h.TotalTTC),
		TVA:        num(h.TVA),
	}, nil
}

func (s *NewDocumentScreen) send(ctx context.Context, o models.Order) (int, error) {
	if s.kind == KindOrder {
		created, err := s.submitter.SubmitOrder(ctx, o)
		return created.ID, err
	}
	created, err := s.submitter.SubmitProforma(ctx, models.Proforma{
		CodeClient: o.CodeClient,
		Date:       o.Date,
		TotalHT:    o.TotalHT,
		TotalTTC:   o.TotalTTC,
		TVA:        o.TVA,
		Lines:      models.ProformaLines(o.Lines),
	})
	return created.ID, err
}
