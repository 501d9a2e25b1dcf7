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

// Routes guarded by the session.
const (
	RouteClients   = "/(tabs)/clients"
	RouteProducts  = "/(tabs)/produits"
	RouteOrders    = "/(tabs)/commandes"
	RouteLines     = "/(tabs)/commandes/details"
	RouteProformas = "/(tabs)/proformas"
	RouteNewOrder  = "/(tabs)/commandes/nouvelle"
	RouteNewProf   = "/(tabs)/proformas/nouvelle"
)

// Repository is the part of client.Repository a list screen needs.
type Repository[T any, K comparable] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, key K) error
}

// Record is an entity shown in a list.
type Record[K comparable] interface {
	Key() K
	Label() string
}

// Form turns user input into an entity.
type Form[T any] interface {
	Build() (T, error)
	Load(item T)
	Reset()
	Editing() bool
}

// CRUDScreen lists one entity and adds, edits and deletes it. Creation runs
// at once; edits and deletes wait for confirmation.
type CRUDScreen[T Record[K], K comparable] struct {
	confirmation
	entity string
	route  string
	repo   Repository[T, K]
	form   Form[T]
	list   ListState[T]
	deps   Deps
	// refetch reloads the list after a delete instead of dropping the row locally.
	refetch bool
}

func newCRUDScreen[T Record[K], K comparable](entity, route string, repo Repository[T, K], f Form[T], deps Deps) *CRUDScreen[T, K] {
	deps = deps.withDefaults()
	return &CRUDScreen[T, K]{
		confirmation: confirmation{lang: deps.Lang},
		entity:       entity,
		route:        route,
		repo:         repo,
		form:         f,
		deps:         deps,
	}
}

// Open checks the session then loads the list.
func (s *CRUDScreen[T, K]) Open(ctx context.Context) error {
	if err := s.deps.Session.Guard(s.route); err != nil {
		s.deps.fail("auth.required")
		return err
	}
	return s.Refresh(ctx)
}

// Refresh reloads the list. A refresh overtaken by a newer one returns nil
// without touching the list.
func (s *CRUDScreen[T, K]) Refresh(ctx context.Context) error {
	rctx, seq := s.list.Begin(ctx)
	items, err := s.repo.List(rctx)
	if !s.list.Apply(seq, items, err) {
		return nil
	}
	if err != nil {
		s.deps.Logger.Warn("list failed", "entity", s.entity, "err", err)
		s.deps.fail(s.entity + ".list_failed")
		return err
	}
	return nil
}

func (s *CRUDScreen[T, K]) Items() []T { return s.list.Items() }
func (s *CRUDScreen[T, K]) View() View { return s.list.View() }
func (s *CRUDScreen[T, K]) Err() error { return s.list.Err() }

// Find returns the visible item stored under key.
func (s *CRUDScreen[T, K]) Find(key K) (T, bool) {
	for _, it := range s.list.Items() {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// NewForm clears the form for a creation.
func (s *CRUDScreen[T, K]) NewForm() { s.form.Reset() }

// Edit loads item into the form; its key becomes read-only.
func (s *CRUDScreen[T, K]) Edit(item T) { s.form.Load(item) }

// Save creates the record, or stages the update when editing.
func (s *CRUDScreen[T, K]) Save(ctx context.Context) error {
	op := s.entity + ".save"
	item, err := s.form.Build()
	if err != nil {
		var v validation.Violations
		if !errors.As(err, &v) {
			v = validation.Violations{}
		}
		s.deps.fail("form.incomplete")
		return client.Invalid(op, v)
	}
	if !s.form.Editing() {
		if _, err := s.repo.Create(ctx, item); err != nil {
			s.deps.failWith(err, "error.generic")
			return err
		}
		s.deps.info(s.entity + ".added")
		s.form.Reset()
		return s.Refresh(ctx)
	}
	return s.gate.Stage(confirm.Intent{Action: confirm.ActionEdit, Target: item.Label()}, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, item); err != nil {
			s.deps.failWith(err, "error.generic")
			return err
		}
		s.deps.info(s.entity + ".updated")
		s.form.Reset()
		return s.Refresh(ctx)
	})
}

// RequestDelete stages the deletion of item.
func (s *CRUDScreen[T, K]) RequestDelete(item T) error {
	key := item.Key()
	return s.gate.Stage(confirm.Intent{Action: confirm.ActionDelete, Target: item.Label()}, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, key); err != nil {
			s.deps.failWith(err, "error.delete")
			return err
		}
		s.deps.info(s.entity + ".deleted")
		if s.refetch {
			return s.Refresh(ctx)
		}
		s.list.Remove(func(it T) bool { return it.Key() == key })
		return nil
	})
}

type ClientsScreen struct {
	*CRUDScreen[models.Client, string]
	Form *form.ClientForm
}

func NewClientsScreen(repo Repository[models.Client, string], deps Deps) *ClientsScreen {
	f := &form.ClientForm{}
	return &ClientsScreen{newCRUDScreen[models.Client, string]("client", RouteClients, repo, f, deps), f}
}

type ProductsScreen struct {
	*CRUDScreen[models.Product, string]
	Form *form.ProductForm
}

func NewProductsScreen(repo Repository[models.Product, string], deps Deps) *ProductsScreen {
	f := &form.ProductForm{}
	return &ProductsScreen{newCRUDScreen[models.Product, string]("product", RouteProducts, repo, f, deps), f}
}

type orderForm struct{ *form.DocumentForm }

func (f orderForm) Build() (models.Order, error) { return f.BuildOrder() }
func (f orderForm) Load(o models.Order)          { f.LoadOrder(o) }

type proformaForm struct{ *form.DocumentForm }

func (f proformaForm) Build() (models.Proforma, error) { return f.BuildProforma() }
func (f proformaForm) Load(p models.Proforma)          { f.LoadProforma(p) }

type OrdersScreen struct {
	*CRUDScreen[models.Order, int]
	Form *form.DocumentForm
}

func NewOrdersScreen(repo Repository[models.Order, int], deps Deps) *OrdersScreen {
	f := form.NewDocumentForm()
	s := &OrdersScreen{newCRUDScreen[models.Order, int]("order", RouteOrders, repo, orderForm{f}, deps), f}
	s.refetch = true
	return s
}

type ProformasScreen struct {
	*CRUDScreen[models.Proforma, int]
	Form *form.DocumentForm
}

func NewProformasScreen(repo Repository[models.Proforma, int], deps Deps) *ProformasScreen {
	f := form.NewDocumentForm()
	s := &ProformasScreen{newCRUDScreen[models.Proforma, int]("proforma", RouteProformas, repo, proformaForm{f}, deps), f}
	s.refetch = true
	return s
}
