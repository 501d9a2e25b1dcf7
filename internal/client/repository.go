package client

import (
	"context"
	"net/http"

	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

// Entity is a record the backend stores under a key of type K.
type Entity[K comparable] interface {
	Key() K
	Validate() validation.Violations
}

// Resource describes the endpoints of one entity.
type Resource struct {
	Name       string
	ListPath   string
	CreatePath string
	UpdatePath string
	DeletePath string
	KeyField   string // JSON member carrying the key in delete requests
}

var (
	ClientsResource = Resource{"clients", models.PathClients, models.PathAddClient,
		models.PathUpdateClient, models.PathDeleteClient, "codeClient"}
	ProductsResource = Resource{"products", models.PathProducts, models.PathAddProduct,
		models.PathUpdateProduct, models.PathDeleteProduct, "codeProduit"}
	OrdersResource = Resource{"orders", models.PathOrders, models.PathAddOrder,
		models.PathUpdateOrder, models.PathDeleteOrder, "idCommande"}
	ProformasResource = Resource{"proformas", models.PathProformas, models.PathAddProforma,
		models.PathUpdateProforma, models.PathDeleteProforma, "idProforma"}
)

// Repository maps list/create/update/delete of one entity onto its endpoints.
type Repository[T Entity[K], K comparable] struct {
	c   *Client
	res Resource
}

func NewRepository[T Entity[K], K comparable](c *Client, res Resource) *Repository[T, K] {
	return &Repository[T, K]{c: c, res: res}
}

func (c *Client) Clients() *Repository[models.Client, string] {
	return NewRepository[models.Client, string](c, ClientsResource)
}

func (c *Client) Products() *Repository[models.Product, string] {
	return NewRepository[models.Product, string](c, ProductsResource)
}

func (c *Client) Orders() *Repository[models.Order, int] {
	return NewRepository[models.Order, int](c, OrdersResource)
}

func (c *Client) Proformas() *Repository[models.Proforma, int] {
	return NewRepository[models.Proforma, int](c, ProformasResource)
}

// List returns every record; an empty collection is an empty, non-nil slice.
func (r *Repository[T, K]) List(ctx context.Context) ([]T, error) {
	op := r.res.Name + ".list"
	res, err := r.c.do(ctx, op, http.MethodGet, r.res.ListPath, nil)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := res.decodeData(&items); err != nil {
		return nil, &Error{Op: op, Kind: KindServer, Code: CodeBadResponse, Status: res.Status, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create validates item then posts it. The server's copy is returned when
// the response carries one.
func (r *Repository[T, K]) Create(ctx context.Context, item T) (T, error) {
	op := r.res.Name + ".create"
	if v := item.Validate(); !v.Empty() {
		return item, Invalid(op, v)
	}
	res, err := r.c.do(ctx, op, http.MethodPost, r.res.CreatePath, item)
	if err != nil {
		return item, err
	}
	created := item
	if err := res.decodeData(&created); err != nil {
		return item, nil
	}
	return created, nil
}

// Update replaces the record stored under item's key.
func (r *Repository[T, K]) Update(ctx context.Context, item T) error {
	op := r.res.Name + ".update"
	v := item.Validate()
	var zero K
	if item.Key() == zero {
		v[r.res.KeyField] = "required"
	}
	if !v.Empty() {
		return Invalid(op, v)
	}
	_, err := r.c.do(ctx, op, http.MethodPost, r.res.UpdatePath, item)
	return err
}

// Delete removes the record stored under key. A missing key yields a
// KindServer error with CodeNotFound.
func (r *Repository[T, K]) Delete(ctx context.Context, key K) error {
	op := r.res.Name + ".delete"
	var zero K
	if key == zero {
		return Invalid(op, validation.Violations{r.res.KeyField: "required"})
	}
	_, err := r.c.do(ctx, op, http.MethodPost, r.res.DeletePath, map[string]any{r.res.KeyField: key})
	return err
}
