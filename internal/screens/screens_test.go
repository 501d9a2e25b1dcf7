package screens

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/diewo77/gestion-commandes/internal/client"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo[T Record[K], K comparable] struct {
	mu      sync.Mutex
	items   []T
	calls   int
	listErr error
}

func (r *memRepo[T, K]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]T{}, r.items...), nil
}

func (r *memRepo[T, K]) Create(_ context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.items = append(r.items, item)
	return item, nil
}

func (r *memRepo[T, K]) Update(_ context.Context, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i := range r.items {
		if r.items[i].Key() == item.Key() {
			r.items[i] = item
			return nil
		}
	}
	return &client.Error{Kind: client.KindServer, Code: client.CodeNotFound}
}

func (r *memRepo[T, K]) Delete(_ context.Context, key K) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i := range r.items {
		if r.items[i].Key() == key {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return &client.Error{Kind: client.KindServer, Code: client.CodeNotFound}
}

type authOK struct{}

func (authOK) Login(_ context.Context, email, _ string) (client.Identity, error) {
	return client.Identity{Email: email, Token: "t"}, nil
}
func (authOK) Register(ctx context.Context, email, pw string) (client.Identity, error) {
	return authOK{}.Login(ctx, email, pw)
}

func loggedIn(t *testing.T) (Deps, *[]Notice) {
	t.Helper()
	s := session.New()
	require.NoError(t, s.Login(context.Background(), authOK{}, "a@b.fr", "pw"))
	var notices []Notice
	return Deps{Session: s, Notify: func(n Notice) { notices = append(notices, n) }}, &notices
}

func dupont() models.Client {
	return models.Client{Code: "C1", Nom: "Dupont", Prenom: "Jean", DateNaissance: models.NewDate(1980, 1, 1), Email: "j@d.fr", Telephone: "06"}
}

func TestOpenRequiresSession(t *testing.T) {
	repo := &memRepo[models.Client, string]{}
	s := NewClientsScreen(repo, Deps{Session: session.New()})
	err := s.Open(context.Background())
	require.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.Zero(t, repo.calls)
}

func TestEmptyListIsEmptyView(t *testing.T) {
	deps, notices := loggedIn(t)
	s := NewClientsScreen(&memRepo[models.Client, string]{}, deps)
	assert.Equal(t, ViewLoading, s.View())
	require.NoError(t, s.Open(context.Background()))
	assert.Equal(t, ViewEmpty, s.View())
	assert.Empty(t, *notices)
}

func TestListFailureIsFailedView(t *testing.T) {
	deps, notices := loggedIn(t)
	repo := &memRepo[models.Client, string]{listErr: &client.Error{Kind: client.KindNetwork}}
	s := NewClientsScreen(repo, deps)
	require.Error(t, s.Open(context.Background()))
	assert.Equal(t, ViewFailed, s.View())
	require.Len(t, *notices, 1)
	assert.Equal(t, "Erreur : Impossible de récupérer les clients.", (*notices)[0].Text)
}

func TestCreateClient(t *testing.T) {
	deps, notices := loggedIn(t)
	repo := &memRepo[models.Client, string]{}
	s := NewClientsScreen(repo, deps)
	s.NewForm()
	s.Form.Code, s.Form.Nom, s.Form.Prenom = "C1", "Dupont", "Jean"
	s.Form.DateNaissance, s.Form.Email, s.Form.Telephone = "1980-01-01", "j@d.fr", "06"
	require.NoError(t, s.Save(context.Background()))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "Dupont", s.Items()[0].Nom)
	assert.Equal(t, "Client ajouté avec succès !", (*notices)[0].Text)
	assert.Empty(t, s.Form.Code)
}

func TestSaveIncompleteFormNoCall(t *testing.T) {
	deps, notices := loggedIn(t)
	repo := &memRepo[models.Client, string]{}
	s := NewClientsScreen(repo, deps)
	s.Form.Code = "C1"
	err := s.Save(context.Background())
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Zero(t, repo.calls)
	assert.Equal(t, LevelError, (*notices)[0].Level)
}

func TestDeclinedDeleteLeavesListUnchanged(t *testing.T) {
	deps, _ := loggedIn(t)
	repo := &memRepo[models.Client, string]{items: []models.Client{dupont()}}
	s := NewClientsScreen(repo, deps)
	require.NoError(t, s.Open(context.Background()))
	before := s.Items()
	calls := repo.calls

	require.NoError(t, s.RequestDelete(before[0]))
	assert.Equal(t, "Êtes-vous sûr de vouloir supprimer Jean Dupont ?", s.Prompt())
	assert.True(t, s.Cancel())

	assert.Equal(t, before, s.Items())
	assert.Equal(t, calls, repo.calls)
	assert.Equal(t, ViewReady, s.View())
}

func TestConfirmedDeleteThenDeleteAgain(t *testing.T) {
	deps, notices := loggedIn(t)
	repo := &memRepo[models.Order, int]{items: []models.Order{{ID: 42, CodeClient: "C1"}}}
	s := NewOrdersScreen(repo, deps)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))
	o, ok := s.Find(42)
	require.True(t, ok)

	require.NoError(t, s.RequestDelete(o))
	require.NoError(t, s.Confirm(ctx))
	_, ok = s.Find(42)
	assert.False(t, ok)

	require.NoError(t, s.RequestDelete(o))
	err := s.Confirm(ctx)
	require.ErrorIs(t, err, client.ErrServer)
	assert.Equal(t, "Élément introuvable.", (*notices)[len(*notices)-1].Text)
}

// stalledList holds List calls until release is closed, returning the
// snapshot taken when the call started.
type stalledList struct {
	*memRepo[models.Client, string]
	stall   bool
	entered chan struct{}
	release chan struct{}
}

func (r *stalledList) List(ctx context.Context) ([]models.Client, error) {
	items, err := r.memRepo.List(ctx)
	if r.stall {
		r.entered <- struct{}{}
		<-r.release
	}
	return items, err
}

func TestDeletedRowStaysGoneWhenOlderRefreshLands(t *testing.T) {
	deps, _ := loggedIn(t)
	repo := &stalledList{
		memRepo: &memRepo[models.Client, string]{items: []models.Client{dupont()}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewClientsScreen(repo, deps)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))
	require.Len(t, s.Items(), 1)

	repo.stall = true
	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx) }()
	<-repo.entered

	require.NoError(t, s.RequestDelete(dupont()))
	require.NoError(t, s.Confirm(ctx))
	assert.Empty(t, s.Items())

	close(repo.release)
	require.NoError(t, <-done)
	assert.Empty(t, s.Items())
	assert.Empty(t, repo.items)
	assert.Equal(t, ViewEmpty, s.View())
}

func TestListStateRemoveSupersedesRefresh(t *testing.T) {
	var l ListState[int]
	_, seq := l.Begin(context.Background())
	require.True(t, l.Apply(seq, []int{1, 2}, nil))

	ctx, stale := l.Begin(context.Background())
	l.Remove(func(n int) bool { return n == 1 })
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, l.Apply(stale, []int{1, 2}, nil))
	assert.Equal(t, []int{2}, l.Items())

	_, next := l.Begin(context.Background())
	assert.True(t, l.Apply(next, []int{2, 3}, nil))
	assert.Equal(t, []int{2, 3}, l.Items())
}

func TestEditIsGated(t *testing.T) {
	deps, _ := loggedIn(t)
	repo := &memRepo[models.Client, string]{items: []models.Client{dupont()}}
	s := NewClientsScreen(repo, deps)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))

	s.Edit(s.Items()[0])
	assert.True(t, s.Form.CodeReadOnly())
	s.Form.Nom = "Durand"
	require.NoError(t, s.Save(ctx))
	assert.Equal(t, "Dupont", repo.items[0].Nom)

	require.NoError(t, s.Confirm(ctx))
	assert.Equal(t, "Durand", repo.items[0].Nom)
	assert.Equal(t, "Durand", s.Items()[0].Nom)
	assert.False(t, s.Form.Editing())
}

func TestListStateDropsStaleResponses(t *testing.T) {
	var l ListState[int]
	ctx1, seq1 := l.Begin(context.Background())
	_, seq2 := l.Begin(context.Background())
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)

	assert.True(t, l.Apply(seq2, []int{2}, nil))
	assert.False(t, l.Apply(seq1, []int{1}, nil))
	assert.False(t, l.Apply(seq2, []int{3}, nil))
	assert.Equal(t, []int{2}, l.Items())

	_, seq3 := l.Begin(context.Background())
	assert.True(t, l.Apply(seq3, nil, errors.New("down")))
	assert.Equal(t, ViewFailed, l.View())
	assert.Equal(t, []int{2}, l.Items())
}

type fakeLines struct {
	lines   []models.OrderLine
	removed []string
}

func (f *fakeLines) List(context.Context, int) ([]models.OrderLine, error) { return f.lines, nil }
func (f *fakeLines) Add(_ context.Context, l models.OrderLine) error {
	f.lines = append(f.lines, l)
	return nil
}
func (f *fakeLines) Remove(_ context.Context, _ int, code string) error {
	f.removed = append(f.removed, code)
	return nil
}

func TestLinesScreen(t *testing.T) {
	deps, _ := loggedIn(t)
	repo := &fakeLines{}
	ctx := context.Background()

	require.ErrorIs(t, NewLinesScreen(0, repo, deps).Open(ctx), client.ErrValidation)

	s := NewLinesScreen(5, repo, deps)
	require.NoError(t, s.Open(ctx))
	assert.Equal(t, ViewEmpty, s.View())

	s.Form.CodeProduit, s.Form.Quantite, s.Form.PrixUnitaireHT, s.Form.TVA = "P1", "0", "2", "19"
	require.ErrorIs(t, s.Add(ctx), client.ErrValidation)
	assert.Empty(t, repo.lines)

	s.Form.Quantite = "2"
	require.NoError(t, s.Add(ctx))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 5, s.Items()[0].OrderID)

	require.NoError(t, s.RequestRemove(s.Items()[0]))
	require.NoError(t, s.Confirm(ctx))
	assert.Equal(t, []string{"P1"}, repo.removed)
}

type fakeSubmitter struct {
	orders    []models.Order
	proformas []models.Proforma
}

func (f *fakeSubmitter) SubmitOrder(_ context.Context, o models.Order) (models.Order, error) {
	f.orders = append(f.orders, o)
	o.ID = len(f.orders)
	return o, nil
}

func (f *fakeSubmitter) SubmitProforma(_ context.Context, p models.Proforma) (models.Proforma, error) {
	f.proformas = append(f.proformas, p)
	p.ID = 10 + len(f.proformas)
	return p, nil
}

func catalogue() *memRepo[models.Product, string] {
	return &memRepo[models.Product, string]{items: []models.Product{
		{Code: "P1", Designation: "Vis", TotalHT: 2},
		{Code: "P2", Designation: "Écrou", TotalHT: 1},
	}}
}

func TestNewOrderZeroQuantityRejected(t *testing.T) {
	deps, notices := loggedIn(t)
	sub := &fakeSubmitter{}
	s := NewOrderScreen(catalogue(), sub, deps)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))

	s.Header.CodeClient = "C1"
	require.True(t, s.Toggle("P1"))
	s.SetQuantity("P1", "0")
	err := s.Submit()
	require.ErrorIs(t, err, client.ErrValidation)
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.Empty(t, sub.orders)
	assert.Equal(t, "Veuillez spécifier une quantité positive pour chaque produit.", (*notices)[len(*notices)-1].Text)
}

func TestNewOrderSubmit(t *testing.T) {
	deps, _ := loggedIn(t)
	sub := &fakeSubmitter{}
	s := NewOrderScreen(catalogue(), sub, deps)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))

	s.Header.CodeClient = "C1"
	s.Toggle("P2")
	s.Toggle("P1")
	s.SetQuantity("P1", "3")
	s.SetQuantity("P2", "1")
	require.NoError(t, s.Submit())
	assert.Empty(t, sub.orders)
	require.NoError(t, s.Confirm(ctx))

	require.Len(t, sub.orders, 1)
	got := sub.orders[0]
	assert.Equal(t, "C1", got.CodeClient)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "P1", got.Lines[0].CodeProduit)
	assert.Equal(t, models.Number(19), got.Lines[0].TVA)
	assert.Equal(t, 1, s.LastID())
	assert.Zero(t, s.Selection.Len())
}

func TestNewProformaGoesToProformaSubmitter(t *testing.T) {
	deps, _ := loggedIn(t)
	sub := &fakeSubmitter{}
	s := NewProformaScreen(catalogue(), sub, "C7", deps)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))
	assert.Equal(t, "C7", s.Header.CodeClient)

	s.Toggle("P1")
	s.SetQuantity("P1", "2")
	require.NoError(t, s.Submit())
	require.NoError(t, s.Confirm(ctx))
	assert.Empty(t, sub.orders)
	require.Len(t, sub.proformas, 1)
	assert.Equal(t, 11, s.LastID())
}

type authNo struct{}

func (authNo) Login(context.Context, string, string) (client.Identity, error) {
	return client.Identity{}, &client.Error{Kind: client.KindServer, Code: client.CodeInvalidCredentials, Message: "Identifiants invalides"}
}
func (a authNo) Register(ctx context.Context, e, p string) (client.Identity, error) {
	return a.Login(ctx, e, p)
}

func TestAuthScreen(t *testing.T) {
	sess := session.New()
	var notices []Notice
	deps := Deps{Session: sess, Notify: func(n Notice) { notices = append(notices, n) }}

	err := NewAuthScreen(authNo{}, deps).Submit(context.Background(), "a@b.fr", "x")
	require.Error(t, err)
	assert.Equal(t, session.Anonymous, sess.State())
	assert.Equal(t, "Identifiants invalides", notices[0].Text)

	a := NewAuthScreen(authOK{}, deps)
	a.ToggleMode()
	require.NoError(t, a.Submit(context.Background(), "a@b.fr", "x"))
	home := NewHomeScreen(deps)
	require.NoError(t, home.Open())
	assert.Equal(t, "Bienvenue a@b.fr", home.Greeting())
	home.Logout()
	assert.ErrorIs(t, home.Open(), session.ErrUnauthenticated)
}
