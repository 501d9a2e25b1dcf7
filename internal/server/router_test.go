package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/auth"
	"github.com/diewo77/gestion-commandes/internal/client"
	"github.com/diewo77/gestion-commandes/internal/config"
	"github.com/diewo77/gestion-commandes/internal/db"
	"github.com/diewo77/gestion-commandes/internal/events"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/internal/screens"
	"github.com/diewo77/gestion-commandes/internal/session"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(config.DatabaseConfig{Driver: "sqlite", Path: "file:" + name + "?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return conn
}

func TestHealthz(t *testing.T) {
	h := New(setupDB(t), Options{})
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := New(setupDB(t), Options{})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clients.php", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "gestion_http_requests_total")
	assert.Contains(t, body, `path="/clients.php"`)
	assert.Contains(t, body, `path="other"`)
	assert.NotContains(t, body, "/no/such/page")
}

func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(New(setupDB(t), Options{}))
	defer srv.Close()
	ctx := context.Background()
	api := client.New(srv.URL)

	list, err := api.Clients().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := api.Clients().Create(ctx, models.Client{
		Code: "C1", Nom: "Durand", Prenom: "Alice", DateNaissance: models.NewDate(1990, time.May, 1),
		Email: "alice@example.com", Telephone: "0600000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "C1", created.Code)

	list, err = api.Clients().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Durand", list[0].Label())

	_, err = api.Clients().Create(ctx, models.Client{Code: "C1"})
	assert.Equal(t, client.KindValidation, client.KindOf(err))
}

func TestDeleteOrderTwice(t *testing.T) {
	conn := setupDB(t)
	require.NoError(t, conn.Create(&models.Client{Code: "C1", Nom: "Durand"}).Error)
	require.NoError(t, conn.Create(&models.Order{ID: 42, CodeClient: "C1", Date: models.Today()}).Error)
	rec := &events.Recorder{}
	srv := httptest.NewServer(New(conn, Options{Publisher: rec}))
	defer srv.Close()
	api := client.New(srv.URL)
	ctx := context.Background()

	require.NoError(t, api.Orders().Delete(ctx, 42))
	err := api.Orders().Delete(ctx, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrServer)
	assert.True(t, client.IsNotFound(err))
	require.Len(t, rec.Events(), 1)
	assert.Equal(t, events.OrderDeleted, rec.Events()[0].Type)
}

func TestSubmitOrderThroughScreen(t *testing.T) {
	conn := setupDB(t)
	require.NoError(t, conn.Create(&models.Client{Code: "C1", Nom: "Durand"}).Error)
	srv := httptest.NewServer(New(conn, Options{}))
	defer srv.Close()
	api := client.New(srv.URL)
	ctx := context.Background()

	sess := session.New()
	require.NoError(t, sess.Register(ctx, api, "alice@example.com", "pw"))
	s := screens.NewOrderScreen(api.Products(), api, screens.Deps{Session: sess})
	require.NoError(t, s.Open(ctx))
	require.Len(t, s.Products(), 3)
	require.True(t, s.Toggle("VIS-M6"))
	require.True(t, s.SetQuantity("VIS-M6", "4"))
	s.Header.CodeClient = "C1"
	require.NoError(t, s.Submit())
	require.NoError(t, s.Confirm(ctx))
	require.Positive(t, s.LastID())

	lines, err := api.OrderLines().List(ctx, s.LastID())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantite)
	assert.Equal(t, "Vis M6 x 20", lines[0].Designation)
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewIssuer("test-secret", time.Hour)
	srv := httptest.NewServer(New(setupDB(t), Options{Issuer: tokens, RequireAuth: true}))
	defer srv.Close()
	ctx := context.Background()
	sess := session.New()
	api := client.New(srv.URL, client.WithTokenSource(sess))

	_, err := api.Products().List(ctx)
	require.Error(t, err)
	assert.Equal(t, client.KindServer, client.KindOf(err))

	err = sess.Login(ctx, api, "bob@example.com", "pw")
	assert.Equal(t, client.CodeInvalidCredentials, client.CodeOf(err))
	assert.Equal(t, session.Anonymous, sess.State())

	require.NoError(t, sess.Register(ctx, api, "bob@example.com", "pw"))
	sess.Logout()
	require.NoError(t, sess.Login(ctx, api, "bob@example.com", "pw"))
	assert.Equal(t, session.Authenticated, sess.State())

	products, err := api.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
