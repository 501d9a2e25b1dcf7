// Package server assembles the backend HTTP handler.
package server

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/auth"
	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/events"
	"github.com/diewo77/gestion-commandes/internal/metrics"
	m "github.com/diewo77/gestion-commandes/internal/models"
)

// Options configures New. A nil Issuer gets a development secret.
type Options struct {
	Issuer      *auth.Issuer
	Publisher   events.Publisher
	RequireAuth bool
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, opts Options) http.Handler {
	if opts.Issuer == nil {
		opts.Issuer = auth.NewIssuer("dev-secret", 24*time.Hour)
	}
	h := NewHandlers(db, opts.Issuer, opts.Publisher)
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST "+m.PathLogin, h.Auth.Login)
	mux.HandleFunc("POST "+m.PathRegister, h.Auth.Register)

	protect := func(fn http.HandlerFunc) http.Handler {
		if opts.RequireAuth {
			return requireAuth(fn)
		}
		return fn
	}
	routes := []struct {
		pattern string
		fn      http.HandlerFunc
	}{
		{"GET " + m.PathClients, h.Clients.List},
		{"POST " + m.PathAddClient, h.Clients.Create},
		{"POST " + m.PathUpdateClient, h.Clients.Update},
		{"POST " + m.PathDeleteClient, h.Clients.Delete},
		{"GET " + m.PathProducts, h.Products.List},
		{"POST " + m.PathAddProduct, h.Products.Create},
		{"POST " + m.PathUpdateProduct, h.Products.Update},
		{"POST " + m.PathDeleteProduct, h.Products.Delete},
		{"GET " + m.PathOrders, h.Orders.List},
		{"POST " + m.PathAddOrder, h.Orders.Create},
		{"POST " + m.PathUpdateOrder, h.Orders.Update},
		{"POST " + m.PathDeleteOrder, h.Orders.Delete},
		{m.PathOrderLines, h.Orders.Lines},
		{"GET " + m.PathProformas, h.Proformas.List},
		{"POST " + m.PathAddProforma, h.Proformas.Create},
		{"POST " + m.PathUpdateProforma, h.Proformas.Update},
		{"POST " + m.PathDeleteProforma, h.Proformas.Delete},
	}
	known := []string{"/health", "/healthz", "/metrics", m.PathLogin, m.PathRegister}
	for _, rt := range routes {
		mux.Handle(rt.pattern, protect(rt.fn))
		_, path, found := strings.Cut(rt.pattern, " ")
		if !found {
			path = rt.pattern
		}
		known = append(known, path)
	}

	var handler http.Handler = opts.Issuer.Middleware(mux)
	handler = otelhttp.NewHandler(handler, "gestion-api")
	return metrics.Middleware(handler, known...)
}

// requireAuth rejects requests that carry no valid bearer token.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserEmailFromContext(r.Context()); !ok {
			httpx.Fail(w, http.StatusUnauthorized, "unauthorized", "Authentification requise")
			return
		}
		next.ServeHTTP(w, r)
	})
}
