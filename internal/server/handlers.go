package server

import (
	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/auth"
	"github.com/diewo77/gestion-commandes/internal/events"
	"github.com/diewo77/gestion-commandes/internal/handlers"
	"github.com/diewo77/gestion-commandes/internal/services"
)

// Handlers holds the configured endpoint handlers and the services behind them.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Clients   *handlers.ClientHandler
	Products  *handlers.ProductHandler
	Orders    *handlers.OrderHandler
	Proformas *handlers.ProformaHandler

	Documents *services.DocumentService
}

// NewHandlers wires every handler to db. A nil publisher disables events.
func NewHandlers(db *gorm.DB, tokens *auth.Issuer, pub events.Publisher) *Handlers {
	docs := services.NewDocumentService(db, pub)
	return &Handlers{
		Auth:      handlers.NewAuthHandler(db, tokens),
		Clients:   handlers.NewClientHandler(db),
		Products:  handlers.NewProductHandler(db),
		Orders:    handlers.NewOrderHandler(db, docs),
		Proformas: handlers.NewProformaHandler(db, docs),
		Documents: docs,
	}
}
