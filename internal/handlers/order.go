package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/internal/services"
	"github.com/diewo77/gestion-commandes/validation"
)

// OrderHandler serves orders and, on commande_produit.php, their lines.
type OrderHandler struct {
	DB  *gorm.DB
	Svc *services.DocumentService
}

func NewOrderHandler(db *gorm.DB, svc *services.DocumentService) *OrderHandler {
	return &OrderHandler{DB: db, Svc: svc}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := []models.Order{}
	if err := h.DB.WithContext(r.Context()).Order("id desc").Find(&orders).Error; err != nil {
		fail(w, "order", "list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

// Create stores a bare order, or an order with its lines when "produits"
// is present.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var o models.Order
	if !decode(w, r, &o) {
		return
	}
	v := o.Validate()
	if len(o.Lines) > 0 {
		v = o.ValidateSubmission()
	}
	if invalid(w, v) {
		return
	}
	o.ID = 0
	if err := h.Svc.CreateOrder(r.Context(), &o); err != nil {
		fail(w, "order", "create", err)
		return
	}
	done(w, "order", "create", http.StatusCreated, "Commande ajoutée avec succès", o)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var o models.Order
	if !decode(w, r, &o) {
		return
	}
	v := o.Validate()
	validation.PositiveInt("idCommande", o.ID, v)
	if invalid(w, v) {
		return
	}
	db := h.DB.WithContext(r.Context())
	found, err := anyRow(db, &models.Order{}, "id = ?", o.ID)
	if err != nil {
		fail(w, "order", "update", err)
		return
	}
	if !found {
		httpx.Fail(w, http.StatusNotFound, "not_found", "Commande introuvable")
		return
	}
	if !knownClient(w, db, "order", o.CodeClient) {
		return
	}
	if err := db.Model(&models.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"code_client": o.CodeClient,
		"date":        o.Date,
		"total_ht":    o.TotalHT,
		"total_ttc":   o.TotalTTC,
		"tva":         o.TVA,
	}).Error; err != nil {
		fail(w, "order", "update", err)
		return
	}
	o.Lines = nil
	done(w, "order", "update", http.StatusOK, "Commande modifiée avec succès", o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID int `json:"idCommande"`
	}
	if !decode(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.PositiveInt("idCommande", in.ID, v)
	if invalid(w, v) {
		return
	}
	if err := h.Svc.DeleteOrder(r.Context(), in.ID); err != nil {
		fail(w, "order", "delete", err)
		return
	}
	done(w, "order", "delete", http.StatusOK, "Commande supprimée avec succès", nil)
}
