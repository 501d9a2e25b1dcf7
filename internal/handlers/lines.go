package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

// Lines dispatches commande_produit.php by method.
func (h *OrderHandler) Lines(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listLines(w, r)
	case http.MethodPost:
		h.addLine(w, r)
	case http.MethodDelete:
		h.removeLine(w, r)
	default:
		w.Header().Set("Allow", "GET,POST,DELETE")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *OrderHandler) listLines(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("idCommande"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"idCommande": "required"})
		return
	}
	lines, err := h.Svc.Lines(r.Context(), id)
	if err != nil {
		fail(w, "line", "list", err)
		return
	}
	done(w, "line", "list", http.StatusOK, "", lines)
}

func (h *OrderHandler) addLine(w http.ResponseWriter, r *http.Request) {
	var l models.OrderLine
	if !decode(w, r, &l) || invalid(w, l.Validate()) {
		return
	}
	if err := h.Svc.AddLine(r.Context(), &l); err != nil {
		fail(w, "line", "add", err)
		return
	}
	done(w, "line", "add", http.StatusCreated, "Produit ajouté à la commande", nil)
}

func (h *OrderHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderID     int    `json:"idCommande"`
		CodeProduit string `json:"codeProduit"`
	}
	if !decode(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.PositiveInt("idCommande", in.OrderID, v)
	validation.Required("codeProduit", in.CodeProduit, v)
	if invalid(w, v) {
		return
	}
	if err := h.Svc.RemoveLine(r.Context(), in.OrderID, in.CodeProduit); err != nil {
		fail(w, "line", "remove", err)
		return
	}
	done(w, "line", "remove", http.StatusOK, "Produit retiré de la commande", nil)
}
