package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/internal/services"
	"github.com/diewo77/gestion-commandes/validation"
)

type ProformaHandler struct {
	DB  *gorm.DB
	Svc *services.DocumentService
}

func NewProformaHandler(db *gorm.DB, svc *services.DocumentService) *ProformaHandler {
	return &ProformaHandler{DB: db, Svc: svc}
}

func (h *ProformaHandler) List(w http.ResponseWriter, r *http.Request) {
	proformas := []models.Proforma{}
	if err := h.DB.WithContext(r.Context()).Order("id desc").Find(&proformas).Error; err != nil {
		fail(w, "proforma", "list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, proformas)
}

func (h *ProformaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Proforma
	if !decode(w, r, &p) {
		return
	}
	v := p.Validate()
	if len(p.Lines) > 0 {
		v = p.ValidateSubmission()
	}
	if invalid(w, v) {
		return
	}
	p.ID = 0
	if err := h.Svc.CreateProforma(r.Context(), &p); err != nil {
		fail(w, "proforma", "create", err)
		return
	}
	done(w, "proforma", "create", http.StatusCreated, "Proforma ajoutée avec succès", p)
}

func (h *ProformaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Proforma
	if !decode(w, r, &p) {
		return
	}
	v := p.Validate()
	validation.PositiveInt("idProforma", p.ID, v)
	if invalid(w, v) {
		return
	}
	db := h.DB.WithContext(r.Context())
	found, err := anyRow(db, &models.Proforma{}, "id = ?", p.ID)
	if err != nil {
		fail(w, "proforma", "update", err)
		return
	}
	if !found {
		httpx.Fail(w, http.StatusNotFound, "not_found", "Proforma introuvable")
		return
	}
	if !knownClient(w, db, "proforma", p.CodeClient) {
		return
	}
	if err := db.Model(&models.Proforma{}).Where("id = ?", p.ID).Updates(map[string]any{
		"code_client": p.CodeClient,
		"date":        p.Date,
		"total_ht":    p.TotalHT,
		"total_ttc":   p.TotalTTC,
		"tva":         p.TVA,
	}).Error; err != nil {
		fail(w, "proforma", "update", err)
		return
	}
	p.Lines = nil
	done(w, "proforma", "update", http.StatusOK, "Proforma modifiée avec succès", p)
}

func (h *ProformaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID int `json:"idProforma"`
	}
	if !decode(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.PositiveInt("idProforma", in.ID, v)
	if invalid(w, v) {
		return
	}
	if err := h.Svc.DeleteProforma(r.Context(), in.ID); err != nil {
		fail(w, "proforma", "delete", err)
		return
	}
	done(w, "proforma", "delete", http.StatusOK, "Proforma supprimée avec succès", nil)
}
