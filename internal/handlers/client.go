package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

// List answers with a bare JSON array.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients := []models.Client{}
	if err := h.DB.WithContext(r.Context()).Order("code").Find(&clients).Error; err != nil {
		fail(w, "client", "list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if !decode(w, r, &c) || invalid(w, c.Validate()) {
		return
	}
	db := h.DB.WithContext(r.Context())
	exists, err := anyRow(db, &models.Client{}, "code = ?", c.Code)
	if err != nil {
		fail(w, "client", "create", err)
		return
	}
	if exists {
		httpx.Fail(w, http.StatusConflict, "already_exists", "Code client déjà utilisé")
		return
	}
	if err := db.Create(&c).Error; err != nil {
		fail(w, "client", "create", err)
		return
	}
	done(w, "client", "create", http.StatusCreated, "Client ajouté avec succès", c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if !decode(w, r, &c) || invalid(w, c.Validate()) {
		return
	}
	db := h.DB.WithContext(r.Context())
	exists, err := anyRow(db, &models.Client{}, "code = ?", c.Code)
	if err != nil {
		fail(w, "client", "update", err)
		return
	}
	if !exists {
		httpx.Fail(w, http.StatusNotFound, "not_found", "Client introuvable")
		return
	}
	res := db.Model(&models.Client{}).Where("code = ?", c.Code).Updates(map[string]any{
		"nom":            c.Nom,
		"prenom":         c.Prenom,
		"date_naissance": c.DateNaissance,
		"email":          c.Email,
		"telephone":      c.Telephone,
	})
	if res.Error != nil {
		fail(w, "client", "update", res.Error)
		return
	}
	done(w, "client", "update", http.StatusOK, "Client modifié avec succès", c)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Code string `json:"codeClient"`
	}
	if !decode(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("codeClient", in.Code, v)
	if invalid(w, v) {
		return
	}
	db := h.DB.WithContext(r.Context())
	for _, model := range []any{&models.Order{}, &models.Proforma{}} {
		used, err := anyRow(db, model, "code_client = ?", in.Code)
		if err != nil {
			fail(w, "client", "delete", err)
			return
		}
		if used {
			httpx.Fail(w, http.StatusConflict, "in_use", "Client utilisé par des commandes ou proformas")
			return
		}
	}
	res := db.Where("code = ?", in.Code).Delete(&models.Client{})
	if res.Error != nil {
		fail(w, "client", "delete", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "not_found", "Client introuvable")
		return
	}
	done(w, "client", "delete", http.StatusOK, "Client supprimé avec succès", nil)
}
