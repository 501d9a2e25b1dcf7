package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := []models.Product{}
	if err := h.DB.WithContext(r.Context()).Order("code").Find(&products).Error; err != nil {
		fail(w, "product", "list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if !decode(w, r, &p) || invalid(w, p.Validate()) {
		return
	}
	db := h.DB.WithContext(r.Context())
	exists, err := anyRow(db, &models.Product{}, "code = ?", p.Code)
	if err != nil {
		fail(w, "product", "create", err)
		return
	}
	if exists {
		httpx.Fail(w, http.StatusConflict, "already_exists", "Code produit déjà utilisé")
		return
	}
	if err := db.Create(&p).Error; err != nil {
		fail(w, "product", "create", err)
		return
	}
	done(w, "product", "create", http.StatusCreated, "Produit ajouté avec succès", p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if !decode(w, r, &p) || invalid(w, p.Validate()) {
		return
	}
	db := h.DB.WithContext(r.Context())
	exists, err := anyRow(db, &models.Product{}, "code = ?", p.Code)
	if err != nil {
		fail(w, "product", "update", err)
		return
	}
	if !exists {
		httpx.Fail(w, http.StatusNotFound, "not_found", "Produit introuvable")
		return
	}
	res := db.Model(&models.Product{}).Where("code = ?", p.Code).Updates(map[string]any{
		"designation":   p.Designation,
		"suite":         p.Suite,
		"prix_achat_ht": p.PrixAchatHT,
		"total_ht":      p.TotalHT,
		"tva":           p.TVA,
	})
	if res.Error != nil {
		fail(w, "product", "update", res.Error)
		return
	}
	done(w, "product", "update", http.StatusOK, "Produit modifié avec succès", p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Code string `json:"codeProduit"`
	}
	if !decode(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("codeProduit", in.Code, v)
	if invalid(w, v) {
		return
	}
	db := h.DB.WithContext(r.Context())
	for _, model := range []any{&models.OrderLine{}, &models.ProformaLine{}} {
		used, err := anyRow(db, model, "code_produit = ?", in.Code)
		if err != nil {
			fail(w, "product", "delete", err)
			return
		}
		if used {
			httpx.Fail(w, http.StatusConflict, "in_use", "Produit utilisé dans une commande ou une proforma")
			return
		}
	}
	res := db.Where("code = ?", in.Code).Delete(&models.Product{})
	if res.Error != nil {
		fail(w, "product", "delete", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "not_found", "Produit introuvable")
		return
	}
	done(w, "product", "delete", http.StatusOK, "Produit supprimé avec succès", nil)
}
