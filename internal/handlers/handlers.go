// Package handlers serves the gestion_commandes_api endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/metrics"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/internal/services"
	"github.com/diewo77/gestion-commandes/validation"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON body into v. It writes the error response itself and
// reports whether the handler may continue.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json", "Corps de requête JSON invalide")
		return false
	}
	return true
}

// invalid writes a validation failure when v is not empty.
func invalid(w http.ResponseWriter, v validation.Violations) bool {
	if v.Empty() {
		return false
	}
	httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
	return true
}

// fail maps a storage or service error onto the response envelope.
func fail(w http.ResponseWriter, entity, op string, err error) {
	metrics.RecordOperation(entity, op, false)
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		httpx.Fail(w, http.StatusNotFound, "not_found", "Élément introuvable")
	case errors.Is(err, services.ErrAlreadyExists):
		httpx.Fail(w, http.StatusConflict, "already_exists", "Élément déjà existant")
	case errors.Is(err, services.ErrUnknownClient),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrDuplicateProduct):
		httpx.Fail(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		log.Printf("%s %s: %v", entity, op, err)
		httpx.Fail(w, http.StatusInternalServerError, "internal_error", "Erreur serveur")
	}
}

func done(w http.ResponseWriter, entity, op string, status int, message string, data any) {
	metrics.RecordOperation(entity, op, true)
	httpx.OK(w, status, message, data)
}

// anyRow reports whether a row of model matches query.
func anyRow(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// knownClient writes a bad_request response unless code names a stored client.
func knownClient(w http.ResponseWriter, db *gorm.DB, entity, code string) bool {
	found, err := anyRow(db, &models.Client{}, "code = ?", code)
	if err != nil {
		fail(w, entity, "update", err)
		return false
	}
	if !found {
		metrics.RecordOperation(entity, "update", false)
		httpx.Fail(w, http.StatusBadRequest, "bad_request", "Client inconnu : "+code)
		return false
	}
	return true
}
