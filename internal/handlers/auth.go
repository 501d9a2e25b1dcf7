package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/gestion-commandes/auth"
	"github.com/diewo77/gestion-commandes/httpx"
	"github.com/diewo77/gestion-commandes/internal/metrics"
	"github.com/diewo77/gestion-commandes/internal/models"
	"github.com/diewo77/gestion-commandes/validation"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *auth.Issuer
}

func NewAuthHandler(db *gorm.DB, tokens *auth.Issuer) *AuthHandler {
	return &AuthHandler{DB: db, Tokens: tokens}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (h *AuthHandler) read(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var in credentials
	if !decode(w, r, &in) {
		return in, false
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	v := validation.Violations{}
	validation.Required("email", in.Email, v)
	validation.Required("password", in.Password, v)
	return in, !invalid(w, v)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	in, ok := h.read(w, r)
	if !ok {
		return
	}
	var u models.User
	err := h.DB.WithContext(r.Context()).Where("email = ?", in.Email).First(&u).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		fail(w, "user", "login", err)
		return
	}
	if err != nil || !auth.CheckPassword(u.Password, in.Password) {
		metrics.RecordOperation("user", "login", false)
		httpx.JSON(w, http.StatusUnauthorized, authResponse{Code: "invalid_credentials", Message: "Email ou mot de passe incorrect"})
		return
	}
	h.issue(w, http.StatusOK, "login", u.Email, "Connexion réussie")
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in, ok := h.read(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	taken, err := anyRow(db, &models.User{}, "email = ?", in.Email)
	if err != nil {
		fail(w, "user", "register", err)
		return
	}
	if taken {
		httpx.JSON(w, http.StatusConflict, authResponse{Code: "already_exists", Message: "Cet email est déjà utilisé"})
		return
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		fail(w, "user", "register", err)
		return
	}
	u := models.User{Email: in.Email, Password: hash}
	if err := db.Create(&u).Error; err != nil {
		fail(w, "user", "register", err)
		return
	}
	h.issue(w, http.StatusCreated, "register", u.Email, "Inscription réussie")
}

func (h *AuthHandler) issue(w http.ResponseWriter, status int, op, email, message string) {
	tok, err := h.Tokens.Issue(email)
	if err != nil {
		fail(w, "user", op, err)
		return
	}
	metrics.RecordOperation("user", op, true)
	httpx.JSON(w, status, authResponse{Success: true, Email: email, Token: tok, Message: message})
}
