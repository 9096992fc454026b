package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"folha/internal/auth"
	"folha/internal/transport/http/api"
	"folha/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	DB     *pgxpool.Pool
	Secret string
}

func NewHandler(db *pgxpool.Pool, secret string) *Handler {
	return &Handler{DB: db, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_credentials", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	var userID, hash, role string
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, password_hash, role
    FROM users
    WHERE email = $1
  `, payload.Email).Scan(&userID, &hash, &role)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && auth.CheckPassword(hash, payload.Password) != nil) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to look up user", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: userID, Email: payload.Email, Role: role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"token": token, "role": role}, middleware.GetRequestID(r.Context()))
}
