package http

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/middleware"
)

// AuthService defines the admin authentication operations required by
// AuthHandler.
type AuthService interface {
	// Login checks the credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	// ChangePassword replaces the admin password after checking the current one.
	ChangePassword(ctx context.Context, current, next string) error
}

// AuthHandler handles HTTP requests for admin login and credentials.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

// LoginRequest represents the JSON payload for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the JSON payload for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login handles POST /api/auth/login and returns {token, username}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": strings.TrimSpace(req.Username),
	})
}

// Verify handles GET /api/auth/verify. It runs behind the Auth middleware,
// so reaching it means the token is valid.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user":  claims,
	})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.AuthService.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, h.Log, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
