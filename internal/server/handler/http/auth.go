// Package http provides the HTTP handlers and routing of the portfolio API.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/middleware"
	"github.com/atinyakov/portfolio/internal/models"
	"github.com/atinyakov/portfolio/internal/service"
)

// AuthService defines the authentication operations required by AuthHandler.
type AuthService interface {
	// Login returns a signed token for valid credentials and
	// service.ErrInvalidCredentials otherwise.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	// Register creates a user; service.ErrUserExists reports a taken email.
	Register(ctx context.Context, email, password string, role models.Role) (*models.User, error)
}

// AuthHandler handles login, user registration and token verification.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *LoginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=admin user"` // empty means user
}

func (r *RegisterRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type userView struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Login exchanges credentials for a bearer token. An unknown email and a wrong
// password produce the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}

	h.Log.Info("user logged in", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userView{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}

// Register creates a dashboard account. It is mounted behind admin authorization.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.Role)
	if errors.Is(err, service.ErrUserExists) {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		writeFailure(w, h.Log, err, "")
		return
	}

	h.Log.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	writeJSON(w, http.StatusCreated, map[string]any{
		"user": userView{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}

// Verify echoes the identity carried by the caller's token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": userView{ID: claims.UserID, Email: claims.Email, Role: claims.Role},
	})
}
