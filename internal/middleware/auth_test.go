package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atinyakov/portfolio/internal/auth"
	"github.com/atinyakov/portfolio/internal/models"
)

// dummyHandler records whether it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func newIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer("middleware-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func TestBearerAuth_NoHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := BearerAuth(newIssuer(t))(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error, got Content-Type %q", ct)
	}
}

func TestBearerAuth_BadToken(t *testing.T) {
	for _, header := range []string{"Bearer nope", "Basic dXNlcjpwYXNz", "Bearer ", "token"} {
		dummy := &dummyHandler{}
		h := BearerAuth(newIssuer(t))(dummy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		req.Header.Set("Authorization", header)
		h.ServeHTTP(rec, req)

		if dummy.called {
			t.Errorf("%q: next handler should not be called", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue(3, "ada@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	dummy := &dummyHandler{}
	h := BearerAuth(issuer)(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called with a valid token")
	}
	claims, ok := ClaimsFromContext(dummy.ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if claims.UserID != 3 || claims.Email != "ada@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		claims *auth.Claims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"user", &auth.Claims{UserID: 2, Role: models.RoleUser}, http.StatusForbidden},
		{"admin", &auth.Claims{UserID: 1, Role: models.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			h := RequireRole(models.RoleAdmin)(dummy)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/skills/1", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			if dummy.called != (tt.want == http.StatusOK) {
				t.Errorf("next handler called = %v", dummy.called)
			}
		})
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}
