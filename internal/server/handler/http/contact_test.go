package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/portfolio/internal/models"
	"github.com/atinyakov/portfolio/internal/repository"
	"github.com/atinyakov/portfolio/internal/service"
)

func validContact() map[string]string {
	return map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Hello there",
		"message": "I enjoyed your portfolio.",
	}
}

func TestContact_SubmitRateLimited(t *testing.T) {
	api := newTestAPI(t)
	var stored int64
	api.contact.SubmitFunc = func(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
		stored++
		return &models.Contact{ID: stored}, nil
	}

	for i := 1; i <= 3; i++ {
		rec := api.do(t, http.MethodPost, "/api/contact", validContact(), "")
		require.Equal(t, http.StatusCreated, rec.Code, "submission %d", i)
	}

	rec := api.do(t, http.MethodPost, "/api/contact", validContact(), "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many contact form submissions. Please try again later."}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, int64(3), stored)

	api.limiter.Reset()
	rec = api.do(t, http.MethodPost, "/api/contact", validContact(), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "Your message has been sent successfully!", body.Message)
	assert.Equal(t, int64(4), body.ID)
}

func submitFrom(t *testing.T, h http.Handler, remote, forwarded string) int {
	t.Helper()
	body, err := json.Marshal(validContact())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwarded)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestContact_RateLimitIgnoresSpoofedForwarding(t *testing.T) {
	api := newTestAPI(t)
	api.contact.SubmitFunc = func(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
		return &models.Contact{ID: 1}, nil
	}
	h := api.router()

	var codes []int
	for i := 1; i <= 5; i++ {
		codes = append(codes, submitFrom(t, h, "203.0.113.9:4000", fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, []int{201, 201, 201, 429, 429}, codes)
}

func TestContact_RateLimitTrustedProxy(t *testing.T) {
	api := newTestAPI(t)
	api.proxies = []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}
	api.contact.SubmitFunc = func(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
		return &models.Contact{ID: 1}, nil
	}
	h := api.router()

	for i := 1; i <= 3; i++ {
		require.Equal(t, http.StatusCreated, submitFrom(t, h, "10.0.0.2:4000", "198.51.100.7"), "submission %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, submitFrom(t, h, "10.0.0.3:4000", "198.51.100.7"))
	// A different client behind the same proxy has its own window.
	assert.Equal(t, http.StatusCreated, submitFrom(t, h, "10.0.0.2:4000", "198.51.100.8"))
}

func TestContact_SubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		message string
	}{
		{"short name", "name", " J ", "Name must be between 2 and 100 characters"},
		{"digits in name", "name", "R2 D2", "Name can only contain letters and spaces"},
		{"bad email", "email", "jane-at-example", "Please provide a valid email address"},
		{"short subject", "subject", "Hi", "Subject must be between 5 and 200 characters"},
		{"long message", "message", strings.Repeat("a", 2001), "Message must be between 10 and 2000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			body := validContact()
			body[tt.field] = tt.value

			rec := api.do(t, http.MethodPost, "/api/contact", body, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp validationResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, "Validation failed", resp.Error)
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, FieldError{Field: tt.field, Message: tt.message}, resp.Errors[0])
		})
	}
}

func TestContact_AdminRoutesProtected(t *testing.T) {
	api := newTestAPI(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/contact"},
		{http.MethodGet, "/api/contact/stats/summary"},
		{http.MethodGet, "/api/contact/1"},
		{http.MethodPut, "/api/contact/1/read"},
		{http.MethodDelete, "/api/contact/1"},
	} {
		rec := api.do(t, route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestContact_UpdateStatus(t *testing.T) {
	api := newTestAPI(t)
	api.contact.SetStatusFunc = func(ctx context.Context, id int64, s models.MessageStatus) (*models.Contact, error) {
		switch {
		case id == 404:
			return nil, repository.ErrNotFound
		case s == models.MessageUnread:
			return nil, service.ErrInvalidStatus
		}
		return &models.Contact{ID: id, Status: s, IsRead: s.IsRead()}, nil
	}
	token := api.token(t, models.RoleAdmin)

	for _, status := range []string{"read", "replied"} {
		rec := api.do(t, http.MethodPatch, "/api/contact/1/status", map[string]string{"status": status}, token)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Success bool           `json:"success"`
			Data    models.Contact `json:"data"`
		}
		decodeBody(t, rec, &body)
		assert.True(t, body.Data.IsRead, status)
		assert.Equal(t, models.MessageStatus(status), body.Data.Status)
	}

	rec := api.do(t, http.MethodPatch, "/api/contact/1/status", map[string]string{"status": "unread"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/contact/1/status", map[string]string{"status": "archived"}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Must be 'unread', 'read', or 'replied'")

	rec = api.do(t, http.MethodPatch, "/api/contact/404/status", map[string]string{"status": "read"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContact_StatsAndDelete(t *testing.T) {
	api := newTestAPI(t)
	api.contact.StatsFunc = func(ctx context.Context) (*models.ContactStats, error) {
		return &models.ContactStats{Total: 5, Unread: 2, Read: 3, Replied: 1}, nil
	}
	api.contact.DeleteFunc = func(ctx context.Context, id int64) error {
		return repository.ErrNotFound
	}
	api.contact.MarkReadFunc = func(ctx context.Context, id int64) (*models.Contact, error) {
		return &models.Contact{ID: id, IsRead: true, Status: models.MessageRead}, nil
	}
	token := api.token(t, models.RoleAdmin)

	rec := api.do(t, http.MethodGet, "/api/contact/stats/summary", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":5,"unread":2,"read":3,"replied":1}`, rec.Body.String())

	rec = api.do(t, http.MethodDelete, "/api/contact/8", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Message not found"}`, rec.Body.String())

	rec = api.do(t, http.MethodPut, "/api/contact/8/read", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message marked as read")
}
