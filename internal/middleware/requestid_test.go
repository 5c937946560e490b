package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestID_Generates(t *testing.T) {
	dummy := &dummyHandler{}
	rec := httptest.NewRecorder()
	WithRequestID(dummy).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	if got := RequestIDFromContext(dummy.ctx); got != id {
		t.Errorf("context id = %q; header id = %q", got, id)
	}
}

func TestWithRequestID_ReusesAndTruncates(t *testing.T) {
	dummy := &dummyHandler{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", 300))
	WithRequestID(dummy).ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != strings.Repeat("a", maxRequestIDLen) {
		t.Errorf("unexpected request id of length %d", len(got))
	}
}

func TestWithRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	h := WithRequestID(WithRequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(bytes.Repeat([]byte("x"), 5))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusCreated) {
		t.Errorf("status field = %v", fields["status"])
	}
	if fields["size"] != int64(5) {
		t.Errorf("size field = %v", fields["size"])
	}
	if fields["path"] != "/api/contact" {
		t.Errorf("path field = %v", fields["path"])
	}
	if fields["request_id"] == "" {
		t.Error("request_id field is empty")
	}
}
