package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves /api/health.
type HealthHandler struct {
	DB          Pinger
	Environment string
	Log         *zap.Logger
	now         func() time.Time
}

func (h *HealthHandler) timestamp() string {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	return now().UTC().Format(time.RFC3339)
}

func (h *HealthHandler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.DB.PingContext(ctx)
}

// Health reports overall liveness. It answers 503 while the database is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, code, database := "healthy", http.StatusOK, "connected"
	if err := h.ping(r.Context()); err != nil {
		h.Log.Warn("database ping failed", zap.Error(err))
		status, code, database = "degraded", http.StatusServiceUnavailable, "disconnected"
	}
	writeJSON(w, code, map[string]string{
		"status":      status,
		"timestamp":   h.timestamp(),
		"environment": h.Environment,
		"database":    database,
	})
}

// Database checks only database connectivity.
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.Log.Error("database health check failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":    "error",
			"database":  "disconnected",
			"timestamp": h.timestamp(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": h.timestamp(),
	})
}
