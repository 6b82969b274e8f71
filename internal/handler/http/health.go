// Package http holds the HTTP server plumbing shared by all routes: health
// checks, request logging, panic recovery and Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"school-cms/internal/infra/fallback"
	"school-cms/internal/infra/objectstore"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one dependency check.
type CheckStatus struct {
	Status    string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message   string         `json:"message,omitempty"`
	LatencyMS int64          `json:"latency_ms"`
	Details   map[string]any `json:"details,omitempty"`
}

const healthCheckKey = "health_check"

// HealthHandler reports object store and fallback cache reachability.
// An unreachable cache only degrades the service since reads fall back to
// seed data.
type HealthHandler struct {
	Store   objectstore.Store
	Cache   fallback.Backend
	Version string
	Now     func() time.Time
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.Store != nil {
		c := h.checkObjectStore(ctx)
		checks["object_store"] = c
		if c.Status == "unhealthy" {
			healthy = false
		}
	} else {
		checks["object_store"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	}

	if h.Cache != nil {
		checks["fallback_cache"] = h.checkCache(ctx)
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeNoCacheJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkObjectStore(ctx context.Context) CheckStatus {
	start := time.Now()
	objs, err := h.Store.List(ctx, "content/")
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error(), LatencyMS: latency}
	}
	return CheckStatus{
		Status:    "healthy",
		LatencyMS: latency,
		Details:   map[string]any{"documents": len(objs)},
	}
}

func (h *HealthHandler) checkCache(ctx context.Context) CheckStatus {
	start := time.Now()
	_, err := h.Cache.Get(ctx, healthCheckKey)
	latency := time.Since(start).Milliseconds()
	if err != nil && !errors.Is(err, fallback.ErrMiss) {
		return CheckStatus{Status: "degraded", Message: err.Error(), LatencyMS: latency}
	}
	return CheckStatus{Status: "healthy", LatencyMS: latency}
}

// Readiness is satisfied by the site store once every collection has loaded.
type Readiness interface {
	Ready() bool
}

// ReadyHandler answers 200 once the site store is loaded.
type ReadyHandler struct {
	Site Readiness
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Site == nil || !h.Site.Ready() {
		http.Error(w, "content not loaded", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler always answers 200 while the process can serve requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeText(w, "alive")
}

func writeNoCacheJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(s)); err != nil {
		slog.Warn("failed to write health response", slog.Any("error", err))
	}
}
