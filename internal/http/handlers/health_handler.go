// Health HTTP handlers.
//
// Two probes are exposed:
//   - GET /api/health           (liveness, no dependency checks)
//   - GET /api/health/detailed  (readiness, checks local dependencies)
//
// Both routes sit outside the authenticated group and never count against
// rate limits. The detailed probe never calls the language model; a health
// check must not spend model quota.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/choibenassist/go-ai-backend/internal/repo"
)

// HealthHandlers serves liveness and readiness probes.
type HealthHandlers struct {
	DB         *gorm.DB
	Version    string
	Model      string
	BackendURL string
}

// NewHealthHandlers constructs health handlers bound to the audit database
// and the configured upstream identifiers.
func NewHealthHandlers(db *gorm.DB, version, model, backendURL string) *HealthHandlers {
	return &HealthHandlers{DB: db, Version: version, Model: model, BackendURL: backendURL}
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2026-01-15T09:30:00Z"`
	Version   string `json:"version,omitempty" example:"1.2.0"`
}

// DependencyStatus describes one dependency in the readiness probe.
type DependencyStatus struct {
	Status string `json:"status" example:"ok"`
	Detail string `json:"detail,omitempty"`
}

// DetailedHealthResponse is the readiness probe body.
type DetailedHealthResponse struct {
	Status       string                      `json:"status" example:"healthy"`
	Timestamp    string                      `json:"timestamp"`
	Version      string                      `json:"version,omitempty"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	Generations  GenerationSummary           `json:"generations"`
}

// GenerationSummary reports audit log totals for the readiness probe.
type GenerationSummary struct {
	Total  int64  `json:"total"`
	LastAt string `json:"last_at,omitempty"`
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Description Reports that the process is up. Performs no dependency checks.
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /api/health [get]
func (h *HealthHandlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	})
}

// DetailedHealth godoc
// @ID          healthDetailed
// @Summary     Readiness probe
// @Description Reports per-dependency status and audit log totals. Never calls the language model.
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.DetailedHealthResponse
// @Failure     503  {object}  handlers.DetailedHealthResponse
// @Router      /api/health/detailed [get]
func (h *HealthHandlers) DetailedHealth(c *gin.Context) {
	ctx := c.Request.Context()
	deps := make(map[string]DependencyStatus, 3)
	healthy := true

	deps["database"] = DependencyStatus{Status: "ok"}
	if sqlDB, err := h.DB.DB(); err != nil {
		deps["database"] = DependencyStatus{Status: "error", Detail: err.Error()}
		healthy = false
	} else if err := sqlDB.PingContext(ctx); err != nil {
		deps["database"] = DependencyStatus{Status: "error", Detail: err.Error()}
		healthy = false
	}

	// Configuration presence only; reaching out would spend quota or leak
	// load onto upstreams on every probe.
	if h.BackendURL != "" {
		deps["data_backend"] = DependencyStatus{Status: "ok", Detail: "configured"}
	} else {
		deps["data_backend"] = DependencyStatus{Status: "error", Detail: "not configured"}
		healthy = false
	}
	if h.Model != "" {
		deps["llm"] = DependencyStatus{Status: "ok", Detail: h.Model}
	} else {
		deps["llm"] = DependencyStatus{Status: "error", Detail: "not configured"}
		healthy = false
	}

	var gens GenerationSummary
	if count, last, err := repo.GenerationStats(ctx, h.DB); err == nil {
		gens.Total = count
		if last != nil {
			gens.LastAt = last.UTC().Format(time.RFC3339)
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	ok(c, code, DetailedHealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Version:      h.Version,
		Dependencies: deps,
		Generations:  gens,
	})
}
