package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// DataDir is the storage view needed by the readiness probe.
type DataDir interface {
	Ready() error
	Shadowed() []string
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// Checks that the data directory is readable and reports documents that are
// only kept in memory.
type HealthDependenciesHandler struct {
	store DataDir
}

func NewHealthDependenciesHandler(store DataDir) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{store: store}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
	Shadowed     []string                    `json:"shadowed,omitempty"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.store.Ready(); err != nil {
		deps["data_dir"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["data_dir"] = dependencyStatus{Status: "ok"}
	}

	// Shadowed documents still serve requests, but changes die with the process.
	shadowed := h.store.Shadowed()
	if len(shadowed) > 0 {
		deps["persistence"] = dependencyStatus{Status: "memory", Error: "data directory is read-only"}
	} else {
		deps["persistence"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
		Shadowed:     shadowed,
	})
}
