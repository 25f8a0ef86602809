package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// stockedSelections reports which selections the machine currently carries
type stockedSelections interface {
	Selections() []models.Selection
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger  *slog.Logger
	machine stockedSelections
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, machine stockedSelections) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		machine: machine,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Selections int       `json:"selections"`
}

// ServeHTTP handles health check requests. A machine with an empty catalog
// is reported as unavailable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Version:    Version,
		Selections: len(h.machine.Selections()),
	}

	status := http.StatusOK
	if response.Selections == 0 {
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
