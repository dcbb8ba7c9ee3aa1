package handlers

import (
	"net/http"

	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

const checkOK = "ok"

// readiness is the /health/ready body. Checks maps each dependency to "ok"
// or its failure message.
type readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler returns a HealthHandler reporting on registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is enough.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, map[string]string{"status": checkOK})
}

// Readiness handles GET /health/ready: 200 while every dependency check
// passes, 503 otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	body := readiness{Status: "ready", Checks: map[string]string{}}
	code := http.StatusOK

	for name, err := range h.registry.CheckAll(r.Context()) {
		body.Checks[name] = checkOK
		if err != nil {
			body.Checks[name] = err.Error()
			body.Status, code = "not_ready", http.StatusServiceUnavailable
		}
	}

	respond(w, r, code, body)
}
