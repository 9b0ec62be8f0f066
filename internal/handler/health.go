package handler

import (
	"net/http"
	"time"
)

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// GetHealth handles GET /health. It never touches storage: a database outage
// still reports the process as alive.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}
