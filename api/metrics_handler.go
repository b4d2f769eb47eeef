package api

import (
	"encoding/json"
	"net/http"

	"github.com/yourusername/guardrail/metrics"
)

// MetricsProvider defines the interface for getting metrics
type MetricsProvider interface {
	GetSnapshot() *metrics.Snapshot
}

// StatsHandler handles GET /stats requests
type StatsHandler struct {
	provider MetricsProvider
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(provider MetricsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// ServeHTTP handles the stats endpoint
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot := h.provider.GetSnapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
