package api

import (
	"net/http"
	"time"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	startedAt     time.Time
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, startedAt: time.Now()}
}

type statsResponse struct {
	// Status is "ready" once history is loaded, "starting" before.
	Status        string                 `json:"status"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Estimator     map[string]interface{} `json:"estimator"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats := h.statsProvider.GetStats()
	status := "starting"
	if started, _ := stats["started"].(bool); started {
		status = "ready"
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Status:        status,
		UptimeSeconds: time.Since(h.startedAt).Round(time.Millisecond).Seconds(),
		Estimator:     stats,
	})
}
