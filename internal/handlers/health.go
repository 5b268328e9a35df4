package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// HealthChecker is the slice of the database the health endpoint needs.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	PoolStats() (total, idle int32)
}

type healthResponse struct {
	Status   string         `json:"status"`
	Database string         `json:"database"`
	Pool     map[string]any `json:"pool,omitempty"`
}

// Health returns a handler reporting database reachability and pool usage.
func Health(db HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := db.HealthCheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(healthResponse{Status: "unhealthy", Database: "down"})
			return
		}

		total, idle := db.PoolStats()
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(healthResponse{
			Status:   "healthy",
			Database: "up",
			Pool: map[string]any{
				"total_conns": total,
				"idle_conns":  idle,
			},
		})
	}
}
