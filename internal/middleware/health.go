package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthStatus reported by the health endpoint. "degraded" means the
// service is up but no AI provider is configured, so every analysis or
// chat request will be refused with a configuration error.
type HealthStatus struct {
	Status    string    `json:"status"`
	Provider  string    `json:"provider,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthHandler reports liveness plus provider configuration state. It
// never calls the provider; configuration is a local fact.
func HealthHandler(provider string, configured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := HealthStatus{
			Status:    "healthy",
			Provider:  provider,
			Timestamp: time.Now(),
		}
		if !configured {
			health.Status = "degraded"
			health.Provider = ""
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	}
}
