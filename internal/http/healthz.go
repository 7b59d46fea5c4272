package httpx

import (
	"fmt"
	"net/http"

	"github.com/nichoth/session-cookie/internal/config"
)

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status string            `json:"status"`           // "ok" or "degraded"
	Checks map[string]string `json:"checks,omitempty"` // Only included in deep health checks
}

// healthzHandler handles health check requests. Returns 200 OK with
// {"status": "ok"} for basic liveness checks; ?check=deep additionally
// validates the configuration and signing key material.
func healthzHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("check") == "deep" {
			deepHealthCheck(w, cfg)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// deepHealthCheck verifies the process can actually sign and serialize
// cookies: valid configuration and a long-enough secret key.
func deepHealthCheck(w http.ResponseWriter, cfg config.Config) {
	checks := make(map[string]string)
	allHealthy := true

	if err := cfg.Validate(); err != nil {
		checks["config"] = fmt.Sprintf("invalid: %v", err)
		allHealthy = false
	} else {
		checks["config"] = "ok"
	}

	if _, err := cfg.SecretKey(); err != nil {
		checks["signing_key"] = fmt.Sprintf("invalid: %v", err)
		allHealthy = false
	} else {
		checks["signing_key"] = "ok"
	}

	status := HealthStatus{Status: "ok", Checks: checks}
	if !allHealthy {
		status.Status = "degraded"
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
