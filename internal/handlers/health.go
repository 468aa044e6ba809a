// Package handlers provides the HTTP handlers of the juju-dotty API: graph
// rendering and health reporting.
package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jujuviz/core/internal/config"
)

const serviceName = "juju-dotty-api"

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

var startTime = time.Now()

// NewHealthHandler reports the API as degraded when the configured nagios
// file cannot be read, since every graph would then lack monitoring data.
func NewHealthHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   serviceName,
			Uptime:    time.Since(startTime).String(),
			Details: map[string]string{
				"go_version": runtime.Version(),
				"num_cpu":    strconv.Itoa(runtime.NumCPU()),
			},
		}

		if cfg.NagiosFile != "" {
			response.Details["nagios_file"] = cfg.NagiosFile
			if _, err := os.Stat(cfg.NagiosFile); err != nil {
				response.Status = "degraded"
				response.Details["nagios_error"] = err.Error()
			}
		}

		writeJSON(w, http.StatusOK, response, false)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		logrus.WithError(err).Error("encoding response")
	}
}
