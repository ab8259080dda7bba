// Package handlers provides the HTTP handlers of the status server: service
// health and the report of the latest pipeline run.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/giygas/city-airquality/interfaces"
	"github.com/giygas/city-airquality/logging"
)

// RespondWithJSON writes payload as a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err, "payload_type", fmt.Sprintf("%T", payload))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

// RespondWithError writes {"error": msg}
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime,omitempty"`
	Data   map[string]any `json:"data"`
	System map[string]any `json:"system"`
}

// HealthCheck serves the checker's verdict with some runtime statistics
func HealthCheck(checker interfaces.HealthChecker, store interfaces.RunStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, data, httpStatus := checker.HealthCheck()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		response := HealthResponse{
			Status: status,
			Data:   data,
			System: map[string]any{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]any{
					"alloc_mb": int(m.Alloc / 1024 / 1024),
					"sys_mb":   int(m.Sys / 1024 / 1024),
					"num_gc":   m.NumGC,
				},
			},
		}
		if start := store.GetServerStartTime(); !start.IsZero() {
			response.Uptime = formatUptimeHuman(time.Since(start))
		}

		RespondWithJSON(w, httpStatus, response)
	}
}

// LatestRun serves the report of the most recent run
func LatestRun(store interfaces.RunStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := store.GetLastReport()
		if report == nil {
			RespondWithError(w, http.StatusNotFound, "no run has completed yet")
			return
		}
		RespondWithJSON(w, http.StatusOK, report)
	}
}
