package handlers

import (
	"net/http"
	"runtime"
	"time"
)

// HealthHandler reports liveness plus the process snapshot the frontend's
// status page renders. The numeric time-series view lives on /metrics.
type HealthHandler struct {
	env       string
	startedAt time.Time
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env, startedAt: time.Now()}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
		"memoryUsage": map[string]uint64{
			"alloc":      mem.Alloc,
			"totalAlloc": mem.TotalAlloc,
			"sys":        mem.Sys,
		},
		"goroutines":  runtime.NumGoroutine(),
		"goVersion":   runtime.Version(),
		"environment": h.env,
	})
}
