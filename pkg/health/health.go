package health

import (
	"encoding/json"
	"net/http"
	"time"

	process "github.com/s-larionov/process-manager"
)

type status struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
}

// NewHealthCheckServer creates the status endpoint served by its own worker,
// separate from the API listener so probes survive API overload.
func NewHealthCheckServer(listen, path string, handler http.HandlerFunc) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(path, handler)

	return &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// DefaultHandler reports liveness for the analysis service as long as the
// process manager is running.
func DefaultHandler(m *process.Manager) http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, _ *http.Request) {
		if m == nil {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status{
			Service: "openchain-ir",
			Status:  "ok",
			Uptime:  time.Since(started).Round(time.Second).String(),
		})
	}
}
