package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// RouteEnroller attaches one domain's handlers to the API router.
type RouteEnroller interface {
	EnrollRoutes(r *mux.Router)
}

// NewRouter builds the versioned API router with all route sets attached.
func NewRouter(enrollers ...RouteEnroller) *mux.Router {
	root := mux.NewRouter()
	root.Use(loggingMiddleware)

	root.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		SendJSON(w, http.StatusOK, map[string]string{"service": "openchain-ir"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	for _, enroller := range enrollers {
		enroller.EnrollRoutes(api)
	}

	return root
}

// NewServer wraps the router in an HTTP server suitable for a process worker.
func NewServer(bind string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              bind,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
