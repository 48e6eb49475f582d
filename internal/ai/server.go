package ai

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
	"github.com/openchain-labs/openchain-ir/internal/rest"
)

// SummaryGetter resolves stored analysis summaries for insight generation.
type SummaryGetter interface {
	GetByID(id uuid.UUID) (analysis.Record, *analysis.Summary, error)
}

type Server struct {
	service   *Service
	summaries SummaryGetter
}

func NewServer(service *Service, summaries SummaryGetter) *Server {
	return &Server{
		service:   service,
		summaries: summaries,
	}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/analysis/{id}/narrative", s.narrative).Methods(http.MethodGet)
	r.HandleFunc("/analysis/{id}/insights", s.insights).Methods(http.MethodGet)
}

func (s *Server) narrative(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid analysis id")

		return
	}

	_, summary, err := s.summaries.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, map[string]string{
		"narrative": s.service.Narrative(r.Context(), summary),
	})
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid analysis id")

		return
	}

	_, summary, err := s.summaries.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, s.service.Comprehensive(r.Context(), summary))
}
