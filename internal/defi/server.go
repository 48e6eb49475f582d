package defi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/rest"
)

const defaultHistoryLimit = 20

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/defi/{address}", s.activity).Methods(http.MethodGet)
	r.HandleFunc("/defi/{address}/history", s.history).Methods(http.MethodGet)
	r.HandleFunc("/defi/curve/{pool}/events", s.curveEvents).Methods(http.MethodGet)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.History(mux.Vars(r)["address"], defaultHistoryLimit)
	if err != nil {
		rest.SendError(w, http.StatusInternalServerError, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, records)
}

func (s *Server) activity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.service.Analyze(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		rest.SendError(w, http.StatusBadGateway, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, activity)
}

func (s *Server) curveEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.service.CurvePoolActivity(r.Context(), mux.Vars(r)["pool"])
	if err != nil {
		rest.SendError(w, http.StatusBadGateway, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, events)
}
