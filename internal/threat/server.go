package threat

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/rest"
)

type batchCheckRequest struct {
	Addresses []string `json:"addresses"`
}

type addIndicatorRequest struct {
	Address string `json:"address"`
	Source  string `json:"source"`
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/threats/check/{address}", s.check).Methods(http.MethodGet)
	r.HandleFunc("/threats/check", s.batchCheck).Methods(http.MethodPost)
	r.HandleFunc("/threats/indicators", s.addIndicator).Methods(http.MethodPost)
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	rest.SendJSON(w, http.StatusOK, s.service.Check(mux.Vars(r)["address"]))
}

func (s *Server) batchCheck(w http.ResponseWriter, r *http.Request) {
	var req batchCheckRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if len(req.Addresses) == 0 {
		rest.SendError(w, http.StatusBadRequest, "addresses are required")

		return
	}

	rest.SendJSON(w, http.StatusOK, s.service.BatchCheck(req.Addresses))
}

func (s *Server) addIndicator(w http.ResponseWriter, r *http.Request) {
	var req addIndicatorRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Address == "" || req.Source == "" {
		rest.SendError(w, http.StatusBadRequest, "address and source are required")

		return
	}

	indicator, err := s.service.AddIndicator(req.Address, req.Source)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusCreated, indicator)
}
