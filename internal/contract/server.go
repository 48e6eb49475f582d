package contract

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/rest"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

type analyzeRequest struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/contracts/analyze", s.analyze).Methods(http.MethodPost)
	r.HandleFunc("/contracts/{address}/history", s.history).Methods(http.MethodGet)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Address == "" {
		rest.SendError(w, http.StatusBadRequest, "address is required")

		return
	}

	chainID := etherscan.ChainEthereum
	if req.Chain != "" {
		var err error
		chainID, err = etherscan.ChainByName(req.Chain)
		if err != nil {
			rest.SendError(w, http.StatusBadRequest, err.Error())

			return
		}
	}

	report, err := s.service.Analyze(r.Context(), req.Address, chainID)
	if err != nil {
		rest.SendError(w, http.StatusBadGateway, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, report)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.History(mux.Vars(r)["address"])
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, records)
}
