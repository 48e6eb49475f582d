package advanced

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/chainconn"
	"github.com/openchain-labs/openchain-ir/internal/rest"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/addresses/{address}", s.analyzeAddress).Methods(http.MethodGet)
}

func (s *Server) analyzeAddress(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if !chainconn.ValidateAddress(address) {
		rest.SendError(w, http.StatusBadRequest, "invalid address")

		return
	}

	chainID := etherscan.ChainEthereum
	if chain := r.URL.Query().Get("chain"); chain != "" {
		id, err := etherscan.ChainByName(chain)
		if err != nil {
			rest.SendError(w, http.StatusBadRequest, err.Error())

			return
		}
		chainID = id
	}

	profile, err := s.service.Analyze(r.Context(), address, chainID)
	if err != nil {
		rest.SendError(w, http.StatusBadGateway, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, profile)
}
