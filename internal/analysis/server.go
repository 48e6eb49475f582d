package analysis

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/rest"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

type analyzeRequest struct {
	Address               string `json:"address"`
	Chain                 string `json:"chain"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	IncludeInternal       bool   `json:"include_internal"`
	IncludeTokenTransfers bool   `json:"include_token_transfers"`
}

type analyzeResponse struct {
	ID      uuid.UUID        `json:"id"`
	Summary *Summary         `json:"summary"`
	Counts  etherscan.Counts `json:"counts"`
}

type chainInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/analysis", s.analyze).Methods(http.MethodPost)
	r.HandleFunc("/analysis/latest", s.latestByAddress).Methods(http.MethodGet)
	r.HandleFunc("/analysis/{id}", s.getByID).Methods(http.MethodGet)
	r.HandleFunc("/analysis/{id}/graph.gexf", s.getGraph).Methods(http.MethodGet)
	r.HandleFunc("/chains", s.listChains).Methods(http.MethodGet)
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

	chainID, err := resolveChain(req.Chain)
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, err.Error())

		return
	}

	result, err := s.service.Analyze(r.Context(), Request{
		Address:               req.Address,
		ChainID:               chainID,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		IncludeInternal:       req.IncludeInternal,
		IncludeTokenTransfers: req.IncludeTokenTransfers,
	})
	if err != nil {
		rest.SendError(w, http.StatusBadGateway, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, analyzeResponse{
		ID:      result.ID,
		Summary: result.Summary,
		Counts:  result.Counts,
	})
}

func (s *Server) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid analysis id")

		return
	}

	record, summary, err := s.service.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, analyzeResponse{
		ID:      record.ID,
		Summary: summary,
	})
}

func (s *Server) latestByAddress(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		rest.SendError(w, http.StatusBadRequest, "address is required")

		return
	}

	record, summary, err := s.service.GetLatestByAddress(address)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, analyzeResponse{
		ID:      record.ID,
		Summary: summary,
	})
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid analysis id")

		return
	}

	record, _, err := s.service.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(record.GraphGEXF))
}

func (s *Server) listChains(w http.ResponseWriter, _ *http.Request) {
	names := etherscan.SupportedChainNames()
	chains := make([]chainInfo, 0, len(names))
	for _, name := range names {
		id, err := etherscan.ChainByName(name)
		if err != nil {
			continue
		}

		chains = append(chains, chainInfo{
			ID:   int64(id),
			Name: name,
		})
	}

	rest.SendJSON(w, http.StatusOK, chains)
}

func resolveChain(name string) (etherscan.ChainID, error) {
	if name == "" {
		return etherscan.ChainEthereum, nil
	}

	if raw, err := strconv.ParseInt(name, 10, 64); err == nil {
		id := etherscan.ChainID(raw)

		return id, id.Validate()
	}

	return etherscan.ChainByName(name)
}
