package batch

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/internal/rest"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const maxUploadSize = 1 << 20 // 1 MiB

type runRequest struct {
	Addresses []string `json:"addresses"`
	Chain     string   `json:"chain"`
}

type jobResponse struct {
	Job     Job      `json:"job"`
	Results []Result `json:"results"`
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/batch", s.run).Methods(http.MethodPost)
	r.HandleFunc("/batch/upload", s.upload).Methods(http.MethodPost)
	r.HandleFunc("/batch/{id}", s.getJob).Methods(http.MethodGet)
	r.HandleFunc("/batch/{id}/report.csv", s.csvReport).Methods(http.MethodGet)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if len(req.Addresses) == 0 {
		rest.SendError(w, http.StatusBadRequest, "addresses are required")

		return
	}

	entries := make([]Entry, 0, len(req.Addresses))
	for _, addr := range req.Addresses {
		entries = append(entries, Entry{Address: addr})
	}

	s.execute(w, r, req.Chain, entries)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid multipart form")

		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "file field is required")

		return
	}
	defer file.Close()

	entries, err := ParseCSV(file)
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, err.Error())

		return
	}

	s.execute(w, r, r.FormValue("chain"), entries)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, chain string, entries []Entry) {
	chainID := etherscan.ChainEthereum
	if chain != "" {
		var err error
		chainID, err = etherscan.ChainByName(chain)
		if err != nil {
			rest.SendError(w, http.StatusBadRequest, err.Error())

			return
		}
	}

	job, results, err := s.service.Run(r.Context(), chainID, entries)
	if err != nil {
		log.Error().Err(err).Msg("batch run failed")
		rest.SendError(w, http.StatusInternalServerError, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, jobResponse{Job: *job, Results: results})
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid job id")

		return
	}

	job, results, err := s.service.GetJob(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, jobResponse{Job: job, Results: results})
}

func (s *Server) csvReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid job id")

		return
	}

	_, results, err := s.service.GetJob(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="batch_analysis_results.csv"`)
	if err := WriteCSV(w, results); err != nil {
		log.Error().Err(err).Msg("write csv report")
	}
}
