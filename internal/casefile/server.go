package casefile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/rest"
)

const defaultCasesLimit = 50

type createCaseRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Investigator string `json:"investigator"`
	Jurisdiction string `json:"jurisdiction"`
	CaseType     string `json:"case_type"`
}

type addAddressRequest struct {
	Address   string `json:"address"`
	Tag       string `json:"tag"`
	Notes     string `json:"notes"`
	RiskLevel int    `json:"risk_level"`
}

type addNoteRequest struct {
	Content string `json:"content"`
	Address string `json:"address"`
}

type addFindingRequest struct {
	Finding string `json:"finding"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/cases", s.createCase).Methods(http.MethodPost)
	r.HandleFunc("/cases", s.listCases).Methods(http.MethodGet)
	r.HandleFunc("/cases/{id}", s.getCase).Methods(http.MethodGet)
	r.HandleFunc("/cases/{id}/status", s.updateStatus).Methods(http.MethodPut)
	r.HandleFunc("/cases/{id}/addresses", s.addAddress).Methods(http.MethodPost)
	r.HandleFunc("/cases/{id}/notes", s.addNote).Methods(http.MethodPost)
	r.HandleFunc("/cases/{id}/findings", s.addFinding).Methods(http.MethodPost)
	r.HandleFunc("/cases/{id}/summary", s.caseSummary).Methods(http.MethodGet)
	r.HandleFunc("/cases/{id}/report", s.caseReport).Methods(http.MethodGet)
	r.HandleFunc("/cases/{id}/export", s.exportCase).Methods(http.MethodGet)
}

func (s *Server) caseSummary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	summary, err := s.service.Summary(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, summary)
}

func (s *Server) caseReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	body, err := s.service.Report(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) exportCase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	item, err := s.service.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="case_export.json"`)
	rest.SendJSON(w, http.StatusOK, item)
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Name == "" {
		rest.SendError(w, http.StatusBadRequest, "name is required")

		return
	}

	item, err := s.service.CreateCase(req.Name, req.Description, req.Investigator, req.Jurisdiction, req.CaseType)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusCreated, item)
}

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	filters := []Filter{OrderByCreatedFilter{}}

	if status := r.URL.Query().Get("status"); status != "" {
		filters = append(filters, StatusFilter{Status: Status(status)})
	}
	if investigator := r.URL.Query().Get("investigator"); investigator != "" {
		filters = append(filters, InvestigatorFilter{Investigator: investigator})
	}

	limit := defaultCasesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	filters = append(filters, PageFilter{Offset: offset, Limit: limit})

	cases, err := s.service.GetByFilters(filters)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, cases)
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	item, err := s.service.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, item)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	var req updateStatusRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	status := Status(req.Status)
	switch status {
	case StatusActive, StatusClosed, StatusArchived:
	default:
		rest.SendError(w, http.StatusBadRequest, "unknown status")

		return
	}

	item, err := s.service.UpdateStatus(id, status)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, item)
}

func (s *Server) addAddress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	var req addAddressRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Address == "" {
		rest.SendError(w, http.StatusBadRequest, "address is required")

		return
	}

	tag := AddressTag(req.Tag)
	if tag == "" {
		tag = TagSuspect
	}

	item, err := s.service.AddAddress(id, req.Address, tag, req.Notes, req.RiskLevel)
	if err != nil {
		s.handleServiceError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusCreated, item)
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	var req addNoteRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Content == "" {
		rest.SendError(w, http.StatusBadRequest, "content is required")

		return
	}

	note, err := s.service.AddNote(id, req.Content, req.Address)
	if err != nil {
		s.handleServiceError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusCreated, note)
}

func (s *Server) addFinding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid case id")

		return
	}

	var req addFindingRequest
	if err := rest.DecodeBody(r, &req); err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Finding == "" {
		rest.SendError(w, http.StatusBadRequest, "finding is required")

		return
	}

	finding, err := s.service.AddFinding(id, req.Finding)
	if err != nil {
		s.handleServiceError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusCreated, finding)
}

func (s *Server) handleServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrCaseClosed) {
		rest.SendError(w, http.StatusConflict, ErrCaseClosed.Error())

		return
	}

	rest.HandleStorageError(w, err)
}
