package report

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/openchain-labs/openchain-ir/internal/ai"
	"github.com/openchain-labs/openchain-ir/internal/analysis"
	"github.com/openchain-labs/openchain-ir/internal/rest"
)

const defaultCaseNumber = "2024001"

// SummaryGetter resolves stored analysis summaries for report generation.
type SummaryGetter interface {
	GetByID(id uuid.UUID) (analysis.Record, *analysis.Summary, error)
}

type legalRequest struct {
	CaseID       string `json:"case_id"`
	Investigator string `json:"investigator"`
	Department   string `json:"department"`
}

type forensicRequest struct {
	Findings []string `json:"findings"`
}

type Server struct {
	summaries SummaryGetter
	insights  *ai.Service
}

func NewServer(summaries SummaryGetter, insights *ai.Service) *Server {
	return &Server{
		summaries: summaries,
		insights:  insights,
	}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/analysis/{id}/report", s.forensicReport).Methods(http.MethodPost)
	r.HandleFunc("/analysis/{id}/legal-report", s.legalReport).Methods(http.MethodPost)
}

func (s *Server) forensicReport(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.resolveSummary(w, r)
	if !ok {
		return
	}

	var req forensicRequest
	if r.ContentLength > 0 {
		if err := rest.DecodeBody(r, &req); err != nil {
			rest.SendError(w, http.StatusBadRequest, "invalid request body")

			return
		}
	}

	insights := s.insights.Comprehensive(r.Context(), summary)
	doc := BuildForensic(summary, insights, req.Findings, "Etherscan API", time.Now())

	if wantsText(r) {
		sendText(w, doc.Text())

		return
	}

	rest.SendJSON(w, http.StatusOK, doc)
}

func (s *Server) legalReport(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.resolveSummary(w, r)
	if !ok {
		return
	}

	req := legalRequest{CaseID: defaultCaseNumber}
	if r.ContentLength > 0 {
		if err := rest.DecodeBody(r, &req); err != nil {
			rest.SendError(w, http.StatusBadRequest, "invalid request body")

			return
		}
	}
	if req.CaseID == "" {
		req.CaseID = defaultCaseNumber
	}

	narrative := s.insights.Narrative(r.Context(), summary)
	doc := NewLegalGenerator(req.CaseID, req.Investigator, req.Department).FIR(summary, narrative, time.Now())

	if wantsText(r) {
		sendText(w, doc.Text())

		return
	}

	rest.SendJSON(w, http.StatusOK, doc)
}

func (s *Server) resolveSummary(w http.ResponseWriter, r *http.Request) (*analysis.Summary, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid analysis id")

		return nil, false
	}

	_, summary, err := s.summaries.GetByID(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return nil, false
	}

	return summary, true
}

func wantsText(r *http.Request) bool {
	return r.URL.Query().Get("format") == "text"
}

func sendText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
