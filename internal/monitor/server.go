package monitor

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.openly.dev/pointy"

	"github.com/openchain-labs/openchain-ir/internal/rest"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

type subscribeRequest struct {
	Address                string `json:"address"`
	Chain                  string `json:"chain"`
	AlertOnNewTx           *bool  `json:"alert_on_new_tx"`
	AlertOnAnomaly         *bool  `json:"alert_on_anomaly"`
	AlertOnNewCounterparty *bool  `json:"alert_on_new_counterparty"`
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) EnrollRoutes(r *mux.Router) {
	r.HandleFunc("/monitor", s.subscribe).Methods(http.MethodPost)
	r.HandleFunc("/monitor", s.status).Methods(http.MethodGet)
	r.HandleFunc("/monitor/{address}", s.unsubscribe).Methods(http.MethodDelete)
	r.HandleFunc("/alerts", s.listAlerts).Methods(http.MethodGet)
	r.HandleFunc("/alerts/{id}/ack", s.acknowledge).Methods(http.MethodPost)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
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
		id, err := etherscan.ChainByName(req.Chain)
		if err != nil {
			rest.SendError(w, http.StatusBadRequest, err.Error())

			return
		}
		chainID = id
	}

	job, err := s.service.Subscribe(Subscription{
		Address:                req.Address,
		ChainID:                chainID,
		AlertOnNewTx:           pointy.BoolValue(req.AlertOnNewTx, true),
		AlertOnAnomaly:         pointy.BoolValue(req.AlertOnAnomaly, true),
		AlertOnNewCounterparty: pointy.BoolValue(req.AlertOnNewCounterparty, false),
	})
	if err != nil {
		if errors.Is(err, ErrLimitReached) {
			rest.SendError(w, http.StatusConflict, err.Error())

			return
		}
		rest.SendError(w, http.StatusBadRequest, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusCreated, job)
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Unsubscribe(mux.Vars(r)["address"]); err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	status, err := s.service.Status()
	if err != nil {
		rest.SendError(w, http.StatusInternalServerError, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, status)
}

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	var filters []Filter

	if address := r.URL.Query().Get("address"); address != "" {
		filters = append(filters, AddressFilter{Address: address})
	}
	if severity := r.URL.Query().Get("severity"); severity != "" {
		filters = append(filters, SeverityFilter{Severity: Severity(severity)})
	}
	if r.URL.Query().Get("unacknowledged") == "true" {
		filters = append(filters, UnacknowledgedFilter{})
	}

	alerts, err := s.service.Alerts(filters)
	if err != nil {
		rest.SendError(w, http.StatusInternalServerError, err.Error())

		return
	}

	rest.SendJSON(w, http.StatusOK, alerts)
}

func (s *Server) acknowledge(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.SendError(w, http.StatusBadRequest, "invalid alert id")

		return
	}

	alert, err := s.service.AcknowledgeAlert(id)
	if err != nil {
		rest.HandleStorageError(w, err)

		return
	}

	rest.SendJSON(w, http.StatusOK, alert)
}
