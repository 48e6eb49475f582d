package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type errorResponse struct {
	Error string `json:"error"`
}

// SendJSON writes a JSON body with the given status code.
func SendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// SendError writes a JSON error envelope.
func SendError(w http.ResponseWriter, status int, msg string) {
	SendJSON(w, status, errorResponse{Error: msg})
}

// HandleStorageError maps repository errors to HTTP responses.
func HandleStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		SendError(w, http.StatusNotFound, "not found")

		return
	}

	log.Error().Err(err).Msg("storage error")
	SendError(w, http.StatusInternalServerError, "internal error")
}

// DecodeBody decodes a JSON request body, rejecting unknown fields.
func DecodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(dst)
}
