package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/export"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/service"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// writeServiceError maps service errors to status codes. Anything it does
// not recognise is logged and reported as a 500 without detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, "person_not_found", err.Error())
	case errors.Is(err, service.ErrLogNotFound):
		writeError(w, http.StatusNotFound, "log_not_found", err.Error())
	case errors.Is(err, export.ErrArchiveDisabled):
		writeError(w, http.StatusServiceUnavailable, "archive_disabled", err.Error())
	default:
		s.logger.Error(r.Context(), op+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

// decodeJSON reads a size-limited JSON body that must not carry unknown
// fields. On failure it has already written the 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return false
	}
	return true
}
