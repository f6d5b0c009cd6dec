package httpapi

import (
	"net/http"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gate.Stats())
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gate.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch types.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	st, err := s.gate.UpdateSettings(r.Context(), patch)
	if err != nil {
		s.writeServiceError(w, r, "update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
