package httpapi

import (
	"net/http"
	"strconv"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gate.Persons())
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req types.NewPerson
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := s.gate.CreatePerson(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "create person", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	var patch types.PersonPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	p, err := s.gate.UpdatePerson(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeServiceError(w, r, "update person", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.DeletePerson(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, "delete person", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecentPersons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gate.RecentPersons())
}

func (s *Server) handleSearchPersons(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, s.gate.SearchPersons(r.URL.Query().Get("q"), limit))
}
