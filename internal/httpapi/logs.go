package httpapi

import (
	"net/http"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query(), s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	logs := s.gate.FilteredLogs(f)

	if wantsProtobuf(r) {
		list, err := toListValue(logs)
		if err != nil {
			s.writeServiceError(w, r, "encode logs", err)
			return
		}
		writeProto(w, http.StatusOK, list)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// handleRecordEntry accepts an EntryRequest as JSON, or as a
// google.protobuf.Struct with the same snake_case keys. The response uses
// the request's encoding.
func (s *Server) handleRecordEntry(w http.ResponseWriter, r *http.Request) {
	var req types.EntryRequest
	asProto := isProtobuf(r)

	if asProto {
		var st structpb.Struct
		if err := readProto(r, &st); err != nil {
			writeError(w, http.StatusBadRequest, "bad_protobuf", "invalid protobuf body")
			return
		}
		req = entryRequestFromStruct(&st)
	} else if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.gate.RecordEntry(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, "record entry", err)
		return
	}

	if asProto {
		st, err := toStruct(resp)
		if err != nil {
			s.writeServiceError(w, r, "encode entry", err)
			return
		}
		writeProto(w, http.StatusCreated, st)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateLog(w http.ResponseWriter, r *http.Request) {
	var patch types.EntryLogPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	l, err := s.gate.UpdateLog(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeServiceError(w, r, "update log", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.DeleteLog(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, "delete log", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query(), s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	name, data := s.gate.ExportCSV(f)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query(), s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	a, err := s.gate.ArchiveExport(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, "archive export", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
