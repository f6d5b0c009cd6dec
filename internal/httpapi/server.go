package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/service"
	"github.com/BrandonDHaskell/gatelog/server/internal/logging"
)

type Dependencies struct {
	Logger logging.Logger
	Addr   string
	Gate   *service.GateService

	// Location interprets date-only filter bounds. Defaults to time.Local.
	Location *time.Location

	// JWTSecret enables bearer auth on /v1 when non-empty.
	JWTSecret []byte
}

type Server struct {
	httpServer *http.Server
	logger     logging.Logger
	mux        *http.ServeMux
	gate       *service.GateService
	loc        *time.Location
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	s := &Server{
		logger: d.Logger.With("module", "httpapi"),
		mux:    mux,
		gate:   d.Gate,
		loc:    loc,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /v1/persons", s.handleListPersons)
	mux.HandleFunc("POST /v1/persons", s.handleCreatePerson)
	mux.HandleFunc("GET /v1/persons/recent", s.handleRecentPersons)
	mux.HandleFunc("GET /v1/persons/search", s.handleSearchPersons)
	mux.HandleFunc("PATCH /v1/persons/{id}", s.handleUpdatePerson)
	mux.HandleFunc("DELETE /v1/persons/{id}", s.handleDeletePerson)

	mux.HandleFunc("GET /v1/logs", s.handleListLogs)
	mux.HandleFunc("POST /v1/logs", s.handleRecordEntry)
	mux.HandleFunc("PATCH /v1/logs/{id}", s.handleUpdateLog)
	mux.HandleFunc("DELETE /v1/logs/{id}", s.handleDeleteLog)
	mux.HandleFunc("GET /v1/logs/export", s.handleExport)
	mux.HandleFunc("POST /v1/logs/export/archive", s.handleArchive)

	mux.HandleFunc("GET /v1/stats", s.handleStats)
	mux.HandleFunc("GET /v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /v1/settings", s.handleUpdateSettings)

	var handler http.Handler = mux
	handler = authMiddleware(d.JWTSecret, handler)
	handler = loggingMiddleware(s.logger, handler)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if !s.gate.Loaded() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{"ok": status == http.StatusOK})
}
