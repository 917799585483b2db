package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/umbrella-gate/internal/display"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Panel is the slice of panel.Panel the HTTP adapter drives.
type Panel interface {
	Snapshot() domain.Evaluation
	Toggle(in domain.Input, source string) domain.Evaluation
	Set(in domain.Input, v bool, source string) domain.Evaluation
}

// Server exposes health, readiness, metrics and the panel API.
type Server struct {
	httpServer *http.Server
	panel      Panel
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and /api routes.
func NewServer(addr string, pnl Panel, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		panel:  pnl,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/panel", s.handlePanel)
	mux.HandleFunc("POST /api/inputs/{input}/toggle", s.handleToggle)
	mux.HandleFunc("PUT /api/inputs/{input}", s.handleSet)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// panelResponse is the body of every /api response.
type panelResponse struct {
	Evaluation domain.Evaluation `json:"evaluation"`
	Display    display.View      `json:"display"`
}

type setRequest struct {
	Value *bool `json:"value"`
}

func (s *Server) handlePanel(w http.ResponseWriter, _ *http.Request) {
	writePanel(w, s.panel.Snapshot())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	in, ok := s.parseInput(w, r)
	if !ok {
		return
	}
	ev := s.panel.Toggle(in, domain.SourceHTTP)
	s.logger.Info("input toggled", "input", in, "value", ev.Inputs.Get(in), "reminder", domain.ReminderLabel(ev.Result.ReminderOn))
	writePanel(w, ev)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	in, ok := s.parseInput(w, r)
	if !ok {
		return
	}

	var req setRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body must be {\"value\": true|false}")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	ev := s.panel.Set(in, *req.Value, domain.SourceHTTP)
	s.logger.Info("input set", "input", in, "value", *req.Value, "reminder", domain.ReminderLabel(ev.Result.ReminderOn))
	writePanel(w, ev)
}

func (s *Server) parseInput(w http.ResponseWriter, r *http.Request) (domain.Input, bool) {
	in, err := domain.ParseInput(r.PathValue("input"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUnknownInput) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return "", false
	}
	return in, true
}

func writePanel(w http.ResponseWriter, ev domain.Evaluation) {
	sharedobs.WriteJSON(w, http.StatusOK, panelResponse{Evaluation: ev, Display: display.Build(ev)})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
