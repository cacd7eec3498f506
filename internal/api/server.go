// Package api exposes test runs over HTTP so other systems can request a
// domain health check and consume the report as JSON.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/api/middleware"
	"github.com/costmo/validpoint/internal/runner"
)

// RunRequest asks for one or more domains to be tested.
type RunRequest struct {
	Domains  []string `json:"domains"`
	Commands []string `json:"commands,omitempty"`
	Raw      bool     `json:"raw,omitempty"`
}

// RunResponse is one domain's slot in the response. Either Report or Error
// is set.
type RunResponse struct {
	Domain string         `json:"domain"`
	Report *advice.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Config wires the server's collaborators.
type Config struct {
	Runner      *runner.Runner
	ConfigDir   string
	Concurrency int
	RateLimit   int
	Logger      *zap.Logger
}

// Server handles the run API.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// NewServer builds a server around a command runner.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Runner == nil {
		cfg.Runner = runner.New(cfg.Logger.Sugar())
	}
	srv := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := middleware.RequestID(s.withLogging(s.mux))
	handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/runs", s.handleRuns)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Domains) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one domain is required")
		return
	}
	for _, command := range req.Commands {
		if !advice.IsValidCommand(command) {
			s.writeError(w, http.StatusBadRequest, "unknown command: "+command)
			return
		}
	}

	multi := &runner.Multi{
		Runner:       s.cfg.Runner,
		Concurrency:  s.cfg.Concurrency,
		RateLimit:    s.cfg.RateLimit,
		ConfigDir:    s.cfg.ConfigDir,
		StripResults: !req.Raw,
	}

	results := multi.RunDomains(r.Context(), req.Domains, req.Commands)

	out := make([]RunResponse, 0, len(results))
	for _, res := range results {
		entry := RunResponse{Domain: res.Domain}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			report := res.Report
			entry.Report = &report
		}
		out = append(out, entry)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

// withLogging logs one line per request after it completes.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.cfg.Logger.Info("request",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.cfg.Logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
