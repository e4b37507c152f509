package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/doctriage/internal/config"
	"github.com/dgallion1/doctriage/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for doctriage.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	engine       *pipeline.Engine
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, engine *pipeline.Engine, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		engine:       engine,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints (auth is a no-op when no key is configured).
	r.Group(func(r chi.Router) {
		if s.cfg.Server.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.Server.APIKey, s.log))
		}

		r.Post("/api/triage", s.handleTriage)
		r.Get("/api/triage/{jobID}/status", s.handleTriageStatus)
		r.Get("/api/triage/{jobID}/report", s.handleTriageReport)
		r.Get("/api/stats/pipeline", s.handlePipelineStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
