package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/internal/logging"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/aretw0/incorporate/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// HealthCheck reports the health of one dependency.
type HealthCheck func(ctx context.Context) error

// Server exposes the questionnaire over JSON.
type Server struct {
	conv     ports.Conversation
	sessions *session.Manager
	leads    *leads.Service
	metrics  http.Handler
	checks   map[string]HealthCheck
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLeadService enables POST /sessions/{id}/lead.
func WithLeadService(svc *leads.Service) Option {
	return func(s *Server) {
		s.leads = svc
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck adds a named check to GET /health.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// NewHandler creates the HTTP handler for conv, persisting sessions through sessions.
func NewHandler(conv ports.Conversation, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		conv:     conv,
		sessions: sessions,
		checks:   make(map[string]HealthCheck),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusNotFound, "route not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusMethodNotAllowed, "method not allowed", "")
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", s.getHealth)
		r.Get("/info", s.getInfo)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.getCatalog)
			r.Get("/questions/{questionID}", s.getQuestion)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.createSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.deleteSession)
				r.Get("/progress", s.getProgress)
				r.Post("/answers", s.submitSingle)
				r.Post("/toggles", s.toggleMulti)
				r.Post("/submissions", s.submitMulti)
				r.Post("/lead", s.captureLead)
			})
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getHealth handles GET /health.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	checks := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			status = "degraded"
			checks[name] = err.Error()
			s.requestLogger(r).Warn("health check failed", "check", name, "err", err)
			continue
		}
		checks[name] = "ok"
	}

	if status != "ok" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, healthResponse{Status: status, Checks: checks})
}

// getInfo handles GET /info.
func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"app":       "incorporate-http",
		"version":   strings.TrimSpace(incorporate.Version),
		"questions": s.conv.Catalog().Size(),
	})
}

func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	return s.logger.With("request_id", middleware.GetReqID(r.Context()))
}
