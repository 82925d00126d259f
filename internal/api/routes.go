package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	router   chi.Router
	handlers *Handler
	logger   *zap.Logger
}

// NewServer creates a new API server
func NewServer(h *Handler, logger *zap.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		handlers: h,
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(LoggingMiddleware(s.logger))
	s.router.Use(RecoveryMiddleware(s.logger))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	// Observability APIs
	s.router.Get("/health", s.handlers.GetHealth)
	s.router.Get("/metrics", s.handlers.GetMetrics)

	s.router.Route("/api/v1/vitals", func(r chi.Router) {
		r.Get("/frame", s.handlers.GetFrame)

		r.Get("/history", s.handlers.GetHistory)
		r.Delete("/history", s.handlers.ResetHistory)

		r.Post("/tick", s.handlers.Tick)

		r.Get("/monitoring", s.handlers.GetMonitoring)
		r.Put("/monitoring", s.handlers.SetMonitoring)

		r.Get("/patient", s.handlers.GetPatient)
		r.Put("/patient", s.handlers.UpdatePatient)

		r.Post("/classify", s.handlers.Classify)
	})
}

// Router returns the chi router
func (s *Server) Router() http.Handler {
	return s.router
}
