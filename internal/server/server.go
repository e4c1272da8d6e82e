// Package server mounts the HTTP surface on the goa muxer.
package server

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"

	"aisolutions/internal/config"
	"aisolutions/internal/metrics"
	"aisolutions/internal/services"
)

// Services groups the services the handlers call
type Services struct {
	Auth        *services.AuthService
	Inquiries   *services.InquiryService
	Reviews     *services.ReviewService
	Newsletters *services.NewsletterService
	Health      *services.HealthService
}

// Server routes requests to the services
type Server struct {
	cfg *config.Config
	svc Services
	log *zap.Logger
	mux goahttp.Muxer
}

// New creates a server and mounts every route
func New(cfg *config.Config, svc Services, log *zap.Logger) *Server {
	s := &Server{
		cfg: cfg,
		svc: svc,
		log: log,
		mux: goahttp.NewMuxer(),
	}
	s.mount()
	return s
}

func (s *Server) mount() {
	admin := s.svc.Auth.RequireAdmin(s.writeError)
	guarded := func(h http.HandlerFunc) http.HandlerFunc {
		return admin(h).ServeHTTP
	}

	s.handle("GET", "/", s.root)
	s.handle("GET", "/health", s.health)
	s.handle("GET", "/metrics", promhttp.Handler().ServeHTTP)

	s.handle("POST", "/api/login", s.login)

	inq, rev, nl := s.svc.Inquiries, s.svc.Reviews, s.svc.Newsletters

	s.handle("POST", "/api/inquiries", handleCreate(s, inq.Submit, inq.CreatedMessage()))
	s.handle("GET", "/api/inquiries", guarded(handleList(s, inq.List)))
	s.handle("PUT", "/api/inquiries/{id}", guarded(handleUpdate(s, inq.Update)))
	s.handle("DELETE", "/api/inquiries/{id}", guarded(handleDelete(s, inq.Delete)))
	s.handle("GET", "/api/export", guarded(s.exportInquiries))

	s.handle("POST", "/api/reviews", handleCreate(s, rev.Create, rev.CreatedMessage()))
	s.handle("GET", "/api/reviews", handleList(s, rev.List))
	s.handle("PUT", "/api/reviews/{id}", guarded(handleUpdate(s, rev.Update)))
	s.handle("DELETE", "/api/reviews/{id}", guarded(handleDelete(s, rev.Delete)))

	s.handle("POST", "/api/newsletters", handleCreate(s, nl.Create, nl.CreatedMessage()))
	s.handle("GET", "/api/newsletters", guarded(handleList(s, nl.List)))
	s.handle("PUT", "/api/newsletters/{id}", guarded(handleUpdate(s, nl.Update)))
	s.handle("DELETE", "/api/newsletters/{id}", guarded(handleDelete(s, nl.Delete)))
}

func (s *Server) handle(method, pattern string, h http.HandlerFunc) {
	s.mux.Handle(method, pattern, metrics.WithRoute(pattern, h))
}

// Handler returns the muxer wrapped in the middleware chain:
// security headers -> CORS -> request id -> logging -> metrics -> mux.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = metrics.PrometheusMiddleware(h)
	h = requestLogging(s.log)(h)
	h = middleware.PopulateRequestContext()(h)
	h = middleware.RequestID()(h)
	h = cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   s.cfg.CORS.AllowedMethods,
		AllowedHeaders:   s.cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           s.cfg.CORS.MaxAge,
	})(h)
	h = securityHeaders(s.cfg.App.Debug)(h)
	return h
}
