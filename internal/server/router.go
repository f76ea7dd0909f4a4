package server

import (
	"net/http"
	"time"

	"fjacquet/credit-report/internal/config"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/parser"
	"fjacquet/credit-report/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Rate limit rejection messages.
const (
	msgTooManyRequests = "Too many requests from this IP, please try again later"
	msgTooManyUploads  = "Too many file uploads from this IP, please try again later"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Parser         parser.Parser
	Store          store.Repository
	Upload         config.UploadConfig
	RateLimit      config.RateLimitConfig
	AllowedOrigins []string
	Version        string
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRouter wires the report API under /api/v1/reports and the legacy
// /api/reports prefix, plus /health.
func NewRouter(logger logging.Logger, deps RouterDependencies) http.Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &handlers{
		logger:  logger,
		parser:  deps.Parser,
		store:   deps.Store,
		upload:  deps.Upload,
		version: deps.Version,
		now:     deps.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(deps.AllowedOrigins, true))
	}

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/health", h.health)

	var uploadLimit func(http.Handler) http.Handler
	if deps.RateLimit.Enabled {
		uploadLimit = newClientLimiter(deps.RateLimit.UploadsPerWindow, deps.RateLimit.UploadWindow, msgTooManyUploads).middleware
	}
	reports := func(r chi.Router) {
		r.Get("/stats", h.stats)
		if uploadLimit != nil {
			r.With(uploadLimit).Post("/upload", h.uploadReport)
		} else {
			r.Post("/upload", h.uploadReport)
		}
		r.Get("/", h.listReports)
		r.Get("/{id}", h.getReport)
		r.Delete("/{id}", h.deleteReport)
	}

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimit.Enabled {
			r.Use(newClientLimiter(deps.RateLimit.RequestsPerWindow, deps.RateLimit.Window, msgTooManyRequests).middleware)
		}
		r.Route("/v1/reports", reports)
		r.Route("/reports", reports)
	})

	return r
}
