// Package api exposes a session over JSON HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadfinder/internal/monitoring"
	"github.com/sells-group/leadfinder/internal/session"
)

// maxImportBytes caps the CSV body accepted by POST /import.
const maxImportBytes = 5 << 20

// Options configures the HTTP layer.
type Options struct {
	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

// Server handles HTTP requests for one session.
type Server struct {
	session   *session.Session
	collector *monitoring.Collector
	limiter   *rate.Limiter
	opts      Options
	log       *zap.Logger
}

// New creates a new API server.
func New(sess *session.Session, collector *monitoring.Collector, opts Options) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	return &Server{
		session:   sess,
		collector: collector,
		limiter:   rate.NewLimiter(limit, max(opts.RateBurst, 1)),
		opts:      opts,
		log:       zap.L().With(zap.String("component", "api")),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))
	r.Use(instrument)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Get("/industries", s.industries)
		r.Get("/stats", s.stats)

		r.Get("/search", s.snapshot)
		r.Post("/search", s.search)
		r.Post("/search/retry", s.retry)

		r.Get("/leads", s.listLeads)
		r.Post("/leads/sort", s.sortLeads)
		r.Get("/leads/{id}", s.getLead)
		r.Put("/leads/{id}", s.updateLead)

		r.Post("/import", s.importCSV)
		r.Get("/export", s.exportCSV)
		r.Get("/export.xlsx", s.exportXLSX)
		r.Get("/sample.csv", s.sampleCSV)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
