package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/briefly-app/briefly/internal/middleware"
)

// HandlerSet holds handler functions injected from main.go to avoid import cycles.
type HandlerSet struct {
	// Session lifecycle
	CreateSession http.HandlerFunc
	GetSession    http.HandlerFunc
	DeleteSession http.HandlerFunc

	// Session-scoped operations
	SetText        http.HandlerFunc
	LoadSampleText http.HandlerFunc
	UploadDocument http.HandlerFunc
	GetQuota       http.HandlerFunc
	GetHistory     http.HandlerFunc
	ClearHistory   http.HandlerFunc

	// Summarization
	Generate        http.HandlerFunc
	DownloadSummary http.HandlerFunc

	// SessionMiddleware resolves {sessionID} into the request context.
	SessionMiddleware func(http.Handler) http.Handler
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	CORSAllowedOrigins []string

	// SummarizeRateLimiter optionally guards the generate route per IP.
	SummarizeRateLimiter func(http.Handler) http.Handler

	// RedisHealthy is consulted by the readiness probe when the rate
	// limiter is configured; nil means Redis is not part of readiness.
	RedisHealthy func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig, h HandlerSet) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(mw.CORS(cfg.CORSAllowedOrigins)))

	// Liveness probe, always 200 with no dependency checks
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	// Readiness probe. Redis is the only external dependency worth
	// checking; the Gemini credential is validated at startup.
	readinessHandler := func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{
			"status": "healthy",
			"redis":  "not configured",
		}
		status := http.StatusOK

		if cfg.RedisHealthy != nil {
			if err := cfg.RedisHealthy(r.Context()); err != nil {
				health["redis"] = "unhealthy"
				health["status"] = "degraded"
				status = http.StatusServiceUnavailable
			} else {
				health["redis"] = "healthy"
			}
		}

		JSON(w, status, health)
	}

	r.Get("/health/ready", readinessHandler)
	r.Get("/health", readinessHandler)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(h.SessionMiddleware)

			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)

			r.Put("/text", h.SetText)
			r.Post("/text/sample", h.LoadSampleText)
			r.Post("/documents", h.UploadDocument)

			r.Get("/quota", h.GetQuota)
			r.Get("/history", h.GetHistory)
			r.Delete("/history", h.ClearHistory)

			r.Group(func(r chi.Router) {
				if cfg.SummarizeRateLimiter != nil {
					r.Use(cfg.SummarizeRateLimiter)
				}
				r.Post("/summaries", h.Generate)
			})

			r.Get("/summaries/latest/download", h.DownloadSummary)
		})
	})

	return r
}
