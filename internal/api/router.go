package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries the collaborators and limits for the API router.
type RouterConfig struct {
	// Engine runs the analysis pipeline
	Engine Engine
	// Rank is the rank lookup adapter, nil when unconfigured
	Rank RankLookup
	// Audits persists audit history, nil disables persistence
	Audits AuditStore
	// Keywords persists ranking history, nil disables persistence
	Keywords KeywordStore
	// Notifier delivers low-score alerts, nil disables alerts
	Notifier Notifier
	// MaxBodySize caps request bodies in bytes
	MaxBodySize int64
	// RequestTimeout bounds a single API request
	RequestTimeout time.Duration
	// ScoreThreshold triggers alerts for audits scoring below it
	ScoreThreshold int
}

// NewRouter creates a chi router with all endpoints and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		engine:         cfg.Engine,
		rank:           cfg.Rank,
		audits:         cfg.Audits,
		keywords:       cfg.Keywords,
		notifier:       cfg.Notifier,
		maxBodySize:    cfg.MaxBodySize,
		scoreThreshold: cfg.ScoreThreshold,
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Heartbeat("/ping"))

	// CORS for browser clients
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/audit", h.handleAudit)
		r.Get("/audits", h.handleAuditList)
		r.Post("/keywords/check", h.handleKeywordCheck)
		r.Get("/rankings", h.handleRankingList)
	})

	return r
}
