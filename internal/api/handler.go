// Package api provides the HTTP handlers for the pagelens SEO analysis
// service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pagelens/pagelens/internal/analyzer"
	"github.com/pagelens/pagelens/internal/auditor"
	"github.com/pagelens/pagelens/internal/notify"
	"github.com/pagelens/pagelens/internal/rank"
	"github.com/pagelens/pagelens/internal/store"
)

// Engine runs the analysis pipeline for one URL.
type Engine interface {
	Analyze(ctx context.Context, url string) (*analyzer.Analysis, error)
	Audit(ctx context.Context, url string) (*analyzer.Analysis, *auditor.Result, error)
}

// RankLookup finds a domain's search position for a keyword.
type RankLookup interface {
	Lookup(ctx context.Context, keyword, targetDomain string) (*rank.Lookup, error)
}

// AuditStore persists audit history.
type AuditStore interface {
	SaveAudit(ctx context.Context, projectID, url string, score int, payload string) (string, error)
	ListAudits(ctx context.Context, projectID string, limit int) ([]*store.AuditRecord, error)
}

// KeywordStore persists keyword ranking history.
type KeywordStore interface {
	SaveRanking(ctx context.Context, keywordID, keyword string, rank *int, url *string) (string, error)
	ListRankings(ctx context.Context, keywordID string, limit int) ([]*store.RankingRecord, error)
}

// Notifier pushes audit alerts. May be nil when unconfigured.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Handler manages API endpoints.
type Handler struct {
	engine         Engine
	rank           RankLookup
	audits         AuditStore
	keywords       KeywordStore
	notifier       Notifier
	maxBodySize    int64
	scoreThreshold int
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "pagelens",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// limitBody caps the request body when a limit is configured.
func (h *Handler) limitBody(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
}
