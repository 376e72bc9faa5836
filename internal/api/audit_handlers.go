package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pagelens/pagelens/internal/analyzer"
	"github.com/pagelens/pagelens/internal/auditor"
	"github.com/pagelens/pagelens/internal/fetcher"
	"github.com/pagelens/pagelens/internal/notify"
	"github.com/pagelens/pagelens/internal/store"
)

// AuditRequest represents an audit request.
type AuditRequest struct {
	// ProjectID associates the audit with a project for history
	ProjectID string `json:"project_id"`
	// URL is the absolute http(s) URL to audit
	URL string `json:"url"`
}

// AuditData is the payload of a successful audit.
type AuditData struct {
	// ID is the persisted audit record ID, empty when persistence is disabled
	ID       string             `json:"id,omitempty"`
	Score    int                `json:"score"`
	Checks   []auditor.Check    `json:"checks"`
	Analysis *analyzer.Analysis `json:"analysis"`
}

// AuditResponse represents the audit response.
type AuditResponse struct {
	Success bool       `json:"success"`
	Data    *AuditData `json:"data,omitempty"`
	Error   *Error     `json:"error,omitempty"`
}

// handleAudit runs the full analysis and audit pipeline, persists the
// result and fires a low-score alert when a notifier is configured.
func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req AuditRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrProjectIDRequired.Error())
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrURLRequired.Error())
		return
	}

	if _, err := fetcher.ValidateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	analysis, result, err := h.engine.Audit(r.Context(), req.URL)
	if err != nil {
		status, code := fetchErrorStatus(err)
		writeError(w, status, code, err.Error())
		return
	}

	data := &AuditData{
		Score:    result.Score,
		Checks:   result.Checks,
		Analysis: analysis,
	}

	if h.audits != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
			return
		}

		id, err := h.audits.SaveAudit(r.Context(), req.ProjectID, analysis.URL, result.Score, string(payload))
		if err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
			return
		}

		data.ID = id
	}

	h.alertLowScore(r, req.ProjectID, analysis.URL, result.Score)

	writeJSON(w, http.StatusOK, AuditResponse{Success: true, Data: data})
}

// alertLowScore delivers a webhook alert when the score falls below the
// configured threshold. Delivery failures are logged, never surfaced.
func (h *Handler) alertLowScore(r *http.Request, projectID, url string, score int) {
	if h.notifier == nil || score >= h.scoreThreshold {
		return
	}

	msg := notify.Message{
		Text:      fmt.Sprintf("audit of %s scored %d, below threshold %d", url, score, h.scoreThreshold),
		URL:       url,
		ProjectID: projectID,
		Score:     score,
	}

	if err := h.notifier.Send(r.Context(), msg); err != nil {
		log.Warn().Err(err).Str("url", url).Int("score", score).Msg("audit alert delivery failed")
	}
}

// AuditListResponse represents the audit history response.
type AuditListResponse struct {
	Success bool                 `json:"success"`
	Data    []*store.AuditRecord `json:"data,omitempty"`
	Error   *Error               `json:"error,omitempty"`
}

// handleAuditList returns recent audits for a project.
func (h *Handler) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if h.audits == nil {
		writeError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrStoreNotConfigured.Error())
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrProjectIDRequired.Error())
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.audits.ListAudits(r.Context(), projectID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AuditListResponse{Success: true, Data: records})
}
