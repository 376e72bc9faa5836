package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/pagelens/pagelens/internal/rank"
	"github.com/pagelens/pagelens/internal/store"
)

// KeywordCheckRequest represents a rank check request.
type KeywordCheckRequest struct {
	// KeywordID identifies the tracked keyword row for history
	KeywordID string `json:"keyword_id"`
	// Keyword is the search term to look up
	Keyword string `json:"keyword"`
	// Domain is the tracked site whose position is wanted
	Domain string `json:"domain"`
}

// KeywordCheckResponse represents the rank check response.
type KeywordCheckResponse struct {
	Success bool         `json:"success"`
	Data    *rank.Lookup `json:"data,omitempty"`
	Error   *Error       `json:"error,omitempty"`
}

// handleKeywordCheck looks up the tracked domain's position for a keyword
// and appends the outcome to ranking history. A failed lookup writes
// nothing, so stored history is never corrupted by provider outages.
func (h *Handler) handleKeywordCheck(w http.ResponseWriter, r *http.Request) {
	if h.rank == nil {
		writeError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrRankNotConfigured.Error())
		return
	}

	h.limitBody(w, r)

	var req KeywordCheckRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	switch {
	case req.KeywordID == "":
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrKeywordIDRequired.Error())
		return
	case req.Keyword == "":
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrKeywordRequired.Error())
		return
	case req.Domain == "":
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
		return
	}

	lookup, err := h.rank.Lookup(r.Context(), req.Keyword, req.Domain)
	if err != nil {
		status := http.StatusBadGateway
		code := errCodeUnavailable

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			status = http.StatusGatewayTimeout
			code = errCodeTimeout
		}

		writeError(w, status, code, err.Error())
		return
	}

	if h.keywords != nil {
		if _, err := h.keywords.SaveRanking(r.Context(), req.KeywordID, req.Keyword, lookup.TargetRank, lookup.TargetURL); err != nil {
			writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, KeywordCheckResponse{Success: true, Data: lookup})
}

// RankingListResponse represents the ranking history response.
type RankingListResponse struct {
	Success bool                   `json:"success"`
	Data    []*store.RankingRecord `json:"data,omitempty"`
	Error   *Error                 `json:"error,omitempty"`
}

// handleRankingList returns recent ranking snapshots for a keyword.
func (h *Handler) handleRankingList(w http.ResponseWriter, r *http.Request) {
	if h.keywords == nil {
		writeError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrStoreNotConfigured.Error())
		return
	}

	keywordID := r.URL.Query().Get("keyword_id")
	if keywordID == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrKeywordIDRequired.Error())
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.keywords.ListRankings(r.Context(), keywordID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RankingListResponse{Success: true, Data: records})
}
