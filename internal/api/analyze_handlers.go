package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/pagelens/pagelens/internal/analyzer"
	"github.com/pagelens/pagelens/internal/fetcher"
)

// AnalyzeRequest represents an analysis request.
type AnalyzeRequest struct {
	// URL is the absolute http(s) URL to analyze
	URL string `json:"url"`
}

// AnalyzeResponse represents the analysis response.
type AnalyzeResponse struct {
	Success bool               `json:"success"`
	Data    *analyzer.Analysis `json:"data,omitempty"`
	Error   *Error             `json:"error,omitempty"`
}

// handleAnalyze fetches a page and returns its extracted signal snapshot
// without auditing it.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.URL == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrURLRequired.Error())
		return
	}

	// Reject bad URLs before any network I/O.
	if _, err := fetcher.ValidateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	analysis, err := h.engine.Analyze(r.Context(), req.URL)
	if err != nil {
		status, code := fetchErrorStatus(err)
		writeError(w, status, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Data: analysis})
}

// fetchErrorStatus maps pipeline errors to an HTTP status and error code.
func fetchErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, fetcher.ErrInvalidURL):
		return http.StatusBadRequest, errCodeValidation
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, errCodeTimeout
	}

	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway, errCodeFetch
	}

	return http.StatusInternalServerError, errCodeInternal
}
