// Package engine composes the fetch, parse, extract and audit stages into
// the two operations the API exposes. Each invocation is a pure pipeline
// over its own inputs; concurrent requests share nothing and need no
// locking.
package engine

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pagelens/pagelens/internal/analyzer"
	"github.com/pagelens/pagelens/internal/auditor"
	"github.com/pagelens/pagelens/internal/fetcher"
	"github.com/pagelens/pagelens/internal/htmldoc"
)

// Engine runs the analysis pipeline.
type Engine struct {
	fetcher   *fetcher.Fetcher
	extractor *analyzer.Extractor
	auditor   *auditor.Auditor
}

// New creates an Engine over the given fetcher and extraction config.
func New(f *fetcher.Fetcher, cfg analyzer.Config) *Engine {
	return &Engine{
		fetcher:   f,
		extractor: analyzer.New(cfg),
		auditor:   auditor.New(),
	}
}

// Analyze fetches the page at url and extracts its signal snapshot. Every
// call performs a fresh fetch; results are never cached in process.
func (e *Engine) Analyze(ctx context.Context, url string) (*analyzer.Analysis, error) {
	result, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := htmldoc.Parse(result.HTML)
	if err != nil {
		// html.Parse only fails on reader errors, not on bad markup,
		// but degrade to an empty document rather than aborting.
		log.Warn().Err(err).Str("url", url).Msg("html parse failed, using empty document")

		doc, _ = htmldoc.Parse("")
	}

	return e.extractor.Extract(doc, result.FinalURL, result.Headers, result.ResponseTime, result.ByteSize), nil
}

// Audit analyzes the page at url and evaluates the audit rule catalog over
// the snapshot.
func (e *Engine) Audit(ctx context.Context, url string) (*analyzer.Analysis, *auditor.Result, error) {
	analysis, err := e.Analyze(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	return analysis, e.auditor.Audit(analysis), nil
}
