// Package analyzer walks a parsed HTML document and produces the flat
// signal snapshot consumed by the audit rule engine. Extraction is a pure
// function of its inputs: no network calls, no shared state, deterministic
// output for identical HTML.
package analyzer

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagelens/pagelens/internal/htmldoc"
)

// Config carries extraction tunables so tests can inject fixtures instead
// of relying on package constants.
type Config struct {
	// KeywordMinLength is the minimum rune length for a qualifying keyword
	KeywordMinLength int
	// KeywordLimit caps the ranked keyword list
	KeywordLimit int
	// StopWords are excluded from keyword extraction
	StopWords []string
	// LargeImageThreshold is the declared pixel dimension above which an
	// image counts as large
	LargeImageThreshold int
	// MaxImageEntries caps the raw image entry list
	MaxImageEntries int
	// MaxBrokenLinks caps the broken link list
	MaxBrokenLinks int
}

// DefaultConfig returns the extraction defaults.
func DefaultConfig() Config {
	return Config{
		KeywordMinLength:    3,
		KeywordLimit:        20,
		StopWords:           defaultStopWords,
		LargeImageThreshold: 1200,
		MaxImageEntries:     50,
		MaxBrokenLinks:      20,
	}
}

// Extractor produces an Analysis from a parsed document.
type Extractor struct {
	cfg       Config
	stopWords map[string]struct{}
}

// New creates an Extractor. Zero-valued config fields fall back to the
// defaults.
func New(cfg Config) *Extractor {
	defaults := DefaultConfig()

	if cfg.KeywordMinLength <= 0 {
		cfg.KeywordMinLength = defaults.KeywordMinLength
	}
	if cfg.KeywordLimit <= 0 {
		cfg.KeywordLimit = defaults.KeywordLimit
	}
	if cfg.StopWords == nil {
		cfg.StopWords = defaults.StopWords
	}
	if cfg.LargeImageThreshold <= 0 {
		cfg.LargeImageThreshold = defaults.LargeImageThreshold
	}
	if cfg.MaxImageEntries <= 0 {
		cfg.MaxImageEntries = defaults.MaxImageEntries
	}
	if cfg.MaxBrokenLinks <= 0 {
		cfg.MaxBrokenLinks = defaults.MaxBrokenLinks
	}

	stopWords := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stopWords[strings.ToLower(w)] = struct{}{}
	}

	return &Extractor{cfg: cfg, stopWords: stopWords}
}

// Extract walks doc and assembles the full signal snapshot. finalURL is the
// resolved URL after redirects, headers are the response headers of the
// final response.
func (e *Extractor) Extract(doc *htmldoc.Document, finalURL string, headers http.Header, responseTime time.Duration, byteSize int) *Analysis {
	base, _ := url.Parse(finalURL)
	isHTTPS := base != nil && base.Scheme == "https"

	a := &Analysis{
		URL:       finalURL,
		Meta:      e.extractMeta(doc),
		OpenGraph: e.extractOpenGraph(doc),
		Twitter:   e.extractTwitterCard(doc),
		Headings:  e.extractHeadings(doc),
		Images:    e.extractImages(doc),
		Links:     e.extractLinks(doc, base),
		Content:   e.extractContent(doc, byteSize),
		Technical: e.extractTechnical(doc, isHTTPS, responseTime, byteSize),
		Security:  e.extractSecurity(doc, isHTTPS, headers),
		Social:    e.extractTrackers(doc),
	}

	return a
}

// optional converts an attribute lookup into the pointer form used across
// the analysis model.
func optional(value string, ok bool) *string {
	if !ok {
		return nil
	}
	return &value
}

func (e *Extractor) extractMeta(doc *htmldoc.Document) MetaSignals {
	m := MetaSignals{
		Description: optionalMeta(doc, "description"),
		Robots:      optionalMeta(doc, "robots"),
		Viewport:    optionalMeta(doc, "viewport"),
		Keywords:    optionalMeta(doc, "keywords"),
		Author:      optionalMeta(doc, "author"),
		Generator:   optionalMeta(doc, "generator"),
		ThemeColor:  optionalMeta(doc, "theme-color"),
		Canonical:   optional(doc.Attr(`link[rel="canonical"]`, "href")),
		Charset:     optional(doc.Attr("meta[charset]", "charset")),
		Language:    optional(doc.Lang()),
	}

	if titles := doc.Find("title"); titles.Length() > 0 {
		title := strings.TrimSpace(titles.First().Text())
		m.Title = &title
		m.TitleLength = len([]rune(title))
	}

	if m.Description != nil {
		m.DescriptionLength = len([]rune(*m.Description))
	}

	return m
}

func optionalMeta(doc *htmldoc.Document, key string) *string {
	return optional(doc.MetaContent(key))
}

func (e *Extractor) extractOpenGraph(doc *htmldoc.Document) SocialPreview {
	return SocialPreview{
		Title:       optionalMeta(doc, "og:title"),
		Description: optionalMeta(doc, "og:description"),
		Image:       optionalMeta(doc, "og:image"),
		URL:         optionalMeta(doc, "og:url"),
		Type:        optionalMeta(doc, "og:type"),
		SiteName:    optionalMeta(doc, "og:site_name"),
		Locale:      optionalMeta(doc, "og:locale"),
	}
}

func (e *Extractor) extractTwitterCard(doc *htmldoc.Document) TwitterCard {
	return TwitterCard{
		Card:        optionalMeta(doc, "twitter:card"),
		Title:       optionalMeta(doc, "twitter:title"),
		Description: optionalMeta(doc, "twitter:description"),
		Image:       optionalMeta(doc, "twitter:image"),
		Site:        optionalMeta(doc, "twitter:site"),
	}
}

// headingLevels maps tag names to their numeric level for the hierarchy
// scan.
var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

func (e *Extractor) extractHeadings(doc *htmldoc.Document) Headings {
	h := Headings{
		H1: doc.SelectAll("h1"),
		H2: doc.SelectAll("h2"),
		H3: doc.SelectAll("h3"),
		H4: doc.SelectAll("h4"),
		H5: doc.SelectAll("h5"),
		H6: doc.SelectAll("h6"),
	}

	h.TotalCount = len(h.H1) + len(h.H2) + len(h.H3) + len(h.H4) + len(h.H5) + len(h.H6)
	h.HasProperHierarchy = properHierarchy(doc)

	return h
}

// properHierarchy scans headings in document order and reports whether the
// level ever jumps more than one step deeper than the deepest level already
// seen. A page whose first heading is not an h1 fails the scan.
func properHierarchy(doc *htmldoc.Document) bool {
	proper := true
	maxSeen := 0

	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		level := headingLevels[goquery.NodeName(s)]
		if level > maxSeen+1 {
			proper = false
			return false
		}

		if level > maxSeen {
			maxSeen = level
		}

		return true
	})

	return proper
}
