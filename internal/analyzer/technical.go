package analyzer

import (
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/pagelens/pagelens/internal/htmldoc"
)

func (e *Extractor) extractTechnical(doc *htmldoc.Document, isHTTPS bool, responseTime time.Duration, byteSize int) Technical {
	t := Technical{
		HTTPS:          isHTTPS,
		Favicon:        doc.Find(`link[rel="icon"], link[rel="shortcut icon"]`).Length() > 0,
		TouchIcon:      doc.Find(`link[rel="apple-touch-icon"]`).Length() > 0,
		Manifest:       doc.Find(`link[rel="manifest"]`).Length() > 0,
		Sitemap:        doc.Find(`link[rel="sitemap"]`).Length() > 0,
		AMP:            doc.Find(`link[rel="amphtml"]`).Length() > 0,
		Preconnect:     doc.Find(`link[rel="preconnect"]`).Length(),
		Prefetch:       doc.Find(`link[rel="prefetch"], link[rel="dns-prefetch"]`).Length(),
		ExternalCSS:    doc.Find(`link[rel="stylesheet"]`).Length(),
		ExternalJS:     doc.Find("script[src]").Length(),
		InlineStyles:   doc.Find("style").Length(),
		ResponseTimeMs: responseTime.Milliseconds(),
		HTMLSizeBytes:  byteSize,
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("src"); ok {
			return
		}
		if typ, _ := s.Attr("type"); strings.EqualFold(typ, "application/ld+json") {
			return
		}
		t.InlineScripts++
	})

	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		if lang, ok := s.Attr("hreflang"); ok {
			t.Hreflang = append(t.Hreflang, lang)
		}
	})

	blocks := doc.JSONLDBlocks()
	t.StructuredData = len(blocks) > 0
	t.SchemaTypes = schemaTypes(blocks)

	return t
}

// schemaTypes collects the declared @type values from parsed JSON-LD
// blocks, de-duplicated in first-seen order.
func schemaTypes(blocks []map[string]any) []string {
	var types []string

	for _, block := range blocks {
		switch v := block["@type"].(type) {
		case string:
			types = append(types, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					types = append(types, s)
				}
			}
		}
	}

	return lo.Uniq(types)
}

func (e *Extractor) extractSecurity(doc *htmldoc.Document, isHTTPS bool, headers http.Header) Security {
	s := Security{
		HTTPS:              isHTTPS,
		ContentSecurity:    headers.Get("Content-Security-Policy") != "",
		FrameOptions:       headers.Get("X-Frame-Options") != "",
		ContentTypeOptions: headers.Get("X-Content-Type-Options") != "",
		StrictTransport:    headers.Get("Strict-Transport-Security") != "",
	}

	if isHTTPS {
		s.MixedContent = hasMixedContent(doc)
	}

	return s
}

// hasMixedContent reports whether an HTTPS page loads subresources over
// plain HTTP.
func hasMixedContent(doc *htmldoc.Document) bool {
	mixed := false

	doc.Find("img[src], script[src], iframe[src], link[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		ref, ok := sel.Attr("src")
		if !ok {
			ref, _ = sel.Attr("href")
		}

		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref)), "http://") {
			mixed = true
			return false
		}

		return true
	})

	return mixed
}

// trackerPatterns maps each known tracking snippet to the script source or
// inline content substrings that identify it.
var trackerPatterns = []struct {
	name     string
	patterns []string
	assign   func(*Trackers)
}{
	{"google_analytics", []string{"google-analytics.com", "gtag("}, func(t *Trackers) { t.GoogleAnalytics = true }},
	{"tag_manager", []string{"googletagmanager.com"}, func(t *Trackers) { t.TagManager = true }},
	{"facebook_pixel", []string{"connect.facebook.net", "fbq("}, func(t *Trackers) { t.FacebookPixel = true }},
	{"tiktok_pixel", []string{"analytics.tiktok.com", "ttq.load"}, func(t *Trackers) { t.TikTokPixel = true }},
	{"twitter_pixel", []string{"static.ads-twitter.com", "twq("}, func(t *Trackers) { t.TwitterPixel = true }},
	{"linkedin_insight", []string{"snap.licdn.com", "_linkedin_partner_id"}, func(t *Trackers) { t.LinkedInInsight = true }},
}

func (e *Extractor) extractTrackers(doc *htmldoc.Document) Trackers {
	var haystack strings.Builder

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			haystack.WriteString(strings.ToLower(src))
			haystack.WriteByte('\n')
			return
		}
		haystack.WriteString(strings.ToLower(s.Text()))
		haystack.WriteByte('\n')
	})

	content := haystack.String()
	trackers := Trackers{}

	for _, tp := range trackerPatterns {
		for _, p := range tp.patterns {
			if strings.Contains(content, p) {
				tp.assign(&trackers)
				break
			}
		}
	}

	return trackers
}
