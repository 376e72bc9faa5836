// Package htmldoc parses raw HTML into a traversable document and exposes
// typed accessors for the signal extractor. Parsing is tolerant: malformed
// markup degrades to absent fields, never to an error from an accessor.
package htmldoc

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document wraps a parsed HTML tree.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML. The underlying parser implements
// the WHATWG recovery algorithm, so unclosed tags and missing doctypes are
// absorbed rather than surfaced.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	return &Document{doc: doc}, nil
}

// Find exposes the underlying selection API for callers that need more than
// the typed accessors below.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// SelectAll returns the trimmed text content of every element matching the
// selector, in document order.
func (d *Document) SelectAll(selector string) []string {
	var out []string

	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})

	return out
}

// Attr returns the named attribute of the first element matching the
// selector. The second return distinguishes a missing attribute from an
// empty one.
func (d *Document) Attr(selector, name string) (string, bool) {
	return d.doc.Find(selector).First().Attr(name)
}

// MetaContent returns the content attribute of the first meta tag whose
// name or property attribute equals key.
func (d *Document) MetaContent(key string) (string, bool) {
	var value string
	found := false

	d.doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		property, _ := s.Attr("property")

		if !strings.EqualFold(name, key) && !strings.EqualFold(property, key) {
			return true
		}

		if content, ok := s.Attr("content"); ok {
			value = content
			found = true
			return false
		}

		return true
	})

	return value, found
}

// JSONLDBlocks parses every <script type="application/ld+json"> block.
// Malformed JSON is silently skipped. Top-level arrays are flattened into
// their object elements.
func (d *Document) JSONLDBlocks() []map[string]any {
	var blocks []map[string]any

	d.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err == nil {
			blocks = append(blocks, obj)
			return
		}

		var arr []map[string]any
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			blocks = append(blocks, arr...)
		}
	})

	return blocks
}

// Text returns the visible body text with script, style and noscript
// content removed and whitespace collapsed.
func (d *Document) Text() string {
	body := d.doc.Find("body").Clone()
	if body.Length() == 0 {
		return ""
	}

	body.Find("script, style, noscript").Remove()

	return strings.Join(strings.Fields(body.Text()), " ")
}

// Lang returns the lang attribute declared on the html element.
func (d *Document) Lang() (string, bool) {
	return d.doc.Find("html").First().Attr("lang")
}
