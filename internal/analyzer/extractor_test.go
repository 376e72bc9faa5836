package analyzer

import (
	"net/http"
	"reflect"
	"testing"
	"time"
)

// fixturePage exercises most extraction paths at once.
const fixturePage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>Example Widgets - Hand Made Widgets For Every Home</title>
	<meta name="description" content="We build hand made widgets from sustainably sourced materials and ship them worldwide. Browse our catalog of over two hundred widget designs today.">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="robots" content="index, follow">
	<link rel="canonical" href="https://example.com/">
	<link rel="icon" href="/favicon.ico">
	<link rel="stylesheet" href="/main.css">
	<meta property="og:title" content="Example Widgets">
	<meta property="og:description" content="Hand made widgets">
	<meta property="og:image" content="https://example.com/og.png">
	<meta name="twitter:card" content="summary">
	<script type="application/ld+json">{"@type": "Organization", "name": "Example"}</script>
</head>
<body>
	<h1>Widgets</h1>
	<h2>Why widgets</h2>
	<p>Widgets improve every home. Our widgets last decades. Buy widgets now!</p>
	<h2>Catalog</h2>
	<h3>Classic widgets</h3>
	<img src="/w1.png" alt="classic widget" width="800" height="600">
	<img src="/w2.png" alt="" loading="lazy">
	<img src="/w3.png" width="1500">
	<a href="/catalog">Catalog</a>
	<a href="/about">About us</a>
	<a href="/contact">Contact</a>
	<a href="https://partner.example.org/">Partner</a>
	<script src="https://www.googletagmanager.com/gtag/js"></script>
	<script>gtag('config', 'G-XXXX');</script>
</body>
</html>`

func extractFixture(t *testing.T) *Analysis {
	t.Helper()

	doc := mustParse(t, fixturePage)
	headers := http.Header{}
	headers.Set("X-Content-Type-Options", "nosniff")

	e := New(DefaultConfig())

	return e.Extract(doc, "https://example.com/", headers, 120*time.Millisecond, len(fixturePage))
}

func TestExtract_Meta(t *testing.T) {
	a := extractFixture(t)

	if a.Meta.Title == nil || *a.Meta.Title != "Example Widgets - Hand Made Widgets For Every Home" {
		t.Fatalf("unexpected title: %v", a.Meta.Title)
	}
	if a.Meta.TitleLength != len([]rune(*a.Meta.Title)) {
		t.Errorf("expected title length %d, got %d", len([]rune(*a.Meta.Title)), a.Meta.TitleLength)
	}

	if a.Meta.Description == nil {
		t.Fatal("expected description")
	}
	if a.Meta.DescriptionLength != len([]rune(*a.Meta.Description)) {
		t.Errorf("description length mismatch: %d", a.Meta.DescriptionLength)
	}

	if a.Meta.Canonical == nil || *a.Meta.Canonical != "https://example.com/" {
		t.Errorf("unexpected canonical: %v", a.Meta.Canonical)
	}

	if a.Meta.Charset == nil || *a.Meta.Charset != "utf-8" {
		t.Errorf("unexpected charset: %v", a.Meta.Charset)
	}

	if a.Meta.Language == nil || *a.Meta.Language != "en" {
		t.Errorf("unexpected language: %v", a.Meta.Language)
	}

	// absent fields stay nil, not empty
	if a.Meta.Author != nil {
		t.Errorf("expected nil author, got %v", *a.Meta.Author)
	}
}

func TestExtract_AbsentVersusEmpty(t *testing.T) {
	doc := mustParse(t, `<html><head><meta name="description" content=""></head><body></body></html>`)
	a := New(DefaultConfig()).Extract(doc, "https://example.com/", http.Header{}, 0, 0)

	if a.Meta.Description == nil {
		t.Fatal("empty description should be present, not nil")
	}
	if *a.Meta.Description != "" {
		t.Errorf("expected empty description, got %q", *a.Meta.Description)
	}
	if a.Meta.Title != nil {
		t.Errorf("missing title should be nil, got %v", *a.Meta.Title)
	}
}

func TestExtract_SocialPreviews(t *testing.T) {
	a := extractFixture(t)

	if a.OpenGraph.Title == nil || *a.OpenGraph.Title != "Example Widgets" {
		t.Errorf("unexpected og:title: %v", a.OpenGraph.Title)
	}
	if a.OpenGraph.Image == nil {
		t.Error("expected og:image")
	}
	if a.Twitter.Card == nil || *a.Twitter.Card != "summary" {
		t.Errorf("unexpected twitter:card: %v", a.Twitter.Card)
	}
	if a.Twitter.Title != nil {
		t.Error("expected nil twitter:title")
	}
}

func TestExtract_Headings(t *testing.T) {
	a := extractFixture(t)

	if len(a.Headings.H1) != 1 || a.Headings.H1[0] != "Widgets" {
		t.Errorf("unexpected h1 list: %v", a.Headings.H1)
	}
	if len(a.Headings.H2) != 2 {
		t.Errorf("expected 2 h2 headings, got %v", a.Headings.H2)
	}
	if a.Headings.TotalCount != 4 {
		t.Errorf("expected 4 headings total, got %d", a.Headings.TotalCount)
	}
	if !a.Headings.HasProperHierarchy {
		t.Error("expected proper hierarchy for h1>h2>h2>h3")
	}
}

func TestProperHierarchy(t *testing.T) {
	testCases := []struct {
		name string
		html string
		want bool
	}{
		{
			name: "sequential levels",
			html: "<h1>a</h1><h2>b</h2><h3>c</h3>",
			want: true,
		},
		{
			name: "repeated level then deeper",
			html: "<h1>a</h1><h2>b</h2><h2>c</h2><h3>d</h3>",
			want: true,
		},
		{
			name: "skipped level",
			html: "<h1>a</h1><h3>b</h3>",
			want: false,
		},
		{
			name: "starts below h1",
			html: "<h2>a</h2><h3>b</h3>",
			want: false,
		},
		{
			name: "return to shallower level",
			html: "<h1>a</h1><h2>b</h2><h3>c</h3><h2>d</h2>",
			want: true,
		},
		{
			name: "no headings",
			html: "<p>no headings</p>",
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, "<html><body>"+tc.html+"</body></html>")

			if got := properHierarchy(doc); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestExtract_Images(t *testing.T) {
	a := extractFixture(t)

	if a.Images.Total != 3 {
		t.Fatalf("expected 3 images, got %d", a.Images.Total)
	}
	// empty alt counts as missing
	if a.Images.WithAlt != 1 {
		t.Errorf("expected 1 image with alt, got %d", a.Images.WithAlt)
	}
	if a.Images.WithoutAlt != 2 {
		t.Errorf("expected 2 images without alt, got %d", a.Images.WithoutAlt)
	}
	if a.Images.WithLazy != 1 {
		t.Errorf("expected 1 lazy image, got %d", a.Images.WithLazy)
	}
	if a.Images.Large != 1 {
		t.Errorf("expected 1 large image, got %d", a.Images.Large)
	}
	if len(a.Images.Entries) != 3 {
		t.Errorf("expected 3 image entries, got %d", len(a.Images.Entries))
	}
}

func TestExceedsDimension(t *testing.T) {
	testCases := []struct {
		attr string
		want bool
	}{
		{attr: "1500", want: true},
		{attr: "1500px", want: true},
		{attr: "1200", want: false},
		{attr: "800", want: false},
		{attr: "100%", want: false},
		{attr: "", want: false},
		{attr: "auto", want: false},
	}

	for _, tc := range testCases {
		if got := exceedsDimension(tc.attr, 1200); got != tc.want {
			t.Errorf("exceedsDimension(%q): expected %v, got %v", tc.attr, tc.want, got)
		}
	}
}

func TestExtract_Content(t *testing.T) {
	a := extractFixture(t)

	if a.Content.WordCount == 0 {
		t.Fatal("expected a non-zero word count")
	}
	// three terminated sentences plus the trailing heading/anchor text
	// after the final terminator
	if a.Content.SentenceCount != 4 {
		t.Errorf("expected 4 sentences, got %d", a.Content.SentenceCount)
	}
	if a.Content.ParagraphCount != 1 {
		t.Errorf("expected 1 paragraph, got %d", a.Content.ParagraphCount)
	}
	if a.Content.ReadingTimeMinutes < 1 {
		t.Errorf("expected at least 1 minute reading time, got %d", a.Content.ReadingTimeMinutes)
	}
	if a.Content.TextHTMLRatio <= 0 {
		t.Errorf("expected positive text/html ratio, got %v", a.Content.TextHTMLRatio)
	}

	// "widgets" dominates the fixture copy
	if len(a.Content.Keywords) == 0 || a.Content.Keywords[0].Word != "widgets" {
		t.Errorf("expected widgets as top keyword, got %v", a.Content.Keywords)
	}
}

func TestExtract_TechnicalAndSecurity(t *testing.T) {
	a := extractFixture(t)

	if !a.Technical.HTTPS {
		t.Error("expected HTTPS true for https final URL")
	}
	if !a.Technical.StructuredData {
		t.Error("expected structured data")
	}
	if len(a.Technical.SchemaTypes) != 1 || a.Technical.SchemaTypes[0] != "Organization" {
		t.Errorf("unexpected schema types: %v", a.Technical.SchemaTypes)
	}
	if !a.Technical.Favicon {
		t.Error("expected favicon")
	}
	if a.Technical.ExternalCSS != 1 {
		t.Errorf("expected 1 external stylesheet, got %d", a.Technical.ExternalCSS)
	}
	if a.Technical.ExternalJS != 1 {
		t.Errorf("expected 1 external script, got %d", a.Technical.ExternalJS)
	}
	// the ld+json block does not count as an inline script
	if a.Technical.InlineScripts != 1 {
		t.Errorf("expected 1 inline script, got %d", a.Technical.InlineScripts)
	}
	if a.Technical.ResponseTimeMs != 120 {
		t.Errorf("expected 120ms response time, got %d", a.Technical.ResponseTimeMs)
	}

	if !a.Security.ContentTypeOptions {
		t.Error("expected X-Content-Type-Options to be detected")
	}
	if a.Security.ContentSecurity {
		t.Error("expected no CSP header")
	}
	if a.Security.MixedContent {
		t.Error("expected no mixed content")
	}
}

func TestExtract_MixedContent(t *testing.T) {
	doc := mustParse(t, `<html><body><img src="http://insecure.example.com/a.png"></body></html>`)
	a := New(DefaultConfig()).Extract(doc, "https://example.com/", http.Header{}, 0, 0)

	if !a.Security.MixedContent {
		t.Error("expected mixed content on https page with http image")
	}

	// A plain-http page cannot have mixed content by definition.
	a = New(DefaultConfig()).Extract(doc, "http://example.com/", http.Header{}, 0, 0)
	if a.Security.MixedContent {
		t.Error("expected no mixed content flag on http page")
	}
}

func TestExtract_Trackers(t *testing.T) {
	a := extractFixture(t)

	if !a.Social.TagManager {
		t.Error("expected tag manager detection from script src")
	}
	if !a.Social.GoogleAnalytics {
		t.Error("expected analytics detection from inline gtag call")
	}
	if a.Social.FacebookPixel {
		t.Error("unexpected facebook pixel detection")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	first := extractFixture(t)
	second := extractFixture(t)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical analyses for identical input")
	}
}

func TestExtract_MalformedHTML(t *testing.T) {
	doc := mustParse(t, `<html><body><div><h1>Unclosed<p>text<a href="/x">link`)
	a := New(DefaultConfig()).Extract(doc, "https://example.com/", http.Header{}, 0, 0)

	if len(a.Headings.H1) != 1 {
		t.Errorf("expected recovered h1, got %v", a.Headings.H1)
	}
	if a.Links.Total != 1 {
		t.Errorf("expected recovered link, got %d", a.Links.Total)
	}
}
