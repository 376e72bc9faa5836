package htmldoc

import (
	"testing"
)

func TestParse_MalformedHTML(t *testing.T) {
	// The WHATWG recovery algorithm absorbs unclosed tags.
	doc, err := Parse(`<html><head><title>Broken</head><body><div><p>text`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	titles := doc.SelectAll("title")
	if len(titles) != 1 || titles[0] != "Broken" {
		t.Errorf("expected title %q, got %v", "Broken", titles)
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Text() != "" {
		t.Errorf("expected empty text, got %q", doc.Text())
	}

	if got := doc.SelectAll("h1"); len(got) != 0 {
		t.Errorf("expected no headings, got %v", got)
	}
}

func TestMetaContent(t *testing.T) {
	doc, err := Parse(`<html><head>
		<meta name="description" content="page description">
		<meta property="og:title" content="og title">
		<meta name="UPPERCASE" content="case insensitive">
		<meta name="empty" content="">
		<meta name="no-content">
	</head></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		key       string
		want      string
		wantFound bool
	}{
		{key: "description", want: "page description", wantFound: true},
		{key: "og:title", want: "og title", wantFound: true},
		{key: "uppercase", want: "case insensitive", wantFound: true},
		{key: "empty", want: "", wantFound: true},
		{key: "no-content", wantFound: false},
		{key: "missing", wantFound: false},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			got, found := doc.MetaContent(tc.key)

			if found != tc.wantFound {
				t.Fatalf("expected found=%v, got %v", tc.wantFound, found)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJSONLDBlocks(t *testing.T) {
	doc, err := Parse(`<html><head>
		<script type="application/ld+json">{"@type": "Article", "headline": "one"}</script>
		<script type="application/ld+json">[{"@type": "Person"}, {"@type": "Organization"}]</script>
		<script type="application/ld+json">{not valid json</script>
		<script type="application/ld+json"></script>
	</head></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := doc.JSONLDBlocks()

	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks (1 object + 2 array elements), got %d", len(blocks))
	}

	if blocks[0]["@type"] != "Article" {
		t.Errorf("expected first block type Article, got %v", blocks[0]["@type"])
	}
	if blocks[1]["@type"] != "Person" || blocks[2]["@type"] != "Organization" {
		t.Errorf("expected flattened array elements, got %v %v", blocks[1]["@type"], blocks[2]["@type"])
	}
}

func TestText_StripsNonContent(t *testing.T) {
	doc, err := Parse(`<html><body>
		<p>visible   text</p>
		<script>var hidden = 1;</script>
		<style>.hidden {}</style>
		<noscript>enable javascript</noscript>
		<p>more</p>
	</body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := doc.Text()
	want := "visible text more"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAttr(t *testing.T) {
	doc, err := Parse(`<html><head>
		<link rel="canonical" href="https://example.com/">
		<link rel="canonical" href="https://other.example.com/">
	</head></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	href, ok := doc.Attr(`link[rel="canonical"]`, "href")
	if !ok {
		t.Fatal("expected canonical href")
	}
	if href != "https://example.com/" {
		t.Errorf("expected first match, got %q", href)
	}

	if _, ok := doc.Attr(`link[rel="manifest"]`, "href"); ok {
		t.Error("expected no match for absent selector")
	}
}

func TestLang(t *testing.T) {
	doc, err := Parse(`<html lang="en-US"><body></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lang, ok := doc.Lang()
	if !ok || lang != "en-US" {
		t.Errorf("expected lang en-US, got %q (found=%v)", lang, ok)
	}

	doc, err = Parse(`<html><body></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := doc.Lang(); ok {
		t.Error("expected no lang attribute")
	}
}
