package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagelens/pagelens/internal/htmldoc"
)

// wordsPerMinute is the reading speed used for the estimated reading time.
const wordsPerMinute = 200

func (e *Extractor) extractImages(doc *htmldoc.Document) Images {
	images := Images{}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		images.Total++

		src, _ := s.Attr("src")
		alt, altOK := s.Attr("alt")
		width, _ := s.Attr("width")
		height, _ := s.Attr("height")
		loading, _ := s.Attr("loading")

		if altOK && strings.TrimSpace(alt) != "" {
			images.WithAlt++
		}

		if _, ok := s.Attr("title"); ok {
			images.WithTitle++
		}

		if strings.EqualFold(loading, "lazy") {
			images.WithLazy++
		}

		if exceedsDimension(width, e.cfg.LargeImageThreshold) || exceedsDimension(height, e.cfg.LargeImageThreshold) {
			images.Large++
		}

		if len(images.Entries) < e.cfg.MaxImageEntries {
			images.Entries = append(images.Entries, ImageEntry{
				Src:     src,
				Alt:     alt,
				Width:   width,
				Height:  height,
				Loading: loading,
			})
		}
	})

	images.WithoutAlt = images.Total - images.WithAlt

	return images
}

// exceedsDimension reports whether a declared width/height attribute parses
// to a pixel value above the threshold. Images without explicit dimensions
// are never flagged; the extractor does not fetch image bytes.
func exceedsDimension(attr string, threshold int) bool {
	v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(attr), "px"))
	if err != nil {
		return false
	}

	return v > threshold
}

func (e *Extractor) extractContent(doc *htmldoc.Document, byteSize int) Content {
	text := doc.Text()
	words := strings.Fields(text)

	c := Content{
		WordCount:      len(words),
		CharCount:      len([]rune(text)),
		SentenceCount:  countSentences(text),
		ParagraphCount: doc.Find("p").Length(),
		Keywords:       extractKeywords(text, e.stopWords, e.cfg.KeywordMinLength, e.cfg.KeywordLimit),
		HasIframe:      doc.Find("iframe").Length() > 0,
		HasForms:       doc.Find("form").Length() > 0,
		HasVideo:       doc.Find("video").Length() > 0,
		HasAudio:       doc.Find("audio").Length() > 0,
	}

	if c.SentenceCount > 0 {
		c.AvgWordsPerSentence = round2(float64(c.WordCount) / float64(c.SentenceCount))
	}

	if c.WordCount > 0 {
		c.ReadingTimeMinutes = int(math.Ceil(float64(c.WordCount) / wordsPerMinute))
	}

	if byteSize > 0 {
		c.TextHTMLRatio = round2(float64(len(text)) / float64(byteSize) * 100)
	}

	return c
}

// countSentences counts terminator-delimited sentences in the extracted
// body text.
func countSentences(text string) int {
	count := 0

	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}

	return count
}
