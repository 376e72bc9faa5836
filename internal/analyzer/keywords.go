package analyzer

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// defaultStopWords is the fixed English stop-word list excluded from keyword
// extraction. Tokens are matched after lowercasing.
var defaultStopWords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"had", "her", "was", "one", "our", "out", "day", "get", "has", "him",
	"his", "how", "man", "new", "now", "old", "see", "two", "way", "who",
	"did", "its", "let", "put", "say", "she", "too", "use", "that", "with",
	"have", "this", "will", "your", "from", "they", "know", "want", "been",
	"good", "much", "some", "time", "very", "when", "come", "here", "just",
	"like", "long", "make", "many", "more", "only", "over", "such", "take",
	"than", "them", "well", "were", "what", "which", "their", "there",
	"about", "would", "these", "other", "into", "could", "because", "also",
}

// tokenize lowercases and strips non-alphanumeric runes from a raw
// whitespace-delimited token. Letters from scripts without word separators
// (Thai, CJK) survive because they are letters.
func tokenize(raw string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// extractKeywords counts qualifying words in text and returns the top limit
// keywords by count. Ties are broken by first appearance in document order
// so repeated runs over the same text are byte-identical.
func extractKeywords(text string, stopWords map[string]struct{}, minLength, limit int) []Keyword {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	total := 0

	for _, raw := range strings.Fields(text) {
		word := tokenize(raw)
		if len([]rune(word)) < minLength {
			continue
		}

		if _, stopped := stopWords[word]; stopped {
			continue
		}

		if _, seen := counts[word]; !seen {
			firstSeen[word] = total
		}

		counts[word]++
		total++
	}

	if total == 0 {
		return nil
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}

	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > limit {
		words = words[:limit]
	}

	keywords := make([]Keyword, 0, len(words))
	for _, word := range words {
		keywords = append(keywords, Keyword{
			Word:    word,
			Count:   counts[word],
			Density: round2(float64(counts[word]) / float64(total) * 100),
		})
	}

	return keywords
}

// round2 rounds to two decimal places so repeated extractions over the same
// input serialize identically.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
