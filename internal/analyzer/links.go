package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagelens/pagelens/internal/htmldoc"
)

// extractLinks classifies every anchor on the page against the page's own
// hostname. An href that is empty or fails to resolve to an absolute URL
// counts as broken; schemes other than http(s) (mailto, tel, javascript)
// are counted but not classified.
func (e *Extractor) extractLinks(doc *htmldoc.Document, base *url.URL) Links {
	links := Links{}
	internalSeen := make(map[string]struct{})
	externalSeen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		links.Total++

		if rel, ok := s.Attr("rel"); ok && strings.Contains(strings.ToLower(rel), "nofollow") {
			links.Nofollow++
		}

		if strings.TrimSpace(s.Text()) == "" {
			links.EmptyAnchor++
		}

		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)

		resolved := resolveHref(base, href)
		if resolved == nil {
			links.Broken++
			if len(links.BrokenList) < e.cfg.MaxBrokenLinks {
				links.BrokenList = append(links.BrokenList, href)
			}
			return
		}

		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		if base != nil && sameHost(resolved.Hostname(), base.Hostname()) {
			links.Internal++
			internalSeen[resolved.String()] = struct{}{}
		} else {
			links.External++
			externalSeen[resolved.String()] = struct{}{}
		}
	})

	links.UniqueInternal = len(internalSeen)
	links.UniqueExternal = len(externalSeen)

	return links
}

// resolveHref resolves href against base, returning nil when the href is
// empty or cannot produce a valid absolute URL.
func resolveHref(base *url.URL, href string) *url.URL {
	if href == "" {
		return nil
	}

	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}

	if base == nil {
		if !ref.IsAbs() {
			return nil
		}
		return ref
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" || (resolved.Scheme == "http" || resolved.Scheme == "https") && resolved.Host == "" {
		return nil
	}

	return resolved
}

// sameHost compares hostnames case-insensitively, ignoring a leading www.
func sameHost(a, b string) bool {
	return strings.EqualFold(stripWWW(a), stripWWW(b))
}

func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
