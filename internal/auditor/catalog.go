package auditor

import (
	"fmt"
	"strings"

	"github.com/pagelens/pagelens/internal/analyzer"
)

// Canonical thresholds. These are part of the audit contract: changing one
// changes every historical score comparison, so they are grouped here
// rather than inlined in the rule bodies.
const (
	titleMinLength       = 30
	titleMaxLength       = 60
	descriptionMinLength = 120
	descriptionMaxLength = 160
	altCoverageWarning   = 0.75
	minWordCount         = 300
	thinWordCount        = 100
	textRatioGood        = 10.0
	textRatioThin        = 5.0
	keywordDensityMax    = 3.0
	minInternalLinks     = 3
	brokenLinkTolerance  = 2
	lazyLoadImageFloor   = 5
	responseTimeGoodMs   = 1500
	responseTimeSlowMs   = 3000
	pageSizeGoodBytes    = 1 << 20
	pageSizeLargeBytes   = 2 << 20
)

// catalog is the versioned rule table, evaluated in this order. Check
// ordering in results is catalog order, never alphabetical.
var catalog = []Rule{
	{
		ID: "meta-title", Category: "meta", Name: "Title tag", Weight: 8,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Title == nil {
				return StatusFail, "page has no title tag"
			}
			if a.Meta.TitleLength < titleMinLength || a.Meta.TitleLength > titleMaxLength {
				return StatusWarning, fmt.Sprintf("title is %d characters, recommended %d-%d", a.Meta.TitleLength, titleMinLength, titleMaxLength)
			}
			return StatusPass, fmt.Sprintf("title is %d characters", a.Meta.TitleLength)
		},
	},
	{
		ID: "meta-desc", Category: "meta", Name: "Meta description", Weight: 7,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Description == nil {
				return StatusFail, "page has no meta description"
			}
			if a.Meta.DescriptionLength < descriptionMinLength || a.Meta.DescriptionLength > descriptionMaxLength {
				return StatusWarning, fmt.Sprintf("description is %d characters, recommended %d-%d", a.Meta.DescriptionLength, descriptionMinLength, descriptionMaxLength)
			}
			return StatusPass, fmt.Sprintf("description is %d characters", a.Meta.DescriptionLength)
		},
	},
	{
		ID: "meta-canonical", Category: "meta", Name: "Canonical URL", Weight: 3,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Canonical == nil || *a.Meta.Canonical == "" {
				return StatusWarning, "no canonical URL declared"
			}
			return StatusPass, "canonical URL declared"
		},
	},
	{
		ID: "meta-viewport", Category: "meta", Name: "Viewport", Weight: 4,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Viewport == nil {
				return StatusFail, "no viewport meta tag, page is not mobile ready"
			}
			return StatusPass, "viewport meta tag present"
		},
	},
	{
		ID: "meta-robots", Category: "meta", Name: "Robots directive", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Robots == nil {
				return StatusWarning, "no robots meta tag"
			}
			if strings.Contains(strings.ToLower(*a.Meta.Robots), "noindex") {
				return StatusFail, "robots meta tag blocks indexing"
			}
			return StatusPass, "robots meta tag allows indexing"
		},
	},
	{
		ID: "meta-charset", Category: "meta", Name: "Character encoding", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Charset == nil {
				return StatusWarning, "no charset declared, assuming UTF-8"
			}
			return StatusPass, "charset declared"
		},
	},
	{
		ID: "meta-language", Category: "meta", Name: "Language attribute", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Meta.Language == nil || *a.Meta.Language == "" {
				return StatusWarning, "html element has no lang attribute"
			}
			return StatusPass, "document language declared"
		},
	},
	{
		ID: "social-og", Category: "social", Name: "Open Graph tags", Weight: 3,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			present := 0
			for _, f := range []*string{a.OpenGraph.Title, a.OpenGraph.Description, a.OpenGraph.Image} {
				if f != nil {
					present++
				}
			}
			switch present {
			case 3:
				return StatusPass, "og:title, og:description and og:image present"
			case 0:
				return StatusFail, "no Open Graph tags"
			default:
				return StatusWarning, fmt.Sprintf("%d of 3 core Open Graph tags present", present)
			}
		},
	},
	{
		ID: "social-twitter", Category: "social", Name: "Twitter card", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Twitter.Card == nil {
				return StatusWarning, "no twitter:card meta tag"
			}
			return StatusPass, "twitter card type declared"
		},
	},
	{
		ID: "h1-exists", Category: "headings", Name: "H1 heading", Weight: 8,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch len(a.Headings.H1) {
			case 0:
				return StatusFail, "page has no h1 heading"
			case 1:
				return StatusPass, "page has exactly one h1 heading"
			default:
				return StatusWarning, fmt.Sprintf("page has %d h1 headings, recommended one", len(a.Headings.H1))
			}
		},
	},
	{
		ID: "heading-hierarchy", Category: "headings", Name: "Heading hierarchy", Weight: 4,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if !a.Headings.HasProperHierarchy {
				return StatusWarning, "heading levels skip a step"
			}
			return StatusPass, "heading levels descend without gaps"
		},
	},
	{
		ID: "img-alt", Category: "images", Name: "Image alt text", Weight: 6,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Images.Total == 0 {
				return StatusPass, "page has no images"
			}
			coverage := float64(a.Images.WithAlt) / float64(a.Images.Total)
			switch {
			case coverage >= 1:
				return StatusPass, "all images have alt text"
			case coverage >= altCoverageWarning:
				return StatusWarning, fmt.Sprintf("%d of %d images missing alt text", a.Images.WithoutAlt, a.Images.Total)
			default:
				return StatusFail, fmt.Sprintf("%d of %d images missing alt text", a.Images.WithoutAlt, a.Images.Total)
			}
		},
	},
	{
		ID: "img-lazy", Category: "images", Name: "Lazy loading", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Images.Total > lazyLoadImageFloor && a.Images.WithLazy == 0 {
				return StatusWarning, fmt.Sprintf("%d images, none lazy loaded", a.Images.Total)
			}
			return StatusPass, "image loading looks fine"
		},
	},
	{
		ID: "img-large", Category: "images", Name: "Oversized images", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Images.Large > 0 {
				return StatusWarning, fmt.Sprintf("%d images declare dimensions above 1200px", a.Images.Large)
			}
			return StatusPass, "no oversized images declared"
		},
	},
	{
		ID: "link-internal", Category: "links", Name: "Internal links", Weight: 4,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch {
			case a.Links.Internal >= minInternalLinks:
				return StatusPass, fmt.Sprintf("%d internal links", a.Links.Internal)
			case a.Links.Internal > 0:
				return StatusWarning, fmt.Sprintf("only %d internal links, recommended at least %d", a.Links.Internal, minInternalLinks)
			default:
				return StatusFail, "page has no internal links"
			}
		},
	},
	{
		ID: "link-external", Category: "links", Name: "External links", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Links.External == 0 {
				return StatusWarning, "page links to no external sources"
			}
			return StatusPass, fmt.Sprintf("%d external links", a.Links.External)
		},
	},
	{
		ID: "link-broken", Category: "links", Name: "Broken links", Weight: 4,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch {
			case a.Links.Broken == 0:
				return StatusPass, "no broken links detected"
			case a.Links.Broken <= brokenLinkTolerance:
				return StatusWarning, fmt.Sprintf("%d links with empty or invalid href", a.Links.Broken)
			default:
				return StatusFail, fmt.Sprintf("%d links with empty or invalid href", a.Links.Broken)
			}
		},
	},
	{
		ID: "link-anchor", Category: "links", Name: "Anchor text", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if a.Links.EmptyAnchor > 0 {
				return StatusWarning, fmt.Sprintf("%d links have empty anchor text", a.Links.EmptyAnchor)
			}
			return StatusPass, "all links have anchor text"
		},
	},
	{
		ID: "content-length", Category: "content", Name: "Content length", Weight: 6,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch {
			case a.Content.WordCount >= minWordCount:
				return StatusPass, fmt.Sprintf("%d words", a.Content.WordCount)
			case a.Content.WordCount >= thinWordCount:
				return StatusWarning, fmt.Sprintf("%d words, recommended at least %d", a.Content.WordCount, minWordCount)
			default:
				return StatusFail, fmt.Sprintf("only %d words of content", a.Content.WordCount)
			}
		},
	},
	{
		ID: "content-ratio", Category: "content", Name: "Text to HTML ratio", Weight: 3,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch {
			case a.Content.TextHTMLRatio >= textRatioGood:
				return StatusPass, fmt.Sprintf("text to HTML ratio %.2f%%", a.Content.TextHTMLRatio)
			case a.Content.TextHTMLRatio >= textRatioThin:
				return StatusWarning, fmt.Sprintf("text to HTML ratio %.2f%%, content may be thin", a.Content.TextHTMLRatio)
			default:
				return StatusFail, fmt.Sprintf("text to HTML ratio %.2f%%, content is thin", a.Content.TextHTMLRatio)
			}
		},
	},
	{
		ID: "content-keyword", Category: "content", Name: "Keyword density", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if len(a.Content.Keywords) == 0 {
				return StatusWarning, "no qualifying keywords found"
			}
			top := a.Content.Keywords[0]
			if top.Density > keywordDensityMax {
				return StatusWarning, fmt.Sprintf("%q density %.2f%% suggests keyword stuffing", top.Word, top.Density)
			}
			return StatusPass, fmt.Sprintf("top keyword %q at %.2f%%", top.Word, top.Density)
		},
	},
	{
		ID: "tech-https", Category: "technical", Name: "HTTPS", Weight: 8,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if !a.Technical.HTTPS {
				return StatusFail, "page is served over plain HTTP"
			}
			return StatusPass, "page is served over HTTPS"
		},
	},
	{
		ID: "tech-structured", Category: "technical", Name: "Structured data", Weight: 3,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if !a.Technical.StructuredData {
				return StatusWarning, "no JSON-LD structured data"
			}
			return StatusPass, fmt.Sprintf("structured data present (%s)", strings.Join(a.Technical.SchemaTypes, ", "))
		},
	},
	{
		ID: "tech-favicon", Category: "technical", Name: "Favicon", Weight: 2,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if !a.Technical.Favicon {
				return StatusWarning, "no favicon declared"
			}
			return StatusPass, "favicon declared"
		},
	},
	{
		ID: "tech-speed", Category: "technical", Name: "Response time", Weight: 4,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch {
			case a.Technical.ResponseTimeMs <= responseTimeGoodMs:
				return StatusPass, fmt.Sprintf("responded in %dms", a.Technical.ResponseTimeMs)
			case a.Technical.ResponseTimeMs <= responseTimeSlowMs:
				return StatusWarning, fmt.Sprintf("responded in %dms", a.Technical.ResponseTimeMs)
			default:
				return StatusFail, fmt.Sprintf("responded in %dms", a.Technical.ResponseTimeMs)
			}
		},
	},
	{
		ID: "tech-size", Category: "technical", Name: "Page size", Weight: 3,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			switch {
			case a.Technical.HTMLSizeBytes <= pageSizeGoodBytes:
				return StatusPass, fmt.Sprintf("HTML payload is %d bytes", a.Technical.HTMLSizeBytes)
			case a.Technical.HTMLSizeBytes <= pageSizeLargeBytes:
				return StatusWarning, fmt.Sprintf("HTML payload is %d bytes", a.Technical.HTMLSizeBytes)
			default:
				return StatusFail, fmt.Sprintf("HTML payload is %d bytes", a.Technical.HTMLSizeBytes)
			}
		},
	},
	{
		ID: "sec-mixed", Category: "security", Name: "Mixed content", Weight: 4,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			if !a.Security.HTTPS {
				return StatusWarning, "not applicable, page is served over plain HTTP"
			}
			if a.Security.MixedContent {
				return StatusFail, "HTTPS page loads subresources over plain HTTP"
			}
			return StatusPass, "no mixed content"
		},
	},
	{
		ID: "sec-headers", Category: "security", Name: "Security headers", Weight: 3,
		Evaluate: func(a *analyzer.Analysis) (Status, string) {
			present := 0
			for _, ok := range []bool{a.Security.ContentSecurity, a.Security.FrameOptions, a.Security.ContentTypeOptions, a.Security.StrictTransport} {
				if ok {
					present++
				}
			}
			switch {
			case present >= 3:
				return StatusPass, fmt.Sprintf("%d of 4 security headers set", present)
			case present >= 1:
				return StatusWarning, fmt.Sprintf("%d of 4 security headers set", present)
			default:
				return StatusFail, "no security headers set"
			}
		},
	},
}
