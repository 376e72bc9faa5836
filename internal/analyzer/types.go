package analyzer

// Analysis is the immutable signal snapshot extracted from one page fetch.
// Optional string fields are pointers so that "not found" and "found but
// empty" remain distinct states; several audit rules depend on that
// distinction.
type Analysis struct {
	URL       string        `json:"url"`
	Meta      MetaSignals   `json:"meta"`
	OpenGraph SocialPreview `json:"open_graph"`
	Twitter   TwitterCard   `json:"twitter_card"`
	Headings  Headings      `json:"headings"`
	Images    Images        `json:"images"`
	Links     Links         `json:"links"`
	Content   Content       `json:"content"`
	Technical Technical     `json:"technical"`
	Security  Security      `json:"security"`
	Social    Trackers      `json:"social"`
}

// MetaSignals holds document metadata declared in the head.
type MetaSignals struct {
	Title             *string `json:"title"`
	TitleLength       int     `json:"title_length"`
	Description       *string `json:"description"`
	DescriptionLength int     `json:"description_length"`
	Canonical         *string `json:"canonical"`
	Robots            *string `json:"robots"`
	Viewport          *string `json:"viewport"`
	Charset           *string `json:"charset"`
	Language          *string `json:"language"`
	Keywords          *string `json:"keywords"`
	Author            *string `json:"author"`
	Generator         *string `json:"generator"`
	ThemeColor        *string `json:"theme_color"`
}

// SocialPreview holds Open Graph metadata.
type SocialPreview struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	URL         *string `json:"url"`
	Type        *string `json:"type"`
	SiteName    *string `json:"site_name"`
	Locale      *string `json:"locale"`
}

// TwitterCard holds Twitter card metadata.
type TwitterCard struct {
	Card        *string `json:"card"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Site        *string `json:"site"`
}

// Headings is the ordered heading inventory for h1 through h6.
type Headings struct {
	H1                 []string `json:"h1"`
	H2                 []string `json:"h2"`
	H3                 []string `json:"h3"`
	H4                 []string `json:"h4"`
	H5                 []string `json:"h5"`
	H6                 []string `json:"h6"`
	TotalCount         int      `json:"total_count"`
	HasProperHierarchy bool     `json:"has_proper_hierarchy"`
}

// ImageEntry is one raw image reference found on the page.
type ImageEntry struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Width   string `json:"width,omitempty"`
	Height  string `json:"height,omitempty"`
	Loading string `json:"loading,omitempty"`
}

// Images summarizes the image inventory.
type Images struct {
	Total      int          `json:"total"`
	WithAlt    int          `json:"with_alt"`
	WithoutAlt int          `json:"without_alt"`
	WithTitle  int          `json:"with_title"`
	WithLazy   int          `json:"with_lazy"`
	Large      int          `json:"large"`
	Entries    []ImageEntry `json:"entries,omitempty"`
}

// Links summarizes link classification against the page's own hostname.
type Links struct {
	Total          int      `json:"total"`
	Internal       int      `json:"internal"`
	External       int      `json:"external"`
	Nofollow       int      `json:"nofollow"`
	EmptyAnchor    int      `json:"empty_anchor"`
	UniqueInternal int      `json:"unique_internal"`
	UniqueExternal int      `json:"unique_external"`
	Broken         int      `json:"broken"`
	BrokenList     []string `json:"broken_list,omitempty"`
}

// Keyword is one ranked keyword with its occurrence count and density
// (count over total qualifying words, as a percentage).
type Keyword struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// Content holds textual content statistics.
type Content struct {
	WordCount           int       `json:"word_count"`
	CharCount           int       `json:"char_count"`
	SentenceCount       int       `json:"sentence_count"`
	ParagraphCount      int       `json:"paragraph_count"`
	AvgWordsPerSentence float64   `json:"avg_words_per_sentence"`
	ReadingTimeMinutes  int       `json:"reading_time_minutes"`
	Keywords            []Keyword `json:"keywords"`
	HasIframe           bool      `json:"has_iframe"`
	HasForms            bool      `json:"has_forms"`
	HasVideo            bool      `json:"has_video"`
	HasAudio            bool      `json:"has_audio"`
	TextHTMLRatio       float64   `json:"text_html_ratio"`
}

// Technical holds technical page signals.
type Technical struct {
	HTTPS          bool     `json:"https"`
	StructuredData bool     `json:"structured_data"`
	SchemaTypes    []string `json:"schema_types,omitempty"`
	Favicon        bool     `json:"favicon"`
	TouchIcon      bool     `json:"touch_icon"`
	Manifest       bool     `json:"manifest"`
	Sitemap        bool     `json:"sitemap"`
	Hreflang       []string `json:"hreflang,omitempty"`
	AMP            bool     `json:"amp"`
	Preconnect     int      `json:"preconnect"`
	Prefetch       int      `json:"prefetch"`
	ExternalCSS    int      `json:"external_css"`
	ExternalJS     int      `json:"external_js"`
	InlineStyles   int      `json:"inline_styles"`
	InlineScripts  int      `json:"inline_scripts"`
	ResponseTimeMs int64    `json:"response_time_ms"`
	HTMLSizeBytes  int      `json:"html_size_bytes"`
}

// Security holds transport and response-header security signals.
type Security struct {
	HTTPS              bool `json:"https"`
	MixedContent       bool `json:"mixed_content"`
	ContentSecurity    bool `json:"content_security_policy"`
	FrameOptions       bool `json:"x_frame_options"`
	ContentTypeOptions bool `json:"x_content_type_options"`
	StrictTransport    bool `json:"strict_transport_security"`
}

// Trackers records which known analytics and advertising snippets were
// detected on the page.
type Trackers struct {
	GoogleAnalytics bool `json:"google_analytics"`
	TagManager      bool `json:"tag_manager"`
	FacebookPixel   bool `json:"facebook_pixel"`
	TikTokPixel     bool `json:"tiktok_pixel"`
	TwitterPixel    bool `json:"twitter_pixel"`
	LinkedInInsight bool `json:"linkedin_insight"`
}
