// Package models defines the audit domain types persisted by the service.
package models

import "time"

// Audit status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// PendingTitle is the placeholder title given to pages before crawl results
// arrive. Pages carrying it are excluded from issue aggregation.
const PendingTitle = "Pending Audit"

// AuditProject is one persisted audit run for one domain. The full result
// set lives in Data as a schemaless blob; list queries skip it.
type AuditProject struct {
	ID          string     `json:"id"`
	Domain      string     `json:"domain"`
	Status      string     `json:"status"`
	TaskID      string     `json:"task_id"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Data        *AuditData `json:"audit_data,omitempty"`
}

// AuditData is the whole-blob audit payload. It is replaced wholesale on
// every merge; individual fields are never patched in place.
type AuditData struct {
	Summary          map[string]any      `json:"summary,omitempty"`
	Pages            []PageRecord        `json:"pages,omitempty"`
	Keywords         []Keyword           `json:"keywords,omitempty"`
	TotalTraffic     int                 `json:"total_traffic"`
	TotalKeywords    int                 `json:"total_keywords"`
	KeywordsAtLimit  bool                `json:"keywords_at_limit,omitempty"`
	Top1             int                 `json:"top_1,omitempty"`
	Top3             int                 `json:"top_3,omitempty"`
	Top10            int                 `json:"top_10,omitempty"`
	Backlinks        *BacklinksSummary   `json:"backlinks,omitempty"`
	ReferringDomains []ReferringDomain   `json:"referring_domains,omitempty"`
	PageSpeed        *PageSpeedResult    `json:"pagespeed,omitempty"`
	Readability      []ReadabilityResult `json:"readability,omitempty"`
	IssueCounts      map[string]int      `json:"issue_counts,omitempty"`
	Lighthouse       map[string]int      `json:"lighthouse,omitempty"`
	CrawlTimedOut    bool                `json:"crawl_timed_out,omitempty"`

	// Raw crawl extras kept for the report frontend. Keyed and shaped as the
	// provider returns them.
	DuplicateTags map[string][]map[string]any `json:"duplicate_tags,omitempty"`
	NonIndexable  []map[string]any            `json:"non_indexable,omitempty"`
}

// PageRecord is one crawled page, normalized from the provider response.
// Every field is populated; absent provider data defaults to the zero value.
type PageRecord struct {
	URL         string   `json:"url"`
	StatusCode  int      `json:"status_code"`
	OnPageScore float64  `json:"onpage_score"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	H1          []string `json:"h1"`
	H2          []string `json:"h2"`
	H3          []string `json:"h3"`

	WordCount          int     `json:"word_count"`
	ContentSize        int     `json:"content_size"`
	ContentRate        float64 `json:"content_rate"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	AutomatedReadIndex float64 `json:"automated_readability_index"`
	ColemanLiauIndex   float64 `json:"coleman_liau_index"`
	SmogIndex          float64 `json:"smog_index"`

	LoadTime          float64 `json:"load_time"`
	TimeToInteractive float64 `json:"time_to_interactive"`
	DomComplete       float64 `json:"dom_complete"`
	LargestPaint      float64 `json:"largest_contentful_paint"`
	FirstInputDelay   float64 `json:"first_input_delay"`
	ConnectionTime    float64 `json:"connection_time"`
	TimeToFirstByte   float64 `json:"time_to_first_byte"`
	DownloadTime      float64 `json:"download_time"`
	DurationTime      float64 `json:"duration_time"`

	InternalLinks int `json:"internal_links"`
	ExternalLinks int `json:"external_links"`
	InboundLinks  int `json:"inbound_links"`
	Images        int `json:"images"`
	ImagesSize    int `json:"images_size"`
	Scripts       int `json:"scripts"`
	ScriptsSize   int `json:"scripts_size"`
	Stylesheets   int `json:"stylesheets"`

	Checks map[string]bool `json:"checks"`
	Issues map[string]bool `json:"issues"`
}

// Keyword is one tracked keyword with its ranking data.
type Keyword struct {
	Keyword      string  `json:"keyword"`
	SearchVolume int     `json:"search_volume"`
	CPC          float64 `json:"cpc"`
	Competition  string  `json:"competition"`
	Position     int     `json:"position"`
	Traffic      float64 `json:"traffic"`
	RankedURL    string  `json:"ranked_url,omitempty"`
}

// BacklinksSummary aggregates the backlink profile for a domain.
type BacklinksSummary struct {
	TotalBacklinks           int `json:"total_backlinks"`
	ReferringDomains         int `json:"referring_domains"`
	Rank                     int `json:"rank"`
	BrokenBacklinks          int `json:"broken_backlinks"`
	ReferringDomainsNofollow int `json:"referring_domains_nofollow"`
	ReferringDomainsDofollow int `json:"referring_domains_dofollow"`
}

// ReferringDomain is one linking domain with its contribution.
type ReferringDomain struct {
	Domain    string `json:"domain"`
	Backlinks int    `json:"backlinks"`
	Rank      int    `json:"rank"`
}

// PageSpeedResult holds per-strategy performance data.
type PageSpeedResult struct {
	URL     string          `json:"url"`
	Mobile  *StrategyResult `json:"mobile,omitempty"`
	Desktop *StrategyResult `json:"desktop,omitempty"`
}

// StrategyResult is one mobile or desktop run.
type StrategyResult struct {
	Scores     map[string]int         `json:"scores"`
	Metrics    map[string]SpeedMetric `json:"metrics"`
	Screenshot string                 `json:"screenshot,omitempty"`
}

// SpeedMetric is one Core Web Vitals figure.
type SpeedMetric struct {
	DisplayValue string  `json:"display_value"`
	Score        float64 `json:"score"`
}

// ReadabilityResult holds the text statistics for one analyzed URL.
type ReadabilityResult struct {
	URL                 string  `json:"url"`
	FleschKincaidGrade  float64 `json:"flesch_kincaid_grade"`
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	GunningFog          float64 `json:"gunning_fog"`
	SmogIndex           float64 `json:"smog_index"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	DifficultWordsPct   float64 `json:"difficult_words_pct"`
	ReadingTimeMins     float64 `json:"reading_time_mins"`
	WordCount           int     `json:"word_count"`
	Rating              string  `json:"rating"`
}
