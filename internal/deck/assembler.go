package deck

import (
	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
)

// Screenshot keys recognized by the assembler. A missing key switches the
// corresponding slide to its synthesized fallback; homepage and backlinks
// slides are skipped entirely without their image.
const (
	ImageHomepage        = "homepage"
	ImageTrafficOverview = "traffic_overview"
	ImageKeywordsReport  = "keywords_report"
	ImageMetaIssues      = "meta_issues"
	ImageHeadingIssues   = "heading_issues"
	ImageBacklinks       = "backlinks"
	ImageReadability     = "content_readability"
	ImageSpeedAnalysis   = "speed_analysis"
)

const keywordTableRows = 7

// BuildInput carries everything the deck needs. Screenshots maps the image
// keys above to publicly fetchable URLs; Annotations overrides the computed
// badge text per key.
type BuildInput struct {
	Domain      string
	Data        *models.AuditData
	Screenshots map[string]string
	Annotations map[string]string
	IssueCounts map[string]int
}

// Assembler turns audit data into an ordered batch of draw requests.
type Assembler struct {
	theme  *Theme
	ids    IDGenerator
	logger logger.Logger
}

func NewAssembler(theme *Theme, ids IDGenerator, log logger.Logger) *Assembler {
	if theme == nil {
		t := DefaultTheme()
		theme = &t
	}
	if ids == nil {
		ids = NewRandomIDs()
	}
	return &Assembler{theme: theme, ids: ids, logger: log}
}

// Build renders the full deck and returns the requests along with the number
// of slides they create.
func (a *Assembler) Build(in BuildInput) ([]Request, int) {
	data := in.Data
	if data == nil {
		data = &models.AuditData{}
	}
	b := &slideBuilder{theme: a.theme}
	units := 0
	var reqs []Request
	add := func(slide []Request) {
		reqs = append(reqs, slide...)
		units++
	}
	image := func(key string) string {
		return in.Screenshots[key]
	}
	annotation := func(key, computed string) string {
		if v, ok := in.Annotations[key]; ok && v != "" {
			return v
		}
		return computed
	}

	totalTraffic := data.TotalTraffic
	totalKeywords := data.TotalKeywords
	if totalKeywords == 0 {
		totalKeywords = len(data.Keywords)
	}
	needsWork := audit.NeedsWorkCount(data.Keywords)
	refDomains := 0
	totalBacklinks := 0
	if data.Backlinks != nil {
		refDomains = data.Backlinks.ReferringDomains
		totalBacklinks = data.Backlinks.TotalBacklinks
	}
	issueCounts := audit.AggregateIssues(data.Pages, firstNonEmpty(in.IssueCounts, data.IssueCounts))

	// Cover and homepage
	add(b.cover(a.ids.SlideID(), in.Domain))
	if url := image(ImageHomepage); url != "" {
		add(b.homepageSnapshot(a.ids.SlideID(), url))
	}

	// Organic traffic and keywords
	add(b.explainer(a.ids.SlideID(), sectionOrganic))
	if url := image(ImageTrafficOverview); url != "" {
		add(b.imageSlide(a.ids.SlideID(), "SEO OVERVIEW", url, ""))
	} else {
		add(b.trafficDashboard(a.ids.SlideID(), dashboardFor(data, refDomains, totalBacklinks)))
	}
	if url := image(ImageKeywordsReport); url != "" {
		kwAnnotation := annotation(ImageKeywordsReport, audit.KeywordAnnotation(totalKeywords, needsWork))
		add(b.imageSlide(a.ids.SlideID(), "ORGANIC KEYWORDS", url, kwAnnotation))
	} else {
		top := data.Keywords
		if len(top) > keywordTableRows {
			top = top[:keywordTableRows]
		}
		add(b.keywordTable(a.ids.SlideID(), top))
	}

	// Meta issues
	add(b.explainer(a.ids.SlideID(), sectionMeta))
	if url := image(ImageMetaIssues); url != "" {
		bullets := metaBullets(issueCounts)
		if len(bullets) > 6 {
			bullets = bullets[:6]
		}
		add(b.imageWithBullets(a.ids.SlideID(), "META ISSUES", url, bullets))
	} else {
		var badMeta []models.PageRecord
		for _, p := range data.Pages {
			if p.Issues["title_too_long"] {
				badMeta = append(badMeta, p)
			}
		}
		if len(badMeta) > 5 {
			badMeta = badMeta[:5]
		}
		add(b.issueTable(a.ids.SlideID(), "Meta Title Issues", badMeta, "Title > 60 chars"))
	}

	// Heading issues
	add(b.explainer(a.ids.SlideID(), sectionHeadings))
	headings := headingBullets(issueCounts)
	if len(headings) > 8 {
		headings = headings[:8]
	}
	if url := image(ImageHeadingIssues); url != "" {
		add(b.imageWithBullets(a.ids.SlideID(), "HEADING ISSUES", url, headings))
	} else {
		add(b.bulletList(a.ids.SlideID(), "HEADING ISSUES", headings))
	}

	// Backlinks profile
	add(b.explainer(a.ids.SlideID(), sectionBacklinks))
	backlinksAnnotation := annotation(ImageBacklinks, audit.BacklinksAnnotation(refDomains, 0))
	if url := image(ImageBacklinks); url != "" {
		add(b.imageSlide(a.ids.SlideID(), "BACKLINK PROFILE", url, backlinksAnnotation))
	}
	domains := data.ReferringDomains
	if len(domains) > 5 {
		domains = domains[:5]
	}
	add(b.backlinksTable(a.ids.SlideID(), "TOP REFERRING DOMAINS", domains, backlinksAnnotation))

	// Content readability
	add(b.explainer(a.ids.SlideID(), sectionContent))
	avgGrade := audit.AvgReadabilityGrade(data.Readability)
	readabilityAnnotation := annotation(ImageReadability, audit.ReadabilityAnnotation(avgGrade))
	if url := image(ImageReadability); url != "" {
		add(b.imageSlide(a.ids.SlideID(), "CONTENT ANALYSIS", url, readabilityAnnotation))
	} else {
		add(b.readabilitySummary(a.ids.SlideID(), avgGrade, readabilityAnnotation))
	}

	// Website speed
	add(b.explainer(a.ids.SlideID(), sectionSpeed))
	if url := image(ImageSpeedAnalysis); url != "" {
		score := audit.LighthouseSpeedScore(data.PageSpeed)
		speedAnnotation := annotation(ImageSpeedAnalysis, audit.SpeedAnnotation(score))
		add(b.imageSlide(a.ids.SlideID(), "WEBSITE SPEED", url, speedAnnotation))
	} else {
		add(b.speedGauge(a.ids.SlideID(), audit.AvgLoadTime(data.Pages)))
	}

	// Closing
	add(b.funnel(a.ids.SlideID()))
	add(b.thankYou(a.ids.SlideID()))

	if a.logger != nil {
		a.logger.Debug("deck assembled",
			logger.String("domain", in.Domain),
			logger.Int("units", units),
			logger.Int("requests", len(reqs)),
			logger.Int("total_traffic", totalTraffic),
		)
	}
	return reqs, units
}

func dashboardFor(data *models.AuditData, refDomains, totalBacklinks int) dashboardMetrics {
	m := dashboardMetrics{
		KeywordCount:   data.TotalKeywords,
		Traffic:        float64(data.TotalTraffic),
		RefDomains:     refDomains,
		TotalBacklinks: totalBacklinks,
		HasKeywords:    len(data.Keywords) > 0,
	}
	if m.KeywordCount == 0 {
		m.KeywordCount = len(data.Keywords)
	}
	if len(data.Keywords) > 0 {
		sum := 0
		for _, kw := range data.Keywords {
			sum += kw.Position
		}
		m.AvgPosition = float64(sum) / float64(len(data.Keywords))
	}
	return m
}

func firstNonEmpty(maps ...map[string]int) map[string]int {
	for _, m := range maps {
		if len(m) > 0 {
			return m
		}
	}
	return nil
}
