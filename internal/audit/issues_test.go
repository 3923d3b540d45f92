package audit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/models"
)

func page(url, title, desc string) models.PageRecord {
	return models.PageRecord{
		URL:         url,
		StatusCode:  200,
		Title:       title,
		Description: desc,
		H1:          []string{title},
		H2:          []string{"Section"},
		H3:          []string{"Subsection"},
		WordCount:   500,
	}
}

func TestAggregateIssues_PrefersSuppliedCounts(t *testing.T) {
	pages := []models.PageRecord{page("https://a.com/", "A title long enough here", "ok")}
	supplied := map[string]int{"titleTooLong": 42}

	counts := audit.AggregateIssues(pages, supplied)

	assert.Equal(t, supplied, counts)
	assert.Equal(t, 42, counts["titleTooLong"])
}

func TestAggregateIssues_TitleChecks(t *testing.T) {
	longTitle := strings.Repeat("x", 61)
	okDesc := strings.Repeat("d", 80)
	pages := []models.PageRecord{
		page("https://a.com/1", longTitle, okDesc),
		page("https://a.com/2", "short", okDesc),
		page("https://a.com/3", "A perfectly sized page title here", okDesc),
	}

	counts := audit.AggregateIssues(pages, nil)

	assert.Equal(t, 1, counts["titleTooLong"])
	assert.Equal(t, 1, counts["titleTooShort"])
	assert.Equal(t, 0, counts["noTitle"])
}

func TestAggregateIssues_MissingTitles(t *testing.T) {
	titleless := page("https://a.com/1", "", "A description long enough to pass.")
	pages := []models.PageRecord{
		titleless,
		page("https://a.com/2", "A perfectly sized page title here", "ok desc"),
		{URL: "https://a.com/3", Title: models.PendingTitle},
		{URL: "https://a.com/4"},
	}

	counts := audit.AggregateIssues(pages, nil)

	// Only the fetched page counts; placeholders without a response do not.
	assert.Equal(t, 1, counts["noTitle"])
}

func TestAggregateIssues_DescriptionRules(t *testing.T) {
	// A too-long description must not also count as missing.
	pages := []models.PageRecord{
		page("https://a.com/1", "A perfectly sized page title here", ""),
		page("https://a.com/2", "Another good title for this page", "tiny"),
		page("https://a.com/3", "Third good title for this page!!", strings.Repeat("d", 161)),
		page("https://a.com/4", "Fourth good title for this page!", strings.Repeat("d", 160)),
	}

	counts := audit.AggregateIssues(pages, nil)

	assert.Equal(t, 2, counts["noDesc"])
	assert.Equal(t, 1, counts["descTooLong"])
}

func TestAggregateIssues_DuplicateHeadings(t *testing.T) {
	a := page("https://a.com/1", "First page title goes right here", "a description that is fine")
	a.H1 = []string{"Welcome Home"}
	b := page("https://a.com/2", "Second page title goes over here", "a description that is fine")
	b.H1 = []string{"  welcome home  "}
	c := page("https://a.com/3", "Third page title sits over here!", "a description that is fine")
	// Repeats within a single page do not make a duplicate.
	c.H2 = []string{"Pricing", "Pricing"}

	counts := audit.AggregateIssues([]models.PageRecord{a, b, c}, nil)

	assert.Equal(t, 1, counts["dupH1"])
	assert.Equal(t, 1, counts["dupH2"], "shared Section heading from the fixture")
	assert.Equal(t, 0, counts["dupTitle"])
}

func TestAggregateIssues_ShortValuesIgnored(t *testing.T) {
	a := page("https://a.com/1", "First page title goes right here", "a description that is fine")
	a.H2 = []string{"FAQ"}
	b := page("https://a.com/2", "Second page title goes over here", "a description that is fine")
	b.H2 = []string{"faq"}

	counts := audit.AggregateIssues([]models.PageRecord{a, b}, nil)

	assert.Equal(t, 0, counts["dupH2"])
}

func TestAggregateIssues_HeadingCounts(t *testing.T) {
	a := page("https://a.com/1", "First page title goes right here", "a description that is fine")
	a.H1 = nil
	b := page("https://a.com/2", "Second page title goes over here", "a description that is fine")
	b.H1 = []string{"One", "Two"}
	b.H2 = make([]string, 11)
	for i := range b.H2 {
		b.H2[i] = strings.Repeat("h", 5+i)
	}

	counts := audit.AggregateIssues([]models.PageRecord{a, b}, nil)

	assert.Equal(t, 1, counts["noH1"])
	assert.Equal(t, 1, counts["multiH1"])
	assert.Equal(t, 1, counts["manyH2"])
}

func TestAggregateIssues_BrokenAndThin(t *testing.T) {
	a := page("https://a.com/1", "First page title goes right here", "a description that is fine")
	a.StatusCode = 404
	b := page("https://a.com/2", "Second page title goes over here", "a description that is fine")
	b.StatusCode = 301
	c := page("https://a.com/3", "Third page title sits over here!", "a description that is fine")
	c.WordCount = 120

	counts := audit.AggregateIssues([]models.PageRecord{a, b, c}, nil)

	assert.Equal(t, 1, counts["brokenLinks"])
	assert.Equal(t, 1, counts["nonIndexable"])
	assert.Equal(t, 1, counts["thinContent"])
}

func TestCrawledPages_SkipsPlaceholders(t *testing.T) {
	pages := []models.PageRecord{
		{URL: "https://a.com/1", Title: models.PendingTitle},
		{URL: "https://a.com/2", Title: ""},
		page("https://a.com/3", "A real crawled page title here!!", "present"),
	}

	crawled := audit.CrawledPages(pages)

	assert.Len(t, crawled, 1)
	assert.Equal(t, "https://a.com/3", crawled[0].URL)
}
