package audit

import (
	"strings"

	"github.com/jonesrussell/seo-audit/internal/models"
)

const (
	titleMaxLen       = 60
	titleMinLen       = 30
	descriptionMinLen = 5
	descriptionMaxLen = 160
	maxH2PerPage      = 10
	maxH3PerPage      = 15
	thinContentWords  = 300

	// Normalized heading text this short is noise, not a duplicate signal.
	minDuplicateLen = 3
)

// AggregateIssues produces the named issue counts for a page set. When the
// caller supplies a precomputed count map it is returned as-is: those counts
// come from an upstream pass with more context, and recomputing here would
// let the two code paths drift apart. Recomputation is only the fallback.
func AggregateIssues(pages []models.PageRecord, supplied map[string]int) map[string]int {
	if len(supplied) > 0 {
		return supplied
	}

	counts := map[string]int{
		"noTitle":       0,
		"titleTooLong":  0,
		"titleTooShort": 0,
		"noDesc":        0,
		"descTooLong":   0,
		"noH1":          0,
		"multiH1":       0,
		"noH2":          0,
		"manyH2":        0,
		"noH3":          0,
		"manyH3":        0,
		"brokenLinks":   0,
		"nonIndexable":  0,
		"thinContent":   0,
	}

	// A fetched page with no title looks the same as an uncrawled placeholder
	// after filtering, so the missing-title count scans the raw set. Status
	// code zero marks a page that never got a response.
	for _, page := range pages {
		if page.Title == "" && page.StatusCode != 0 {
			counts["noTitle"]++
		}
	}

	crawled := CrawledPages(pages)

	titlePages := make(map[string]map[string]struct{})
	descPages := make(map[string]map[string]struct{})
	h1Pages := make(map[string]map[string]struct{})
	h2Pages := make(map[string]map[string]struct{})
	h3Pages := make(map[string]map[string]struct{})

	for _, page := range crawled {
		titleLen := len(page.Title)
		descLen := len(page.Description)

		if titleLen > titleMaxLen {
			counts["titleTooLong"]++
		}
		if titleLen > 0 && titleLen < titleMinLen {
			counts["titleTooShort"]++
		}
		if descLen < descriptionMinLen {
			counts["noDesc"]++
		} else if descLen > descriptionMaxLen {
			counts["descTooLong"]++
		}

		if len(page.H1) == 0 {
			counts["noH1"]++
		}
		if len(page.H1) > 1 {
			counts["multiH1"]++
		}
		if len(page.H2) == 0 {
			counts["noH2"]++
		}
		if len(page.H2) > maxH2PerPage {
			counts["manyH2"]++
		}
		if len(page.H3) == 0 {
			counts["noH3"]++
		}
		if len(page.H3) > maxH3PerPage {
			counts["manyH3"]++
		}

		if page.Issues["is_broken"] || page.StatusCode >= 400 {
			counts["brokenLinks"]++
		}
		if page.StatusCode >= 300 && page.StatusCode < 400 {
			counts["nonIndexable"]++
		}
		if page.WordCount < thinContentWords {
			counts["thinContent"]++
		}

		trackDuplicates(titlePages, page.URL, []string{page.Title})
		trackDuplicates(descPages, page.URL, []string{page.Description})
		trackDuplicates(h1Pages, page.URL, page.H1)
		trackDuplicates(h2Pages, page.URL, page.H2)
		trackDuplicates(h3Pages, page.URL, page.H3)
	}

	counts["dupTitle"] = duplicateCount(titlePages)
	counts["dupDesc"] = duplicateCount(descPages)
	counts["dupH1"] = duplicateCount(h1Pages)
	counts["dupH2"] = duplicateCount(h2Pages)
	counts["dupH3"] = duplicateCount(h3Pages)

	return counts
}

// CrawledPages filters out placeholder entries that never received crawl
// results.
func CrawledPages(pages []models.PageRecord) []models.PageRecord {
	crawled := make([]models.PageRecord, 0, len(pages))
	for _, page := range pages {
		if page.Title == "" || page.Title == models.PendingTitle {
			continue
		}
		crawled = append(crawled, page)
	}
	return crawled
}

// trackDuplicates records which pages carry each normalized text value.
// A value repeated within one page counts that page once.
func trackDuplicates(index map[string]map[string]struct{}, url string, values []string) {
	for _, value := range values {
		key := strings.ToLower(strings.TrimSpace(value))
		if len(key) <= minDuplicateLen {
			continue
		}
		if index[key] == nil {
			index[key] = make(map[string]struct{})
		}
		index[key][url] = struct{}{}
	}
}

// duplicateCount counts distinct values appearing on more than one page.
func duplicateCount(index map[string]map[string]struct{}) int {
	count := 0
	for _, urls := range index {
		if len(urls) > 1 {
			count++
		}
	}
	return count
}
