package audit

import "github.com/jonesrussell/seo-audit/internal/models"

// Two speed-score variants exist and intentionally stay separate: the
// load-time formula below scores raw crawl timings, while the Lighthouse
// performance score comes from the external audit. Which is authoritative is
// unresolved upstream, so both are kept under their own names.

const (
	loadTimeBaselineMs = 1000
	loadTimePenaltyMs  = 50
	maxScore           = 100
)

// LoadTimeSpeedScore derives a 0-100 score from an average load time in
// milliseconds. A non-positive load time scores 0.
func LoadTimeSpeedScore(loadTimeMs float64) int {
	if loadTimeMs <= 0 {
		return 0
	}
	score := maxScore - int((loadTimeMs-loadTimeBaselineMs)/loadTimePenaltyMs)
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// LighthouseSpeedScore reads the externally-fetched mobile performance score,
// falling back to desktop. Returns 0 when no result is available.
func LighthouseSpeedScore(result *models.PageSpeedResult) int {
	if result == nil {
		return 0
	}
	if result.Mobile != nil {
		return result.Mobile.Scores["performance"]
	}
	if result.Desktop != nil {
		return result.Desktop.Scores["performance"]
	}
	return 0
}

// AvgLoadTime averages page load times in milliseconds.
func AvgLoadTime(pages []models.PageRecord) float64 {
	if len(pages) == 0 {
		return 0
	}
	total := 0.0
	for _, page := range pages {
		total += page.LoadTime
	}
	return total / float64(len(pages))
}

// AvgReadabilityGrade averages the grade-level scores of analyzed URLs.
func AvgReadabilityGrade(results []models.ReadabilityResult) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range results {
		total += r.FleschKincaidGrade
	}
	return total / float64(len(results))
}
