// Package audit holds the derived-metrics core: issue aggregation, threshold
// annotations, and display formatting. Everything here is a pure transform
// over already-extracted records.
package audit

import "github.com/jonesrussell/seo-audit/internal/models"

// Annotation labels selected by the threshold rules below.
const (
	LabelLowTraffic       = "Low Organic Traffic"
	LabelKeywordsNeedWork = "Many keywords need work"
	LabelStrongTraffic    = "Strong Organic Traffic"

	LabelKeywordPotential = "Has potential for more visitors"
	LabelLimitedKeywords  = "Limited Keywords"

	LabelNeedsLinkBuilding = "Needs Link Building"
	LabelHighSpamBacklinks = "Many High Spam Backlinks"

	LabelSpeedExcellent = "Excellent"
	LabelSpeedNeedsWork = "Needs Optimization"
	LabelSpeedPoor      = "Poor Performance"

	LabelPoorReadability = "Poor Page Readability"
	LabelAptReadability  = "Content Readability is Apt"
)

const (
	trafficThreshold        = 20000
	needsWorkTrafficCutoff  = 20
	needsWorkKeywordCutoff  = 50
	keywordCountCutoff      = 100
	referringDomainsCutoff  = 100
	speedExcellentThreshold = 90
	speedNeedsWorkThreshold = 50
	readabilityGradeCutoff  = 9
)

// Needs-work position band: ranked beyond the top 20 but still in the top 100.
const (
	needsWorkMinPosition = 20
	needsWorkMaxPosition = 100
)

// NeedsWorkCount counts keywords ranked in positions 21-100.
func NeedsWorkCount(keywords []models.Keyword) int {
	count := 0
	for _, kw := range keywords {
		if kw.Position > needsWorkMinPosition && kw.Position <= needsWorkMaxPosition {
			count++
		}
	}
	return count
}

// TrafficAnnotation labels the organic traffic picture. The traffic floor
// dominates; the needs-work count only differentiates domains above it.
func TrafficAnnotation(totalTraffic, needsWorkCount int) string {
	if totalTraffic < trafficThreshold {
		return LabelLowTraffic
	}
	if needsWorkCount > needsWorkTrafficCutoff {
		return LabelKeywordsNeedWork
	}
	return LabelStrongTraffic
}

// KeywordAnnotation labels the keyword opportunity.
func KeywordAnnotation(totalKeywords, needsWorkCount int) string {
	if needsWorkCount > needsWorkKeywordCutoff || totalKeywords >= keywordCountCutoff {
		return LabelKeywordPotential
	}
	return LabelLimitedKeywords
}

// BacklinksAnnotation labels the link profile. highSpamCount has no upstream
// source yet and is always 0; the referring-domain threshold decides alone.
func BacklinksAnnotation(referringDomains, highSpamCount int) string {
	_ = highSpamCount
	if referringDomains < referringDomainsCutoff {
		return LabelNeedsLinkBuilding
	}
	return LabelHighSpamBacklinks
}

// SpeedAnnotation labels a 0-100 performance score.
func SpeedAnnotation(score int) string {
	if score >= speedExcellentThreshold {
		return LabelSpeedExcellent
	}
	if score >= speedNeedsWorkThreshold {
		return LabelSpeedNeedsWork
	}
	return LabelSpeedPoor
}

// ReadabilityAnnotation labels the average grade-level score.
func ReadabilityAnnotation(avgGrade float64) string {
	if avgGrade > readabilityGradeCutoff {
		return LabelPoorReadability
	}
	return LabelAptReadability
}
