package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/models"
)

func TestLoadTimeSpeedScore(t *testing.T) {
	tests := []struct {
		name   string
		loadMs float64
		want   int
	}{
		{"no timing data", 0, 0},
		{"negative timing", -50, 0},
		{"at baseline", 1000, 100},
		{"under baseline clamps high", 200, 100},
		{"one second over", 2000, 80},
		{"very slow clamps low", 20000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, audit.LoadTimeSpeedScore(tt.loadMs))
		})
	}
}

func TestLighthouseSpeedScore(t *testing.T) {
	assert.Equal(t, 0, audit.LighthouseSpeedScore(nil))

	mobileOnly := &models.PageSpeedResult{
		Mobile: &models.StrategyResult{Scores: map[string]int{"performance": 63}},
	}
	assert.Equal(t, 63, audit.LighthouseSpeedScore(mobileOnly))

	both := &models.PageSpeedResult{
		Mobile:  &models.StrategyResult{Scores: map[string]int{"performance": 48}},
		Desktop: &models.StrategyResult{Scores: map[string]int{"performance": 92}},
	}
	assert.Equal(t, 48, audit.LighthouseSpeedScore(both), "mobile wins when both exist")

	desktopOnly := &models.PageSpeedResult{
		Desktop: &models.StrategyResult{Scores: map[string]int{"performance": 92}},
	}
	assert.Equal(t, 92, audit.LighthouseSpeedScore(desktopOnly))
}

func TestAvgLoadTime(t *testing.T) {
	assert.Zero(t, audit.AvgLoadTime(nil))

	pages := []models.PageRecord{
		{LoadTime: 1000},
		{LoadTime: 2000},
		{LoadTime: 3000},
	}
	assert.InDelta(t, 2000, audit.AvgLoadTime(pages), 0.001)
}

func TestAvgReadabilityGrade(t *testing.T) {
	assert.Zero(t, audit.AvgReadabilityGrade(nil))

	results := []models.ReadabilityResult{
		{FleschKincaidGrade: 8},
		{FleschKincaidGrade: 12},
	}
	assert.InDelta(t, 10, audit.AvgReadabilityGrade(results), 0.001)
}
