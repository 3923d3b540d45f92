package provider

import (
	"context"

	"github.com/jonesrussell/seo-audit/internal/jsonx"
)

// LighthouseResult holds the category scores and Core Web Vitals display
// values for one URL.
type LighthouseResult struct {
	URL    string
	Scores map[string]int
	Vitals map[string]string
}

// FetchLighthouse runs a live Lighthouse audit against a single URL.
func (c *Client) FetchLighthouse(ctx context.Context, url string, mobile bool) (*LighthouseResult, error) {
	task := map[string]any{
		"url":        url,
		"for_mobile": mobile,
		"categories": []string{"performance", "seo", "accessibility", "best-practices"},
	}

	envelope, err := c.post(ctx, "/v3/on_page/lighthouse/live/json", task)
	if err != nil {
		return nil, err
	}

	result := firstResult(envelope)
	categories := jsonx.Map(result, "categories")
	audits := jsonx.Map(result, "audits")

	scores := map[string]int{
		"performance":    jsonx.Score100(jsonx.Map(categories, "performance"), "score"),
		"seo":            jsonx.Score100(jsonx.Map(categories, "seo"), "score"),
		"accessibility":  jsonx.Score100(jsonx.Map(categories, "accessibility"), "score"),
		"best_practices": jsonx.Score100(jsonx.Map(categories, "best-practices"), "score"),
	}

	vitals := map[string]string{
		"lcp":         jsonx.String(jsonx.Map(audits, "largest-contentful-paint"), "displayValue"),
		"fid":         jsonx.String(jsonx.Map(audits, "max-potential-fid"), "displayValue"),
		"cls":         jsonx.String(jsonx.Map(audits, "cumulative-layout-shift"), "displayValue"),
		"fcp":         jsonx.String(jsonx.Map(audits, "first-contentful-paint"), "displayValue"),
		"tti":         jsonx.String(jsonx.Map(audits, "interactive"), "displayValue"),
		"tbt":         jsonx.String(jsonx.Map(audits, "total-blocking-time"), "displayValue"),
		"speed_index": jsonx.String(jsonx.Map(audits, "speed-index"), "displayValue"),
	}

	return &LighthouseResult{
		URL:    url,
		Scores: scores,
		Vitals: vitals,
	}, nil
}
