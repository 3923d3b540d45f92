// Package pagespeed fetches Lighthouse performance data from the PageSpeed
// Insights API for both device strategies.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/jsonx"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
)

const (
	StrategyMobile  = "mobile"
	StrategyDesktop = "desktop"

	requestTimeout = 90 * time.Second
	maxRetries     = 3
	retryBackoff   = 30 * time.Second
)

// audit key -> result metric key
var vitalAudits = map[string]string{
	"first-contentful-paint":   "fcp",
	"largest-contentful-paint": "lcp",
	"cumulative-layout-shift":  "cls",
	"total-blocking-time":      "tbt",
	"speed-index":              "speed_index",
}

type Client struct {
	baseURL string
	apiKey  string
	backoff time.Duration
	client  *http.Client
	logger  logger.Logger
}

func NewClient(cfg config.PageSpeedConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		backoff: retryBackoff,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  log,
	}
}

// Fetch analyzes target under both strategies. A single failed strategy is
// logged and left nil rather than failing the whole result; only both
// strategies failing is an error.
func (c *Client) Fetch(ctx context.Context, target string) (*models.PageSpeedResult, error) {
	result := &models.PageSpeedResult{URL: target}

	mobile, mobileErr := c.FetchStrategy(ctx, target, StrategyMobile)
	if mobileErr != nil {
		c.logger.Warn("mobile pagespeed fetch failed",
			logger.String("url", target),
			logger.Error(mobileErr),
		)
	} else {
		result.Mobile = mobile
	}

	desktop, desktopErr := c.FetchStrategy(ctx, target, StrategyDesktop)
	if desktopErr != nil {
		c.logger.Warn("desktop pagespeed fetch failed",
			logger.String("url", target),
			logger.Error(desktopErr),
		)
	} else {
		result.Desktop = desktop
	}

	if result.Mobile == nil && result.Desktop == nil {
		return nil, fmt.Errorf("pagespeed analysis failed for %s: %w", target, mobileErr)
	}
	return result, nil
}

// FetchStrategy runs one Lighthouse analysis. Rate limit responses back off
// 30s, 60s, 90s before giving up.
func (c *Client) FetchStrategy(ctx context.Context, target, strategy string) (*models.StrategyResult, error) {
	var body map[string]any
	for attempt := 1; attempt <= maxRetries; attempt++ {
		status, err := c.run(ctx, target, strategy, &body)
		if err != nil {
			return nil, err
		}
		if status == http.StatusTooManyRequests {
			if attempt == maxRetries {
				break
			}
			wait := time.Duration(attempt) * c.backoff
			c.logger.Warn("pagespeed rate limited",
				logger.String("url", target),
				logger.String("strategy", strategy),
				logger.Duration("wait", wait),
				logger.Int("attempt", attempt),
			)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from pagespeed api", status)
		}
		return extractStrategy(body), nil
	}
	return nil, fmt.Errorf("pagespeed rate limit retries exhausted for %s", target)
}

// FetchScreenshot runs a desktop analysis and returns the final-screenshot
// image as a base64 data URI, or "" when none was captured.
func (c *Client) FetchScreenshot(ctx context.Context, target string) (string, error) {
	var body map[string]any
	status, err := c.run(ctx, target, StrategyDesktop, &body)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from pagespeed api", status)
	}
	audits := jsonx.Map(body, "lighthouseResult", "audits")
	return jsonx.String(jsonx.Map(audits, "final-screenshot", "details"), "data"), nil
}

func (c *Client) run(ctx context.Context, target, strategy string, out *map[string]any) (int, error) {
	params := url.Values{}
	params.Set("url", target)
	params.Set("strategy", strategy)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	for _, category := range []string{"performance", "accessibility", "best-practices", "seo"} {
		params.Add("category", category)
	}

	endpoint := c.baseURL + "/runPagespeed?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building pagespeed request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing pagespeed request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("pagespeed api call",
		logger.String("url", target),
		logger.String("strategy", strategy),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("decoding pagespeed response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func extractStrategy(body map[string]any) *models.StrategyResult {
	lighthouse := jsonx.Map(body, "lighthouseResult")
	categories := jsonx.Map(lighthouse, "categories")
	audits := jsonx.Map(lighthouse, "audits")

	result := &models.StrategyResult{
		Scores: map[string]int{
			"performance":    jsonx.Score100(jsonx.Map(categories, "performance"), "score"),
			"accessibility":  jsonx.Score100(jsonx.Map(categories, "accessibility"), "score"),
			"best_practices": jsonx.Score100(jsonx.Map(categories, "best-practices"), "score"),
			"seo":            jsonx.Score100(jsonx.Map(categories, "seo"), "score"),
		},
		Metrics: make(map[string]models.SpeedMetric, len(vitalAudits)),
	}

	for auditKey, metricKey := range vitalAudits {
		audit := jsonx.Map(audits, auditKey)
		display := jsonx.String(audit, "displayValue")
		if display == "" {
			display = "N/A"
		}
		result.Metrics[metricKey] = models.SpeedMetric{
			DisplayValue: display,
			Score:        jsonx.Float(audit, "score"),
		}
	}

	result.Screenshot = jsonx.String(jsonx.Map(audits, "final-screenshot", "details"), "data")
	return result
}

// ScoreColor maps a 0-100 score to the badge color used on speed slides.
func ScoreColor(score int) string {
	switch {
	case score >= 90:
		return "green"
	case score >= 50:
		return "orange"
	default:
		return "red"
	}
}
