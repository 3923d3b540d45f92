package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/seo-audit/internal/jsonx"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

// CrawlSummary reports the progress and page metrics of a crawl task.
type CrawlSummary struct {
	Domain        string
	CrawlProgress string
	PagesCrawled  int
	PagesInQueue  int
	OnPageScore   float64
	TotalPages    int
	PageMetrics   map[string]any
}

// Finished reports whether the crawl has run to completion.
func (s *CrawlSummary) Finished() bool {
	return s.CrawlProgress == "finished"
}

// StartCrawl submits a crawl task for the domain and returns its task id.
func (c *Client) StartCrawl(ctx context.Context, domain string) (string, error) {
	task := map[string]any{
		"target":                    domain,
		"max_crawl_pages":           c.maxPages,
		"load_resources":            true,
		"enable_javascript":         true,
		"enable_browser_rendering":  true,
		"enable_xhr":                true,
		"check_spell":               true,
		"calculate_keyword_density": true,
		"store_raw_html":            false,
	}

	envelope, err := c.post(ctx, "/v3/on_page/task_post", task)
	if err != nil {
		return "", err
	}

	taskObj := jsonx.First(envelope, "tasks")
	taskID := jsonx.String(taskObj, "id")
	if taskID == "" {
		return "", errors.New("provider returned no task id")
	}

	c.logger.Info("Crawl task submitted",
		logger.String("domain", domain),
		logger.String("task_id", taskID),
		logger.String("status", jsonx.String(taskObj, "status_message")),
	)

	return taskID, nil
}

// IsTaskReady checks the ready queue for the given task id.
func (c *Client) IsTaskReady(ctx context.Context, taskID string) (bool, error) {
	envelope, err := c.get(ctx, "/v3/on_page/tasks_ready")
	if err != nil {
		return false, err
	}

	task := jsonx.First(envelope, "tasks")
	for _, ready := range jsonx.MapSlice(task, "result") {
		if jsonx.String(ready, "id") == taskID {
			return true, nil
		}
	}

	return false, nil
}

// FetchSummary returns the current crawl summary. The crawl_progress field
// arrives as either a status string or a progress object; both are handled.
func (c *Client) FetchSummary(ctx context.Context, taskID string) (*CrawlSummary, error) {
	envelope, err := c.get(ctx, fmt.Sprintf("/v3/on_page/summary/%s", taskID))
	if err != nil {
		return nil, err
	}

	result := firstResult(envelope)

	summary := &CrawlSummary{
		Domain:      jsonx.String(result, "target"),
		OnPageScore: jsonx.Float(result, "onpage_score"),
		TotalPages:  jsonx.Int(result, "total_pages"),
		PageMetrics: jsonx.Map(result, "page_metrics"),
	}

	switch progress := result["crawl_progress"].(type) {
	case string:
		summary.CrawlProgress = progress
		status := jsonx.Map(result, "crawl_status")
		summary.PagesCrawled = jsonx.Int(status, "pages_crawled")
		summary.PagesInQueue = jsonx.Int(status, "pages_in_queue")
	case map[string]any:
		summary.CrawlProgress = "in_progress"
		summary.PagesCrawled = jsonx.Int(progress, "pages_crawled")
		summary.PagesInQueue = jsonx.Int(progress, "pages_in_queue")
	default:
		summary.CrawlProgress = "unknown"
	}

	return summary, nil
}

// FetchDuplicateTags returns the duplicate tag groups for a crawl. tagType is
// one of the provider's duplicate_title/duplicate_description selectors.
func (c *Client) FetchDuplicateTags(ctx context.Context, taskID, tagType string) ([]map[string]any, error) {
	task := map[string]any{
		"id":    taskID,
		"type":  tagType,
		"limit": 100,
	}

	envelope, err := c.post(ctx, "/v3/on_page/duplicate_tags", task)
	if err != nil {
		return nil, err
	}

	return jsonx.MapSlice(firstResult(envelope), "items"), nil
}

// FetchNonIndexable returns the non-indexable page entries for a crawl.
func (c *Client) FetchNonIndexable(ctx context.Context, taskID string) ([]map[string]any, error) {
	task := map[string]any{
		"id":    taskID,
		"limit": 100,
	}

	envelope, err := c.post(ctx, "/v3/on_page/non_indexable", task)
	if err != nil {
		return nil, err
	}

	return jsonx.MapSlice(firstResult(envelope), "items"), nil
}
