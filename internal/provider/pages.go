package provider

import (
	"context"
	"strings"

	"github.com/jonesrussell/seo-audit/internal/jsonx"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
)

const (
	titleMaxLen       = 60
	titleMinLen       = 30
	descriptionMaxLen = 160
	slowLoadMs        = 3000
	thinContentWords  = 300
)

// FetchPages returns the crawled pages for a task, worst pages first, each
// normalized into a PageRecord. Items without a URL are dropped; everything
// else is defaulted field by field.
func (c *Client) FetchPages(ctx context.Context, taskID string) ([]models.PageRecord, error) {
	task := map[string]any{
		"id":       taskID,
		"limit":    c.maxPages,
		"order_by": []string{"onpage_score,asc"},
	}

	envelope, err := c.post(ctx, "/v3/on_page/pages", task)
	if err != nil {
		return nil, err
	}

	items := jsonx.MapSlice(firstResult(envelope), "items")
	pages := make([]models.PageRecord, 0, len(items))
	for _, item := range items {
		page := extractPage(item)
		if page.URL == "" {
			continue
		}
		pages = append(pages, page)
	}

	c.logger.Info("Crawled pages fetched",
		logger.String("task_id", taskID),
		logger.Int("page_count", len(pages)),
	)

	return pages, nil
}

// extractPage normalizes one raw page item. Every nesting hop is type-checked
// and defaulted so a malformed item can never abort the batch.
func extractPage(item map[string]any) models.PageRecord {
	meta := jsonx.Map(item, "meta")
	htags := jsonx.Map(meta, "htags")
	content := jsonx.Map(meta, "content")
	timing := jsonx.Map(item, "page_timing")
	checks := jsonx.Map(item, "checks")

	page := models.PageRecord{
		URL:         jsonx.String(item, "url"),
		StatusCode:  jsonx.Int(item, "status_code"),
		OnPageScore: jsonx.Float(item, "onpage_score"),
		Title:       jsonx.String(meta, "title"),
		Description: jsonx.String(meta, "description"),
		H1:          jsonx.Strings(htags, "h1"),
		H2:          jsonx.Strings(htags, "h2"),
		H3:          jsonx.Strings(htags, "h3"),

		WordCount:          jsonx.Int(content, "plain_text_word_count"),
		ContentSize:        jsonx.Int(content, "plain_text_size"),
		ContentRate:        jsonx.Float(content, "plain_text_rate"),
		FleschKincaidGrade: jsonx.Float(content, "flesch_kincaid_readability_index"),
		AutomatedReadIndex: jsonx.Float(content, "automated_readability_index"),
		ColemanLiauIndex:   jsonx.Float(content, "coleman_liau_readability_index"),
		SmogIndex:          jsonx.Float(content, "smog_readability_index"),

		TimeToInteractive: jsonx.Float(timing, "time_to_interactive"),
		DomComplete:       jsonx.Float(timing, "dom_complete"),
		LargestPaint:      jsonx.Float(timing, "largest_contentful_paint"),
		FirstInputDelay:   jsonx.Float(timing, "first_input_delay"),
		ConnectionTime:    jsonx.Float(timing, "connection_time"),
		TimeToFirstByte:   jsonx.Float(timing, "waiting_time"),
		DownloadTime:      jsonx.Float(timing, "download_time"),
		DurationTime:      jsonx.Float(timing, "duration_time"),

		InternalLinks: jsonx.Int(meta, "internal_links_count"),
		ExternalLinks: jsonx.Int(meta, "external_links_count"),
		InboundLinks:  jsonx.Int(meta, "inbound_links_count"),
		Images:        jsonx.Int(meta, "images_count"),
		ImagesSize:    jsonx.Int(meta, "images_size"),
		Scripts:       jsonx.Int(meta, "scripts_count"),
		ScriptsSize:   jsonx.Int(meta, "scripts_size"),
		Stylesheets:   jsonx.Int(meta, "stylesheets_count"),
	}

	// Primary load time falls back through the timing fields.
	page.LoadTime = page.TimeToInteractive
	if page.LoadTime == 0 {
		page.LoadTime = page.DomComplete
	}
	if page.LoadTime == 0 {
		page.LoadTime = page.DownloadTime
	}

	page.Checks = extractChecks(checks)
	page.Issues = deriveIssues(page, checks)

	return page
}

func extractChecks(checks map[string]any) map[string]bool {
	out := make(map[string]bool, len(checks))
	for name, v := range checks {
		flag, ok := v.(bool)
		out[name] = ok && flag
	}
	return out
}

// deriveIssues combines provider check flags with recomputed heuristics. The
// provider flag wins when present; the heuristic fills in when it is absent.
// Values are always booleans, never null.
func deriveIssues(page models.PageRecord, checks map[string]any) map[string]bool {
	titleLen := len(page.Title)

	issues := map[string]bool{
		"no_title":             checkOr(checks, "no_title", page.Title == ""),
		"no_description":       checkOr(checks, "no_description", page.Description == ""),
		"no_h1":                checkOr(checks, "no_h1_tag", len(page.H1) == 0),
		"multiple_h1":          len(page.H1) > 1,
		"title_too_long":       checkOr(checks, "title_too_long", titleLen > titleMaxLen),
		"title_too_short":      checkOr(checks, "title_too_short", titleLen > 0 && titleLen < titleMinLen),
		"description_too_long": len(page.Description) > descriptionMaxLen,
		"slow_load":            checkOr(checks, "high_loading_time", page.LoadTime > slowLoadMs),
		"low_content":          checkOr(checks, "low_content_rate", page.WordCount < thinContentWords),
		"is_https":             checkOr(checks, "is_https", strings.HasPrefix(page.URL, "https")),
	}

	// Provider flags carried through as-is when no heuristic applies.
	passthrough := []string{
		"is_broken", "is_redirect", "is_4xx_code", "is_5xx_code",
		"high_waiting_time", "no_image_alt", "no_image_title", "no_favicon",
		"duplicate_title_tag", "duplicate_meta_tags", "deprecated_html_tags",
		"has_render_blocking_resources", "no_doctype", "no_encoding_meta_tag",
		"https_to_http_links", "is_orphan_page", "redirect_chain",
		"canonical_chain", "has_links_to_redirects", "large_page_size",
		"low_readability_rate", "has_misspelling", "lorem_ipsum",
	}
	for _, name := range passthrough {
		issues[name] = jsonx.Bool(checks, name)
	}

	return issues
}

// checkOr returns the provider flag when set, else the recomputed fallback.
func checkOr(checks map[string]any, name string, fallback bool) bool {
	if checks == nil {
		return fallback
	}
	if v, ok := checks[name]; ok {
		if flag, isBool := v.(bool); isBool {
			return flag
		}
	}
	return fallback
}
