package provider

import (
	"context"

	"github.com/jonesrussell/seo-audit/internal/jsonx"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
)

// KeywordReport holds the ranked keyword sample plus the authoritative
// aggregate totals. Totals come from the result metrics, never from summing
// the capped item list.
type KeywordReport struct {
	Keywords         []models.Keyword
	TotalCount       int
	EstimatedTraffic int
	AtLimit          bool
}

// DomainMetrics are the domain-level organic totals.
type DomainMetrics struct {
	TotalTraffic  int
	TotalKeywords int
	Top1          int
	Top3          int
	Top10         int
}

// FetchRankedKeywords returns the ranked keywords for the domain.
func (c *Client) FetchRankedKeywords(ctx context.Context, domain string) (*KeywordReport, error) {
	task := map[string]any{
		"target":            domain,
		"location_code":     defaultLocationCode,
		"language_code":     defaultLanguage,
		"limit":             c.keywordLimit,
		"include_serp_info": true,
	}

	envelope, err := c.post(ctx, "/v3/dataforseo_labs/google/ranked_keywords/live", task)
	if err != nil {
		return nil, err
	}

	result := firstResult(envelope)
	items := jsonx.MapSlice(result, "items")

	keywords := make([]models.Keyword, 0, len(items))
	for _, item := range items {
		keywords = append(keywords, extractKeyword(item))
	}

	organic := jsonx.Map(result, "metrics", "organic")
	totalCount := jsonx.Int(organic, "count")
	if totalCount == 0 {
		totalCount = jsonx.Int(result, "total_count")
	}
	if totalCount == 0 {
		totalCount = len(keywords)
	}

	report := &KeywordReport{
		Keywords:         keywords,
		TotalCount:       totalCount,
		EstimatedTraffic: jsonx.Int(organic, "etv"),
		AtLimit:          len(items) >= c.keywordLimit,
	}

	c.logger.Info("Ranked keywords fetched",
		logger.String("domain", domain),
		logger.Int("sample_size", len(keywords)),
		logger.Int("total_count", report.TotalCount),
		logger.Bool("at_limit", report.AtLimit),
	)

	return report, nil
}

// FetchDomainMetrics returns the authoritative organic totals for the domain.
func (c *Client) FetchDomainMetrics(ctx context.Context, domain string) (*DomainMetrics, error) {
	task := map[string]any{
		"target":        domain,
		"location_code": defaultLocationCode,
		"language_code": defaultLanguage,
	}

	envelope, err := c.post(ctx, "/v3/dataforseo_labs/google/domain_rank_overview/live", task)
	if err != nil {
		return nil, err
	}

	organic := jsonx.Map(firstResult(envelope), "metrics", "organic")

	return &DomainMetrics{
		TotalTraffic:  jsonx.Int(organic, "etv"),
		TotalKeywords: jsonx.Int(organic, "count"),
		Top1:          jsonx.Int(organic, "pos_1"),
		Top3:          jsonx.Int(organic, "pos_2_3"),
		Top10:         jsonx.Int(organic, "pos_4_10"),
	}, nil
}

func extractKeyword(item map[string]any) models.Keyword {
	keywordData := jsonx.Map(item, "keyword_data")
	info := jsonx.Map(keywordData, "keyword_info")
	serpItem := jsonx.Map(item, "ranked_serp_element", "serp_item")

	return models.Keyword{
		Keyword:      jsonx.String(keywordData, "keyword"),
		SearchVolume: jsonx.Int(info, "search_volume"),
		CPC:          jsonx.Float(info, "cpc"),
		Competition:  jsonx.String(info, "competition_level"),
		Position:     jsonx.Int(serpItem, "rank_absolute"),
		Traffic:      jsonx.Float(serpItem, "etv"),
		RankedURL:    jsonx.String(serpItem, "relative_url"),
	}
}
