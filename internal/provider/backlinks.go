package provider

import (
	"context"

	"github.com/jonesrussell/seo-audit/internal/jsonx"
	"github.com/jonesrussell/seo-audit/internal/models"
)

// FetchBacklinksSummary returns the aggregated backlink profile for a domain.
func (c *Client) FetchBacklinksSummary(ctx context.Context, domain string) (*models.BacklinksSummary, error) {
	task := map[string]any{
		"target":              domain,
		"internal_list_limit": 10,
	}

	envelope, err := c.post(ctx, "/v3/backlinks/summary/live", task)
	if err != nil {
		return nil, err
	}

	result := firstResult(envelope)

	return &models.BacklinksSummary{
		TotalBacklinks:           jsonx.Int(result, "total_backlinks"),
		ReferringDomains:         jsonx.Int(result, "referring_domains"),
		Rank:                     jsonx.Int(result, "rank"),
		BrokenBacklinks:          jsonx.Int(result, "broken_backlinks"),
		ReferringDomainsNofollow: jsonx.Int(result, "referring_domains_nofollow"),
		ReferringDomainsDofollow: jsonx.Int(result, "referring_domains_dofollow"),
	}, nil
}

// FetchReferringDomains returns the top referring domains ranked strongest
// first.
func (c *Client) FetchReferringDomains(ctx context.Context, domain string) ([]models.ReferringDomain, error) {
	task := map[string]any{
		"target":   domain,
		"limit":    c.keywordLimit,
		"order_by": []string{"rank,desc"},
	}

	envelope, err := c.post(ctx, "/v3/backlinks/referring_domains/live", task)
	if err != nil {
		return nil, err
	}

	items := jsonx.MapSlice(firstResult(envelope), "items")
	domains := make([]models.ReferringDomain, 0, len(items))
	for _, item := range items {
		rd := models.ReferringDomain{
			Domain:    jsonx.String(item, "domain"),
			Backlinks: jsonx.Int(item, "backlinks"),
			Rank:      jsonx.Int(item, "rank"),
		}
		if rd.Domain == "" {
			continue
		}
		domains = append(domains, rd)
	}

	return domains, nil
}
