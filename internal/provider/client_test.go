package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.ProviderConfig{
		BaseURL:       srv.URL,
		Login:         "user",
		Password:      "pass",
		MaxCrawlPages: 100,
		KeywordLimit:  1000,
	}, logger.NewNop())
	require.NoError(t, err)
	return c, srv
}

func envelope(taskBody string) string {
	return `{"status_code":20000,"tasks":[` + taskBody + `]}`
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(config.ProviderConfig{Login: "u", Password: "p"}, logger.NewNop())
	assert.Error(t, err)

	_, err = NewClient(config.ProviderConfig{BaseURL: "https://api.test"}, logger.NewNop())
	assert.Error(t, err)
}

func TestStartCrawl(t *testing.T) {
	var captured []map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/on_page/task_post", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(envelope(`{"id":"task-123","status_message":"Ok."}`)))
	})

	taskID, err := c.StartCrawl(context.Background(), "https://acme.com")

	require.NoError(t, err)
	assert.Equal(t, "task-123", taskID)
	require.Len(t, captured, 1)
	assert.Equal(t, "https://acme.com", captured[0]["target"])
	assert.InDelta(t, 100, captured[0]["max_crawl_pages"], 0.001)
}

func TestStartCrawl_ProviderError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status_code":40101,"status_message":"Authentication failed"}`))
	})

	_, err := c.StartCrawl(context.Background(), "https://acme.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication failed")
}

func TestStartCrawl_EmptyTaskList(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[]}`))
	})

	_, err := c.StartCrawl(context.Background(), "https://acme.com")

	assert.Error(t, err)
}

func TestFetchSummary_ProgressString(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/on_page/summary/task-123", r.URL.Path)
		_, _ = w.Write([]byte(envelope(`{"result":[{
			"target":"acme.com",
			"crawl_progress":"finished",
			"crawl_status":{"pages_crawled":87,"pages_in_queue":0},
			"onpage_score":91.4,
			"total_pages":87,
			"page_metrics":{"links_external":12}
		}]}`)))
	})

	summary, err := c.FetchSummary(context.Background(), "task-123")

	require.NoError(t, err)
	assert.Equal(t, "acme.com", summary.Domain)
	assert.True(t, summary.Finished())
	assert.Equal(t, 87, summary.PagesCrawled)
	assert.Equal(t, 0, summary.PagesInQueue)
	assert.InDelta(t, 91.4, summary.OnPageScore, 0.001)
	assert.Equal(t, 87, summary.TotalPages)
	assert.NotNil(t, summary.PageMetrics)
}

func TestFetchSummary_ProgressObject(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelope(`{"result":[{
			"target":"acme.com",
			"crawl_progress":{"pages_crawled":12,"pages_in_queue":88}
		}]}`)))
	})

	summary, err := c.FetchSummary(context.Background(), "task-123")

	require.NoError(t, err)
	assert.Equal(t, "in_progress", summary.CrawlProgress)
	assert.False(t, summary.Finished())
	assert.Equal(t, 12, summary.PagesCrawled)
	assert.Equal(t, 88, summary.PagesInQueue)
}

func TestFetchSummary_ProgressMissing(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelope(`{"result":[{"target":"acme.com"}]}`)))
	})

	summary, err := c.FetchSummary(context.Background(), "task-123")

	require.NoError(t, err)
	assert.Equal(t, "unknown", summary.CrawlProgress)
}

func TestFetchRankedKeywords_TotalsFromMetrics(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/dataforseo_labs/google/ranked_keywords/live", r.URL.Path)
		_, _ = w.Write([]byte(envelope(`{"result":[{
			"metrics":{"organic":{"count":2456,"etv":18500}},
			"items":[
				{
					"keyword_data":{"keyword":"plumber near me","keyword_info":{"search_volume":9900,"cpc":4.51,"competition_level":"HIGH"}},
					"ranked_serp_element":{"serp_item":{"rank_absolute":7,"etv":640.5,"relative_url":"/services"}}
				},
				{
					"keyword_data":{"keyword":"drain cleaning"}
				}
			]
		}]}`)))
	})

	report, err := c.FetchRankedKeywords(context.Background(), "acme.com")

	require.NoError(t, err)
	// Totals must come from the aggregate metrics, not the capped item list.
	assert.Equal(t, 2456, report.TotalCount)
	assert.Equal(t, 18500, report.EstimatedTraffic)
	assert.False(t, report.AtLimit)

	require.Len(t, report.Keywords, 2)
	kw := report.Keywords[0]
	assert.Equal(t, "plumber near me", kw.Keyword)
	assert.Equal(t, 9900, kw.SearchVolume)
	assert.InDelta(t, 4.51, kw.CPC, 0.001)
	assert.Equal(t, "HIGH", kw.Competition)
	assert.Equal(t, 7, kw.Position)
	assert.InDelta(t, 640.5, kw.Traffic, 0.001)
	assert.Equal(t, "/services", kw.RankedURL)

	// Partial items default instead of failing.
	assert.Equal(t, "drain cleaning", report.Keywords[1].Keyword)
	assert.Zero(t, report.Keywords[1].Position)
}

func TestFetchDomainMetrics(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/dataforseo_labs/google/domain_rank_overview/live", r.URL.Path)
		_, _ = w.Write([]byte(envelope(`{"result":[{
			"metrics":{"organic":{"etv":25000,"count":310,"pos_1":4,"pos_2_3":11,"pos_4_10":40}}
		}]}`)))
	})

	metrics, err := c.FetchDomainMetrics(context.Background(), "acme.com")

	require.NoError(t, err)
	assert.Equal(t, 25000, metrics.TotalTraffic)
	assert.Equal(t, 310, metrics.TotalKeywords)
	assert.Equal(t, 4, metrics.Top1)
	assert.Equal(t, 11, metrics.Top3)
	assert.Equal(t, 40, metrics.Top10)
}

func TestIsTaskReady(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(envelope(`{"result":[{"id":"other"},{"id":"task-123"}]}`)))
	})

	ready, err := c.IsTaskReady(context.Background(), "task-123")
	require.NoError(t, err)
	assert.True(t, ready)

	ready, err = c.IsTaskReady(context.Background(), "task-999")
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestFetchDuplicateTags(t *testing.T) {
	var captured []map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/on_page/duplicate_tags", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(envelope(`{"result":[{"items":[
			{"accumulator":"Acme plumbing","pages":["https://acme.com/","https://acme.com/about"]}
		]}]}`)))
	})

	items, err := c.FetchDuplicateTags(context.Background(), "task-123", "duplicate_title")

	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, "task-123", captured[0]["id"])
	assert.Equal(t, "duplicate_title", captured[0]["type"])
	assert.InDelta(t, 100, captured[0]["limit"], 0.001)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme plumbing", items[0]["accumulator"])
}

func TestFetchNonIndexable(t *testing.T) {
	var captured []map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/on_page/non_indexable", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(envelope(`{"result":[{"items":[
			{"url":"https://acme.com/private","reason":"robots_txt"}
		]}]}`)))
	})

	items, err := c.FetchNonIndexable(context.Background(), "task-123")

	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, "task-123", captured[0]["id"])
	require.Len(t, items, 1)
	assert.Equal(t, "robots_txt", items[0]["reason"])
}

func TestFetchLighthouse(t *testing.T) {
	var captured []map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/on_page/lighthouse/live/json", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(envelope(`{"result":[{
			"categories":{
				"performance":{"score":0.63},
				"seo":{"score":0.97},
				"accessibility":{"score":1},
				"best-practices":{"score":0.849}
			},
			"audits":{
				"largest-contentful-paint":{"displayValue":"2.1 s"},
				"cumulative-layout-shift":{"displayValue":"0.02"}
			}
		}]}`)))
	})

	result, err := c.FetchLighthouse(context.Background(), "https://acme.com", true)

	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, "https://acme.com", captured[0]["url"])
	assert.Equal(t, true, captured[0]["for_mobile"])

	assert.Equal(t, 63, result.Scores["performance"])
	assert.Equal(t, 97, result.Scores["seo"])
	assert.Equal(t, 100, result.Scores["accessibility"])
	assert.Equal(t, 84, result.Scores["best_practices"])
	assert.Equal(t, "2.1 s", result.Vitals["lcp"])
	assert.Equal(t, "0.02", result.Vitals["cls"])
	assert.Empty(t, result.Vitals["fid"])
}
