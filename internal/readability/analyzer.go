package readability

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
)

const (
	fetchTimeout   = 30 * time.Second
	candidateLimit = 2
	blogBoost      = 1_000_000
)

// URL fragments that mark a page as article-style content. "202" catches
// dated paths like /2024/05/.
var blogMarkers = []string{"/blog", "/article", "/post", "/news", "/insight", "/guide", "202"}

// Analyzer picks article pages out of a crawl, fetches them and scores
// their prose.
type Analyzer struct {
	client *http.Client
	logger logger.Logger
}

func NewAnalyzer(log logger.Logger) *Analyzer {
	return &Analyzer{
		client: &http.Client{Timeout: fetchTimeout},
		logger: log,
	}
}

type candidate struct {
	url     string
	traffic float64
	isBlog  bool
}

func (c candidate) score() float64 {
	score := c.traffic
	if c.isBlog {
		score += blogBoost
	}
	return score
}

// SelectCandidates returns up to two inner-page URLs worth analyzing,
// preferring article-style pages and then estimated traffic. Homepage-depth
// URLs are skipped; if everything was filtered out the first crawled pages
// are used as a last resort.
func SelectCandidates(pages []models.PageRecord, keywords []models.Keyword) []string {
	traffic := trafficByURL(keywords)

	var candidates []candidate
	for _, p := range pages {
		if p.URL == "" || isHomepage(p.URL) {
			continue
		}
		candidates = append(candidates, candidate{
			url:     p.URL,
			traffic: traffic[p.URL],
			isBlog:  isBlogURL(p.URL),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score() > candidates[j].score()
	})

	urls := make([]string, 0, candidateLimit)
	for _, c := range candidates {
		if len(urls) == candidateLimit {
			break
		}
		urls = append(urls, c.url)
	}
	if len(urls) == 0 {
		for _, p := range pages {
			if len(urls) == candidateLimit {
				break
			}
			if p.URL != "" {
				urls = append(urls, p.URL)
			}
		}
	}
	return urls
}

// Analyze fetches and scores each candidate URL. Pages that fail to fetch
// or hold too little text are skipped rather than failing the batch.
func (a *Analyzer) Analyze(ctx context.Context, urls []string) []models.ReadabilityResult {
	results := make([]models.ReadabilityResult, 0, len(urls))
	for _, u := range urls {
		result, err := a.analyzeURL(ctx, u)
		if err != nil {
			a.logger.Warn("readability analysis skipped",
				logger.String("url", u),
				logger.Error(err),
			)
			continue
		}
		results = append(results, result)
	}
	return results
}

func (a *Analyzer) analyzeURL(ctx context.Context, u string) (models.ReadabilityResult, error) {
	text, err := a.fetchText(ctx, u)
	if err != nil {
		return models.ReadabilityResult{}, err
	}

	stats, err := Analyze(text)
	if err != nil {
		return models.ReadabilityResult{}, err
	}

	grade := stats.FleschKincaidGrade()
	return models.ReadabilityResult{
		URL:                 u,
		FleschKincaidGrade:  grade,
		FleschReadingEase:   stats.FleschReadingEase(),
		GunningFog:          stats.GunningFog(),
		SmogIndex:           stats.SmogIndex(),
		AvgSentenceLength:   stats.AvgSentenceLength(),
		AvgSyllablesPerWord: stats.AvgSyllablesPerWord(),
		DifficultWordsPct:   stats.DifficultWordsPct(),
		ReadingTimeMins:     stats.ReadingTimeMins(),
		WordCount:           stats.Words,
		Rating:              Rating(grade),
	}, nil
}

// fetchText downloads a page and extracts its visible prose.
func (a *Analyzer) fetchText(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; seo-audit/1.0)")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	a.logger.Debug("fetched page for readability",
		logger.String("url", u),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, u)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	return strings.Join(strings.Fields(doc.Find("body").Text()), " "), nil
}

func trafficByURL(keywords []models.Keyword) map[string]float64 {
	traffic := make(map[string]float64, len(keywords))
	for _, kw := range keywords {
		if kw.RankedURL != "" {
			traffic[kw.RankedURL] += kw.Traffic
		}
	}
	return traffic
}

func isHomepage(u string) bool {
	return strings.Count(strings.TrimRight(u, "/"), "/") < 3
}

func isBlogURL(u string) bool {
	lower := strings.ToLower(u)
	for _, marker := range blogMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
