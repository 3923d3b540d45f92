package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/seo-audit/internal/events"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
	"github.com/jonesrussell/seo-audit/internal/pagespeed"
	"github.com/jonesrussell/seo-audit/internal/provider"
	"github.com/jonesrussell/seo-audit/internal/readability"
	"github.com/jonesrussell/seo-audit/internal/repository"
)

// Service orchestrates the audit lifecycle: starting crawls, merging
// results, and running the follow-up analyses.
type Service struct {
	repo        *repository.AuditRepository
	provider    *provider.Client
	pagespeed   *pagespeed.Client
	readability *readability.Analyzer
	publisher   *events.Publisher
	logger      logger.Logger
}

func NewService(
	repo *repository.AuditRepository,
	providerClient *provider.Client,
	pagespeedClient *pagespeed.Client,
	analyzer *readability.Analyzer,
	publisher *events.Publisher,
	log logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		provider:    providerClient,
		pagespeed:   pagespeedClient,
		readability: analyzer,
		publisher:   publisher,
		logger:      log,
	}
}

// NormalizeDomain strips scheme and trailing slashes from user input.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}

// CreateAudit starts a crawl for domain and gathers the data available
// immediately: keywords, domain totals and the backlink profile. The crawl
// itself completes later via the poller or an explicit results fetch.
func (s *Service) CreateAudit(ctx context.Context, domain string) (*models.AuditProject, error) {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}

	taskID, err := s.provider.StartCrawl(ctx, "https://"+domain)
	if err != nil {
		return nil, fmt.Errorf("starting crawl: %w", err)
	}
	s.logger.Info("crawl started",
		logger.String("domain", domain),
		logger.String("task_id", taskID),
	)

	data := &models.AuditData{}

	// Non-crawl data is available right away. Each fetch is best effort so
	// a single provider endpoint outage does not block the audit.
	if report, kwErr := s.provider.FetchRankedKeywords(ctx, domain); kwErr != nil {
		s.logger.Warn("ranked keywords fetch failed", logger.String("domain", domain), logger.Error(kwErr))
	} else {
		data.Keywords = report.Keywords
		data.TotalKeywords = report.TotalCount
		data.TotalTraffic = report.EstimatedTraffic
		data.KeywordsAtLimit = report.AtLimit
	}

	if metrics, dmErr := s.provider.FetchDomainMetrics(ctx, domain); dmErr != nil {
		s.logger.Warn("domain metrics fetch failed", logger.String("domain", domain), logger.Error(dmErr))
	} else {
		if data.TotalTraffic == 0 {
			data.TotalTraffic = metrics.TotalTraffic
		}
		if data.TotalKeywords == 0 {
			data.TotalKeywords = metrics.TotalKeywords
		}
		data.Top1 = metrics.Top1
		data.Top3 = metrics.Top3
		data.Top10 = metrics.Top10
	}

	if summary, blErr := s.provider.FetchBacklinksSummary(ctx, domain); blErr != nil {
		s.logger.Warn("backlinks summary fetch failed", logger.String("domain", domain), logger.Error(blErr))
	} else {
		data.Backlinks = summary
	}

	if domains, rdErr := s.provider.FetchReferringDomains(ctx, domain); rdErr != nil {
		s.logger.Warn("referring domains fetch failed", logger.String("domain", domain), logger.Error(rdErr))
	} else {
		data.ReferringDomains = domains
	}

	project := &models.AuditProject{
		Domain:    domain,
		Status:    models.StatusPending,
		TaskID:    taskID,
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}
	if err := s.repo.Upsert(ctx, project); err != nil {
		return nil, fmt.Errorf("storing audit project: %w", err)
	}

	s.publisher.PublishAsync(events.AuditEvent{
		EventType: events.EventAuditCreated,
		ProjectID: project.ID,
		Domain:    domain,
		TaskID:    taskID,
	})
	return project, nil
}

// Status returns the live crawl progress for a task.
func (s *Service) Status(ctx context.Context, taskID string) (*provider.CrawlSummary, error) {
	return s.provider.FetchSummary(ctx, taskID)
}

// FetchResults pulls the finished crawl into the project identified by
// taskID and marks it completed. suppliedCounts, when non-empty, overrides
// the recomputed issue counts.
func (s *Service) FetchResults(ctx context.Context, taskID string, suppliedCounts map[string]int) (*models.AuditProject, error) {
	project, err := s.repo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	summary, err := s.provider.FetchSummary(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("fetching crawl summary: %w", err)
	}
	pages, err := s.provider.FetchPages(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("fetching crawled pages: %w", err)
	}

	if project.Data == nil {
		project.Data = &models.AuditData{}
	}
	project.Data.Pages = pages
	project.Data.Summary = map[string]any{
		"crawl_progress": summary.CrawlProgress,
		"pages_crawled":  summary.PagesCrawled,
		"pages_in_queue": summary.PagesInQueue,
		"onpage_score":   summary.OnPageScore,
		"total_pages":    summary.TotalPages,
		"page_metrics":   summary.PageMetrics,
	}
	project.Data.IssueCounts = AggregateIssues(pages, suppliedCounts)
	s.fetchCrawlExtras(ctx, project)

	now := time.Now().UTC()
	project.Status = models.StatusCompleted
	project.CompletedAt = &now
	if err := s.repo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("storing audit results: %w", err)
	}

	s.logger.Info("audit completed",
		logger.String("project_id", project.ID),
		logger.String("domain", project.Domain),
		logger.Int("pages", len(pages)),
	)
	s.publisher.PublishAsync(events.AuditEvent{
		EventType: events.EventAuditCompleted,
		ProjectID: project.ID,
		Domain:    project.Domain,
		TaskID:    taskID,
	})
	return project, nil
}

// fetchCrawlExtras attaches the secondary crawl reports to the blob. Each
// fetch is best effort; the audit completes without them.
func (s *Service) fetchCrawlExtras(ctx context.Context, project *models.AuditProject) {
	dupTags := make(map[string][]map[string]any)
	for _, tagType := range []string{"duplicate_title", "duplicate_description"} {
		items, err := s.provider.FetchDuplicateTags(ctx, project.TaskID, tagType)
		if err != nil {
			s.logger.Warn("duplicate tags fetch failed",
				logger.String("task_id", project.TaskID),
				logger.String("type", tagType),
				logger.Error(err),
			)
			continue
		}
		if len(items) > 0 {
			dupTags[tagType] = items
		}
	}
	if len(dupTags) > 0 {
		project.Data.DuplicateTags = dupTags
	}

	if items, err := s.provider.FetchNonIndexable(ctx, project.TaskID); err != nil {
		s.logger.Warn("non-indexable fetch failed",
			logger.String("task_id", project.TaskID),
			logger.Error(err),
		)
	} else {
		project.Data.NonIndexable = items
	}

	if lh, err := s.provider.FetchLighthouse(ctx, "https://"+project.Domain, true); err != nil {
		s.logger.Warn("lighthouse fetch failed",
			logger.String("domain", project.Domain),
			logger.Error(err),
		)
	} else {
		project.Data.Lighthouse = lh.Scores
	}
}

// FinalizeTimedOut closes out a project whose crawl never finished inside
// the polling window. Whatever pages the provider has so far are kept and
// the result is flagged as partial.
func (s *Service) FinalizeTimedOut(ctx context.Context, project *models.AuditProject) error {
	if project.Data == nil {
		project.Data = &models.AuditData{}
	}

	if pages, err := s.provider.FetchPages(ctx, project.TaskID); err != nil {
		s.logger.Warn("partial page fetch failed",
			logger.String("project_id", project.ID),
			logger.Error(err),
		)
	} else {
		project.Data.Pages = pages
		project.Data.IssueCounts = AggregateIssues(pages, nil)
	}
	project.Data.CrawlTimedOut = true

	now := time.Now().UTC()
	project.Status = models.StatusCompleted
	project.CompletedAt = &now
	if err := s.repo.Save(ctx, project); err != nil {
		return fmt.Errorf("storing timed-out audit: %w", err)
	}

	s.publisher.PublishAsync(events.AuditEvent{
		EventType: events.EventAuditTimedOut,
		ProjectID: project.ID,
		Domain:    project.Domain,
		TaskID:    project.TaskID,
	})
	return nil
}

// RunPageSpeed analyzes the project's homepage under both strategies and
// stores the result on the audit blob.
func (s *Service) RunPageSpeed(ctx context.Context, projectID string) (*models.PageSpeedResult, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result, err := s.pagespeed.Fetch(ctx, "https://"+project.Domain)
	if err != nil {
		return nil, err
	}

	if project.Data == nil {
		project.Data = &models.AuditData{}
	}
	project.Data.PageSpeed = result
	if err := s.repo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("storing pagespeed result: %w", err)
	}
	return result, nil
}

// RunReadability scores up to two article pages for the project. Cached
// results are reused unless refresh is set.
func (s *Service) RunReadability(ctx context.Context, projectID string, refresh bool) ([]models.ReadabilityResult, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Data == nil {
		project.Data = &models.AuditData{}
	}
	if len(project.Data.Readability) > 0 && !refresh {
		return project.Data.Readability, nil
	}

	candidates := readability.SelectCandidates(project.Data.Pages, project.Data.Keywords)
	if len(candidates) == 0 {
		return nil, nil
	}

	results := s.readability.Analyze(ctx, candidates)
	project.Data.Readability = results
	if err := s.repo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("storing readability results: %w", err)
	}
	return results, nil
}

// Get returns one project with its full audit blob.
func (s *Service) Get(ctx context.Context, id string) (*models.AuditProject, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all projects without their blobs.
func (s *Service) List(ctx context.Context) ([]models.AuditProject, error) {
	return s.repo.List(ctx)
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id string) error {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.PublishAsync(events.AuditEvent{
		EventType: events.EventAuditDeleted,
		ProjectID: project.ID,
		Domain:    project.Domain,
	})
	return nil
}
