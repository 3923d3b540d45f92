// Package poller provides the background watcher that completes pending
// audits once their crawl finishes.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
	"github.com/jonesrussell/seo-audit/internal/repository"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollTimeout  = 30 * time.Minute
)

// Watcher polls pending audit projects and finalizes each one when its
// crawl finishes or its polling window runs out. A crawl exceeding the
// window is closed out with partial data rather than treated as an error.
type Watcher struct {
	service *audit.Service
	repo    *repository.AuditRepository
	logger  logger.Logger

	interval time.Duration
	timeout  time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  bool
	mu       sync.Mutex
}

func NewWatcher(service *audit.Service, repo *repository.AuditRepository, cfg config.PollerConfig, log logger.Logger) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	return &Watcher{
		service:  service,
		repo:     repo,
		logger:   log,
		interval: interval,
		timeout:  timeout,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("audit watcher started",
		logger.Duration("poll_interval", w.interval),
		logger.Duration("crawl_timeout", w.timeout))
}

// Stop gracefully stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("audit watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Check immediately on start
	w.checkOnce(ctx)

	for {
		select {
		case <-ticker.C:
			w.checkOnce(ctx)
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) checkOnce(ctx context.Context) {
	pending, err := w.repo.ListPending(ctx)
	if err != nil {
		w.logger.Error("failed to list pending audits", logger.Error(err))
		return
	}
	for i := range pending {
		w.checkProject(ctx, &pending[i])
	}
}

func (w *Watcher) checkProject(ctx context.Context, project *models.AuditProject) {
	if time.Since(project.CreatedAt) > w.timeout {
		w.logger.Warn("crawl exceeded polling window, finalizing with partial data",
			logger.String("project_id", project.ID),
			logger.String("domain", project.Domain),
			logger.Duration("age", time.Since(project.CreatedAt)))
		if err := w.service.FinalizeTimedOut(ctx, project); err != nil {
			w.logger.Error("failed to finalize timed-out audit",
				logger.String("project_id", project.ID),
				logger.Error(err))
		}
		return
	}

	summary, err := w.service.Status(ctx, project.TaskID)
	if err != nil {
		// Transient provider errors are expected while a task spins up.
		w.logger.Debug("crawl status check failed",
			logger.String("project_id", project.ID),
			logger.String("task_id", project.TaskID),
			logger.Error(err))
		return
	}
	if !summary.Finished() {
		w.logger.Debug("crawl in progress",
			logger.String("project_id", project.ID),
			logger.String("progress", summary.CrawlProgress),
			logger.Int("pages_crawled", summary.PagesCrawled),
			logger.Int("pages_in_queue", summary.PagesInQueue))
		return
	}

	if _, err := w.service.FetchResults(ctx, project.TaskID, nil); err != nil {
		w.logger.Error("failed to store finished crawl",
			logger.String("project_id", project.ID),
			logger.String("task_id", project.TaskID),
			logger.Error(err))
	}
}
