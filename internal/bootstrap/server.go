package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/jonesrussell/seo-audit/internal/api"
	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/database"
	"github.com/jonesrussell/seo-audit/internal/deck"
	"github.com/jonesrussell/seo-audit/internal/events"
	"github.com/jonesrussell/seo-audit/internal/handlers"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/pagespeed"
	"github.com/jonesrussell/seo-audit/internal/poller"
	"github.com/jonesrussell/seo-audit/internal/provider"
	"github.com/jonesrussell/seo-audit/internal/readability"
	"github.com/jonesrussell/seo-audit/internal/repository"
)

// Services holds the wired application components the server exposes.
type Services struct {
	Audit   *audit.Service
	Slides  *handlers.SlidesHandler
	Audits  *handlers.AuditHandler
	Watcher *poller.Watcher
}

// SetupServices wires the repository, provider clients and the audit
// service with its background watcher.
func SetupServices(cfg *config.Config, db *database.DB, publisher *events.Publisher, log logger.Logger) (*Services, error) {
	repo := repository.NewAuditRepository(db.DB(), log)

	providerClient, err := provider.NewClient(cfg.Provider, log)
	if err != nil {
		return nil, fmt.Errorf("provider client: %w", err)
	}
	pagespeedClient := pagespeed.NewClient(cfg.PageSpeed, log)
	analyzer := readability.NewAnalyzer(log)

	service := audit.NewService(repo, providerClient, pagespeedClient, analyzer, publisher, log)

	assembler := deck.NewAssembler(nil, nil, log)
	deckClient := deck.NewClient(cfg.Slides, assembler, log)
	images := deck.NewImageStore(cfg.Slides, log)

	svcs := &Services{
		Audit:  service,
		Audits: handlers.NewAuditHandler(service, log),
		Slides: handlers.NewSlidesHandler(service, deckClient, images, publisher, log),
	}
	if cfg.Poller.Enabled {
		svcs.Watcher = poller.NewWatcher(service, repo, cfg.Poller, log)
	}
	return svcs, nil
}

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(cfg *config.Config, svcs *Services, log logger.Logger) *http.Server {
	router := api.NewRouter(svcs.Audits, svcs.Slides, cfg.Server.CORSOrigins, log)
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
