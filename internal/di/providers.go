package di

import (
	drepo "github.com/kola-ootro/oura-ring-data-collector/internal/domain/repository"
	"github.com/kola-ootro/oura-ring-data-collector/internal/handler/api"
	internalrepo "github.com/kola-ootro/oura-ring-data-collector/internal/repository"
	"github.com/kola-ootro/oura-ring-data-collector/internal/service/oura"
	"github.com/kola-ootro/oura-ring-data-collector/internal/usecase"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/config"
	xhttp "github.com/kola-ootro/oura-ring-data-collector/pkg/http"
	applogger "github.com/kola-ootro/oura-ring-data-collector/pkg/logger"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/metrics"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideArchive creates the file-backed store.
func ProvideArchive(cfg *config.Config) (drepo.Archive, error) {
	return internalrepo.NewFileArchive(cfg.Storage.DataDir)
}

// ProvideSource creates the Oura API client.
func ProvideSource(cfg *config.Config) drepo.Source {
	return oura.New(cfg.Oura.APIKey, cfg.Oura.BaseURL, cfg.Oura.Timeout)
}

// ProvideRefresher creates the refresh orchestrator.
func ProvideRefresher(source drepo.Source, archive drepo.Archive, m drepo.Metrics, logger *applogger.Logger, cfg *config.Config) *usecase.Refresher {
	return usecase.NewRefresher(source, archive, m, logger, cfg.Oura.LookbackDays)
}

// ProvideScheduler creates the periodic refresh trigger, or nil when the
// scheduler is disabled.
func ProvideScheduler(refresher *usecase.Refresher, cfg *config.Config, logger *applogger.Logger) *usecase.Scheduler {
	if !cfg.Scheduler.Enabled {
		return nil
	}
	return usecase.NewScheduler(refresher, cfg.Scheduler.Interval, logger)
}

// ProvideHandler creates the dashboard HTTP handler.
func ProvideHandler(logger *applogger.Logger, refresher *usecase.Refresher, archive drepo.Archive, cfg *config.Config) xhttp.Handler {
	return api.NewDashboardHandler(logger, refresher, archive, cfg.Oura.APIKey)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, scheduler *usecase.Scheduler) *server.App {
	return server.New(cfg, logger, handler, scheduler)
}
