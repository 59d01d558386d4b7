package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
	drepo "github.com/kola-ootro/oura-ring-data-collector/internal/domain/repository"
	applogger "github.com/kola-ootro/oura-ring-data-collector/pkg/logger"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/util"
)

// Refresher drives one fetch-merge-persist cycle across all tracked metric
// types. A failed fetch for one type never aborts the cycle; only load or
// persist failures propagate. The mutex keeps overlapping manual and
// scheduled refreshes from racing on the store file.
type Refresher struct {
	source       drepo.Source
	archive      drepo.Archive
	metrics      drepo.Metrics
	logger       *applogger.Logger
	lookbackDays int

	mu  sync.Mutex
	now func() time.Time
}

// NewRefresher creates a Refresher with the given collaborators.
func NewRefresher(source drepo.Source, archive drepo.Archive, metrics drepo.Metrics, logger *applogger.Logger, lookbackDays int) *Refresher {
	return &Refresher{
		source:       source,
		archive:      archive,
		metrics:      metrics,
		logger:       logger,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

// Refresh fetches every metric type for the configured lookback window,
// merges what succeeded into the store, persists it, and stamps the
// freshness marker.
func (r *Refresher) Refresh(ctx context.Context) error {
	return r.RefreshWindow(ctx, 0)
}

// RefreshWindow is Refresh with an explicit lookback override. Zero or
// negative days means the configured lookback.
func (r *Refresher) RefreshWindow(ctx context.Context, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if days <= 0 {
		days = r.lookbackDays
	}

	began := r.now()
	start, end := util.DateWindow(began, days)

	incoming := make(map[string]*models.Bucket)
	for _, mt := range models.AllMetricTypes() {
		bucket, err := r.source.Fetch(ctx, mt, start, end)
		if err != nil {
			r.metrics.RecordFetchError(string(mt))
			r.logger.Warn("fetch failed",
				applogger.String("metric_type", string(mt)),
				applogger.Error(err),
			)
			continue
		}
		if bucket == nil || bucket.Len() == 0 {
			r.logger.Debug("empty payload, skipping",
				applogger.String("metric_type", string(mt)),
			)
			continue
		}
		incoming[string(mt)] = bucket
		r.metrics.RecordRecordsFetched(string(mt), bucket.Len())
	}

	store, err := r.archive.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	store = Merge(store, incoming)

	if err := r.archive.Save(store); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	if err := r.archive.SetLastUpdated(r.now()); err != nil {
		return fmt.Errorf("stamp last-updated: %w", err)
	}

	r.metrics.RecordRefresh()
	r.metrics.RecordRefreshDuration(time.Since(began).Seconds())
	r.logger.Info("refresh complete",
		applogger.Int("types_fetched", len(incoming)),
		applogger.String("start", util.FormatDate(start)),
		applogger.String("end", util.FormatDate(end)),
	)
	return nil
}
