package repository

import (
	"context"
	"time"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
)

// Source fetches one metric type's records for an inclusive calendar-date
// range from the upstream API.
type Source interface {
	Fetch(ctx context.Context, mt models.MetricType, start, end time.Time) (*models.Bucket, error)
}

// Archive persists the accumulated metric store and its freshness marker.
type Archive interface {
	Load() (models.Store, error)
	Save(store models.Store) error
	LastUpdated() string
	SetLastUpdated(t time.Time) error
}

// Refresher drives one fetch-merge-persist cycle over all metric types.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Metrics interface {
	RecordRefresh()
	RecordFetchError(metricType string)
	RecordRecordsFetched(metricType string, n int)
	RecordRefreshDuration(seconds float64)
}
