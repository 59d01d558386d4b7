package usecase

import "github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"

// Merge folds freshly fetched buckets into the accumulated store, one metric
// type at a time. A type seen for the first time is inserted verbatim,
// metadata included. An existing type gets the incoming records appended
// after its current ones; its metadata is left alone. Records are never
// deduplicated or reordered, so overlapping fetch windows produce
// duplicates on purpose.
func Merge(existing models.Store, incoming map[string]*models.Bucket) models.Store {
	for mt, bucket := range incoming {
		current, ok := existing[mt]
		if !ok {
			existing[mt] = bucket
			continue
		}
		current.Data = append(current.Data, bucket.Data...)
	}
	return existing
}
