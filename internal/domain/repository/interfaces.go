package repository

import (
	"context"

	"CropAdvisor/internal/domain/models"
)

// PriceSource fetches normalized price snapshots from the upstream provider.
// Implementations never return partial data: an error means the whole fetch failed.
type PriceSource interface {
	FetchAll(ctx context.Context) ([]models.PriceRecord, error)
	FetchByState(ctx context.Context, state string) ([]models.PriceRecord, error)
}

// SnapshotPublisher announces successful upstream fetches.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, ev *models.SnapshotEvent) error
	Close() error
}

type Metrics interface {
	RecordUpstreamRequest(op, result string, seconds float64)
	RecordRowsDropped(n int)
	RecordSnapshot(scope string, records int)
	RecordCache(result string)
	RecordError(kind string)
}
