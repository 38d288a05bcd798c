package product

import (
	"context"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/observability"
)

const DefaultBatchSize = 1000

type productBulkUpserter interface {
	BulkUpsert(ctx context.Context, jobID string, rows []domain.ImportRow) (domain.UpsertResult, error)
}

// DedupeBatch collapses rows whose SKUs match case-insensitively, keeping the
// last occurrence in the position of the first. Rows without a SKU are dropped.
func DedupeBatch(rows []domain.ImportRow) []domain.ImportRow {
	positions := make(map[string]int, len(rows))
	unique := make([]domain.ImportRow, 0, len(rows))

	for _, row := range rows {
		if !row.HasSKU() {
			continue
		}

		key := row.DedupeKey()
		if i, seen := positions[key]; seen {
			unique[i] = row
			continue
		}

		positions[key] = len(unique)
		unique = append(unique, row)
	}

	return unique
}

type UpsertBatcher struct {
	store   productBulkUpserter
	metrics *observability.Metrics
}

func NewUpsertBatcher(store productBulkUpserter, metrics *observability.Metrics) *UpsertBatcher {
	return &UpsertBatcher{store: store, metrics: metrics}
}

// Flush writes one batch as a single atomic upsert. An empty batch after
// deduplication never reaches the store.
func (b *UpsertBatcher) Flush(ctx context.Context, jobID string, rows []domain.ImportRow) (domain.UpsertResult, error) {
	unique := DedupeBatch(rows)
	if len(unique) == 0 {
		return domain.UpsertResult{}, nil
	}

	start := time.Now()
	result, err := b.store.BulkUpsert(ctx, jobID, unique)
	b.metrics.ObserveBatch(time.Since(start))
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	b.metrics.AddRows(result.InsertedCount, result.UpdatedCount)
	return result, nil
}
