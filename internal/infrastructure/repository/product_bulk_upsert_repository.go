package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

type ProductBulkUpsertRepository struct {
	pool *pgxpool.Pool
}

func NewProductBulkUpsertRepository(pool *pgxpool.Pool) *ProductBulkUpsertRepository {
	return &ProductBulkUpsertRepository{pool: pool}
}

// BulkUpsert stages the batch with COPY and merges it into products in one
// transaction, so a batch is either fully written or not at all.
func (r *ProductBulkUpsertRepository) BulkUpsert(ctx context.Context, jobID string, rows []domain.ImportRow) (domain.UpsertResult, error) {
	if len(rows) == 0 {
		return domain.UpsertResult{}, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	staged := make([][]any, 0, len(rows))
	for i, row := range rows {
		staged = append(staged, []any{jobID, int64(i), row.SKU, row.Name, row.Description, row.IsActive})
	}

	if _, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"stg_products"},
		[]string{"job_id", "row_index", "sku", "name", "description", "is_active"},
		pgx.CopyFromRows(staged),
	); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("copy products staging: %w", err)
	}

	inserted, updated, err := upsertProducts(ctx, tx, jobID)
	if err != nil {
		return domain.UpsertResult{}, err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM stg_products WHERE job_id = $1", jobID); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("cleanup stg_products: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("commit product batch: %w", err)
	}

	return domain.UpsertResult{
		InsertedCount: inserted,
		UpdatedCount:  updated,
	}, nil
}

func upsertProducts(ctx context.Context, tx pgx.Tx, jobID string) (int64, int64, error) {
	rows, err := tx.Query(ctx, `
WITH staged AS (
    SELECT DISTINCT ON (sku)
      sku,
      name,
      description,
      is_active
    FROM stg_products
    WHERE job_id = $1
    ORDER BY sku, row_index DESC
), upserted AS (
    INSERT INTO products (sku, name, description, is_active, created_at)
    SELECT sku, name, description, is_active, NOW()
    FROM staged
    ON CONFLICT (sku) DO UPDATE
      SET name = EXCLUDED.name,
          description = EXCLUDED.description,
          is_active = EXCLUDED.is_active,
          updated_at = NOW()
    RETURNING (xmax = 0) AS inserted
)
SELECT inserted FROM upserted
`, jobID)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert products: %w", err)
	}
	defer rows.Close()

	return countInsertedUpdated(rows)
}

func countInsertedUpdated(rows pgx.Rows) (int64, int64, error) {
	var inserted int64
	var updated int64

	for rows.Next() {
		var isInsert bool
		if err := rows.Scan(&isInsert); err != nil {
			return 0, 0, err
		}
		if isInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("upsert products: %w", err)
	}

	return inserted, updated, nil
}
