// backend-go/internal/repository/postgres/stock_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

const stockColumns = `sku_code, model_name, variant, colour, current_stock,
	location, region, uploaded_at`

type stockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) *stockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) ReplaceAll(ctx context.Context, items []domain.StockItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stock_inventory`); err != nil {
			return fmt.Errorf("failed to clear stock inventory: %w", err)
		}
		return insertStock(ctx, tx, items)
	})
}

func (r *stockRepository) AppendBatch(ctx context.Context, items []domain.StockItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertStock(ctx, tx, items)
	})
}

func insertStock(ctx context.Context, tx *sql.Tx, items []domain.StockItem) error {
	for start := 0; start < len(items); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(items) {
			end = len(items)
		}
		if err := insertStockBatch(ctx, tx, items[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertStockBatch(ctx context.Context, tx *sql.Tx, items []domain.StockItem) error {
	if len(items) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO stock_inventory (` + stockColumns + `) VALUES `)

	args := make([]interface{}, 0, len(items)*8)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args,
			item.SKUCode, item.ModelName, item.Variant, item.Colour,
			item.CurrentStock, item.Location, item.Region, item.UploadedAt)
	}

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert stock inventory: %w", err)
	}
	return nil
}

func (r *stockRepository) List(ctx context.Context) ([]domain.StockItem, error) {
	query := `
		SELECT id, ` + stockColumns + `
		FROM stock_inventory
		ORDER BY model_name, sku_code
	`

	var items []domain.StockItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list stock inventory: %w", err)
	}
	return items, nil
}

func (r *stockRepository) Summary(ctx context.Context) (domain.StockSummary, error) {
	query := `
		SELECT COUNT(*) AS total_skus, COALESCE(SUM(current_stock), 0) AS total_units
		FROM stock_inventory
	`

	var row struct {
		TotalSKUs  int `db:"total_skus"`
		TotalUnits int `db:"total_units"`
	}
	if err := sqlx.GetContext(ctx, r.db, &row, query); err != nil {
		return domain.StockSummary{}, fmt.Errorf("failed to summarise stock inventory: %w", err)
	}

	return domain.StockSummary{
		TotalSKUs:    row.TotalSKUs,
		TotalUnits:   row.TotalUnits,
		HasStockData: row.TotalSKUs > 0,
	}, nil
}

func (r *stockRepository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stock_inventory`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear stock inventory: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted stock rows: %w", err)
	}
	return deleted, nil
}
