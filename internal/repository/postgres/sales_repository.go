// backend-go/internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// insertBatchSize bounds the multi-row VALUES clause so a four-year
// dataset does not become one enormous statement.
const insertBatchSize = 500

const salesColumns = `invoice_date, sku_code, model_name, variant, colour,
	quantity_sold, unit_price, total_value, location, region,
	source_type, uploaded_at`

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

// ReplaceAll swaps the entire dataset in one transaction. A failure at any
// point leaves the previous dataset untouched.
func (r *salesRepository) ReplaceAll(ctx context.Context, records []domain.SaleRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales_records`); err != nil {
			return fmt.Errorf("failed to clear sales records: %w", err)
		}
		return insertSales(ctx, tx, records)
	})
}

func (r *salesRepository) AppendBatch(ctx context.Context, records []domain.SaleRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertSales(ctx, tx, records)
	})
}

func insertSales(ctx context.Context, tx *sql.Tx, records []domain.SaleRecord) error {
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertSalesBatch(ctx, tx, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertSalesBatch(ctx context.Context, tx *sql.Tx, records []domain.SaleRecord) error {
	if len(records) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO sales_records (` + salesColumns + `) VALUES `)

	args := make([]interface{}, 0, len(records)*12)
	for i, rec := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 12
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12)
		args = append(args,
			rec.InvoiceDate, rec.SKUCode, rec.ModelName, rec.Variant, rec.Colour,
			rec.QuantitySold, rec.UnitPrice, rec.TotalValue, rec.Location, rec.Region,
			rec.SourceType, rec.UploadedAt)
	}

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert sales records: %w", err)
	}
	return nil
}

func (r *salesRepository) ListAll(ctx context.Context) ([]domain.SaleRecord, error) {
	query := `
		SELECT id, ` + salesColumns + `
		FROM sales_records
		ORDER BY invoice_date, id
	`

	var records []domain.SaleRecord
	if err := sqlx.SelectContext(ctx, r.db, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list sales records: %w", err)
	}
	return records, nil
}

func (r *salesRepository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear sales records: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sales records: %w", err)
	}
	return deleted, nil
}

func (r *salesRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM sales_records`); err != nil {
		return 0, fmt.Errorf("failed to count sales records: %w", err)
	}
	return count, nil
}

func (r *salesRepository) CountBySource(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT source_type, COUNT(*) AS n
		FROM sales_records
		GROUP BY source_type
	`

	var rows []struct {
		SourceType string `db:"source_type"`
		N          int    `db:"n"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count sales records by source: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.SourceType] = row.N
	}
	return counts, nil
}

func (r *salesRepository) LastUploadedAt(ctx context.Context) (*time.Time, error) {
	var last sql.NullTime
	query := `SELECT MAX(uploaded_at) FROM sales_records WHERE uploaded_at IS NOT NULL`
	if err := sqlx.GetContext(ctx, r.db, &last, query); err != nil {
		return nil, fmt.Errorf("failed to find last upload time: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
