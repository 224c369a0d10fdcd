// backend-go/internal/repository/sales.go
package repository

import (
	"context"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// SalesRepository is the persistence boundary for the sales dataset.
// Uploads replace the whole dataset; the seeder appends.
type SalesRepository interface {
	ReplaceAll(ctx context.Context, records []domain.SaleRecord) error
	AppendBatch(ctx context.Context, records []domain.SaleRecord) error
	ListAll(ctx context.Context) ([]domain.SaleRecord, error)
	Clear(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
	CountBySource(ctx context.Context) (map[string]int, error)
	LastUploadedAt(ctx context.Context) (*time.Time, error)
}
