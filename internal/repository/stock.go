// backend-go/internal/repository/stock.go
package repository

import (
	"context"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// StockRepository is the persistence boundary for uploaded stock inventory.
// Absence of rows is a normal state; planning falls back to estimates.
type StockRepository interface {
	ReplaceAll(ctx context.Context, items []domain.StockItem) error
	AppendBatch(ctx context.Context, items []domain.StockItem) error
	List(ctx context.Context) ([]domain.StockItem, error)
	Summary(ctx context.Context) (domain.StockSummary, error)
	Clear(ctx context.Context) (int64, error)
}
