// backend-go/internal/service/stock_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/dataset"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

// StockTemplateFilename is the download name for the inventory template.
const StockTemplateFilename = "stock_inventory_template.csv"

// StockService manages the dealer's uploaded stock inventory.
type StockService struct {
	stock repository.StockRepository
}

func NewStockService(stock repository.StockRepository) *StockService {
	return &StockService{stock: stock}
}

// Upload parses an inventory file and stores its rows. With replaceExisting
// the previous inventory is dropped first; otherwise rows are appended.
func (s *StockService) Upload(ctx context.Context, filename string, content []byte, replaceExisting bool, now time.Time) (*domain.StockUploadResult, error) {
	parsed, err := dataset.ParseStockFile(filename, content, now)
	if err != nil {
		return nil, err
	}

	if replaceExisting {
		err = s.stock.ReplaceAll(ctx, parsed.Items)
	} else {
		err = s.stock.AppendBatch(ctx, parsed.Items)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store stock inventory: %w", err)
	}

	return &domain.StockUploadResult{
		Status:           "success",
		Filename:         filename,
		RowsInserted:     len(parsed.Items),
		RowsSkipped:      parsed.Skipped,
		ReplacedExisting: replaceExisting,
		Errors:           parsed.Errors,
	}, nil
}

// Inventory returns all stored stock rows, never nil.
func (s *StockService) Inventory(ctx context.Context) ([]domain.StockItem, error) {
	items, err := s.stock.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.StockItem{}
	}
	return items, nil
}

func (s *StockService) Summary(ctx context.Context) (*domain.StockSummary, error) {
	summary, err := s.stock.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Clear drops the uploaded inventory and reports how many rows went away.
// Planning falls back to sales-velocity estimates afterwards.
func (s *StockService) Clear(ctx context.Context) (int64, error) {
	return s.stock.Clear(ctx)
}

// Template is a ready-to-fill CSV showing the accepted columns with two
// example rows.
func (s *StockService) Template() []byte {
	return []byte("sku_code,model_name,variant,colour,current_stock,location,region\n" +
		"HER-SPL-STD-BLK,Splendor Plus,Standard,Black,45,Delhi,North India\n" +
		"HER-HFD-STD-RED,HF Deluxe,Standard,Red,30,Mumbai,West India\n")
}
