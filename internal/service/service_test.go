// backend-go/internal/service/service_test.go
package service

import (
	"context"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/storage"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(code string, day time.Time, qty int, price float64) domain.SaleRecord {
	return domain.SaleRecord{
		InvoiceDate:  day,
		SKUCode:      code,
		ModelName:    "Model " + code,
		Variant:      "Standard",
		Colour:       "Black",
		QuantitySold: qty,
		UnitPrice:    price,
		TotalValue:   float64(qty) * price,
		SourceType:   domain.SourceSample,
	}
}

// fakeSalesRepo keeps the dataset in memory and records which mutations ran.
type fakeSalesRepo struct {
	records      []domain.SaleRecord
	replaceCalls int
	appendCalls  int
	lastUpload   *time.Time
	err          error
}

func (f *fakeSalesRepo) ReplaceAll(_ context.Context, records []domain.SaleRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = records
	f.replaceCalls++
	return nil
}

func (f *fakeSalesRepo) AppendBatch(_ context.Context, records []domain.SaleRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, records...)
	f.appendCalls++
	return nil
}

func (f *fakeSalesRepo) ListAll(_ context.Context) ([]domain.SaleRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSalesRepo) Clear(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := int64(len(f.records))
	f.records = nil
	return n, nil
}

func (f *fakeSalesRepo) Count(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.records), nil
}

func (f *fakeSalesRepo) CountBySource(_ context.Context) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := map[string]int{}
	for _, r := range f.records {
		counts[r.SourceType]++
	}
	return counts, nil
}

func (f *fakeSalesRepo) LastUploadedAt(_ context.Context) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lastUpload, nil
}

type fakeStockRepo struct {
	items        []domain.StockItem
	replaceCalls int
	appendCalls  int
	err          error
}

func (f *fakeStockRepo) ReplaceAll(_ context.Context, items []domain.StockItem) error {
	if f.err != nil {
		return f.err
	}
	f.items = items
	f.replaceCalls++
	return nil
}

func (f *fakeStockRepo) AppendBatch(_ context.Context, items []domain.StockItem) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, items...)
	f.appendCalls++
	return nil
}

func (f *fakeStockRepo) List(_ context.Context) ([]domain.StockItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeStockRepo) Summary(_ context.Context) (domain.StockSummary, error) {
	if f.err != nil {
		return domain.StockSummary{}, f.err
	}
	units := 0
	for _, it := range f.items {
		units += it.CurrentStock
	}
	return domain.StockSummary{
		TotalSKUs:    len(f.items),
		TotalUnits:   units,
		HasStockData: len(f.items) > 0,
	}, nil
}

func (f *fakeStockRepo) Clear(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := int64(len(f.items))
	f.items = nil
	return n, nil
}

// fakeArchive records uploaded objects by key.
type fakeArchive struct {
	uploads map[string][]byte
	err     error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{uploads: map[string][]byte{}}
}

func (f *fakeArchive) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	out := []storage.ObjectInfo{}
	for key, data := range f.uploads {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (f *fakeArchive) DownloadObject(_ context.Context, _ string, _ string) error {
	return nil
}

func (f *fakeArchive) UploadObject(_ context.Context, key string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.uploads[key] = data
	return nil
}

// spyCache counts dashboard cache traffic on top of an in-memory store.
type spyCache struct {
	store       map[string]*domain.DashboardSummary
	gets        int
	sets        int
	invalidated int
}

func newSpyCache() *spyCache {
	return &spyCache{store: map[string]*domain.DashboardSummary{}}
}

func (c *spyCache) GetSummary(_ context.Context, day time.Time) (*domain.DashboardSummary, bool, error) {
	c.gets++
	summary, ok := c.store[day.Format("2006-01-02")]
	return summary, ok, nil
}

func (c *spyCache) SetSummary(_ context.Context, day time.Time, summary *domain.DashboardSummary) error {
	c.sets++
	c.store[day.Format("2006-01-02")] = summary
	return nil
}

func (c *spyCache) InvalidateAll(_ context.Context) error {
	c.invalidated++
	c.store = map[string]*domain.DashboardSummary{}
	return nil
}
