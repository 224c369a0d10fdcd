// backend-go/internal/service/dataset_service.go
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/dealersight/wheeler-intel/backend-go/internal/cache"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dataset"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
	"github.com/dealersight/wheeler-intel/backend-go/internal/storage"
)

// DatasetService owns the sales dataset lifecycle: uploads replace it,
// status reports on it. Archive and cache are both optional collaborators;
// the import itself never fails because of them.
type DatasetService struct {
	sales   repository.SalesRepository
	cache   cache.DashboardCache
	archive storage.ObjectStorage
}

func NewDatasetService(sales repository.SalesRepository, cacheImpl cache.DashboardCache, archive storage.ObjectStorage) *DatasetService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DatasetService{sales: sales, cache: cacheImpl, archive: archive}
}

// ImportResult acknowledges an accepted sales upload.
type ImportResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Summary domain.UploadSummary `json:"summary"`
}

// ImportSales validates an uploaded sales file and replaces the dataset
// with its rows. Validation failures surface to the caller; archiving and
// cache invalidation are best effort.
func (s *DatasetService) ImportSales(ctx context.Context, filename string, content []byte, now time.Time) (*ImportResult, error) {
	records, err := dataset.ParseSalesFile(filename, content, now)
	if err != nil {
		return nil, err
	}

	if err := s.sales.ReplaceAll(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to store sales dataset: %w", err)
	}

	s.archiveUpload(ctx, filename, content, now)

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sales import: cache invalidation failed")
	}

	return &ImportResult{
		Success: true,
		Message: fmt.Sprintf("Successfully imported %s records.", humanize.Comma(int64(len(records)))),
		Summary: dataset.SalesSummary(records, now),
	}, nil
}

func (s *DatasetService) archiveUpload(ctx context.Context, filename string, content []byte, now time.Time) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("sales/%s/%s", now.Format("2006-01-02"), filepath.Base(filename))
	if err := s.archive.UploadObject(ctx, key, content); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sales import: archive upload failed")
	}
}

// Status reports what the dataset currently holds and where it came from.
func (s *DatasetService) Status(ctx context.Context) (*domain.DatasetStatus, error) {
	total, err := s.sales.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.sales.CountBySource(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.sales.LastUploadedAt(ctx)
	if err != nil {
		return nil, err
	}

	source := domain.SourceSample
	if counts[domain.SourceUploaded] > 0 {
		source = domain.SourceUploaded
	}

	return &domain.DatasetStatus{
		TotalRecords:    total,
		Source:          source,
		UploadedRecords: counts[domain.SourceUploaded],
		SampleRecords:   counts[domain.SourceSample],
		LastUpload:      last,
	}, nil
}
