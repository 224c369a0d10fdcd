// backend-go/internal/ingest/service.go
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dealersight/wheeler-intel/backend-go/internal/cache"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dataset"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

const DefaultWorkerCount = 4

// Service pulls dealer sales exports out of the remote folder, parses them
// and appends their records to the sales dataset.
type Service struct {
	source  Source
	sales   repository.SalesRepository
	cache   cache.DashboardCache
	workers int
}

func NewService(source Source, sales repository.SalesRepository, cacheImpl cache.DashboardCache, workers int) *Service {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if workers < 1 {
		workers = DefaultWorkerCount
	}
	return &Service{source: source, sales: sales, cache: cacheImpl, workers: workers}
}

// FileResult is the per-file outcome of a folder run.
type FileResult struct {
	FileID  string `json:"file_id"`
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// IngestFile downloads one file, parses it and appends its rows tagged as
// drive-sourced. The append runs in a single transaction, so a file either
// lands whole or not at all.
func (s *Service) IngestFile(ctx context.Context, file RemoteFile, now time.Time) (int, error) {
	var buf bytes.Buffer
	if err := s.source.Download(ctx, file.ID, &buf); err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", file.Name, err)
	}

	records, err := dataset.ParseSalesFile(file.Name, buf.Bytes(), now)
	if err != nil {
		return 0, err
	}
	for i := range records {
		records[i].SourceType = domain.SourceDrive
	}

	if err := s.sales.AppendBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store records from %s: %w", file.Name, err)
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("drive ingest: cache invalidation failed")
	}

	return len(records), nil
}

// IngestFolder runs every CSV and XLSX file in the folder through a worker
// pool. A failed file fails the run, but files that already landed stay:
// the transactional boundary is per file, not per folder.
func (s *Service) IngestFolder(ctx context.Context, folderID string, now time.Time) ([]FileResult, error) {
	files, err := s.source.ListFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	jobs := make([]RemoteFile, 0, len(files))
	for _, f := range files {
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".csv", ".xlsx":
			jobs = append(jobs, f)
		}
	}
	if len(jobs) == 0 {
		return []FileResult{}, nil
	}

	workerCount := s.workers
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}

	jobChan := make(chan RemoteFile, len(jobs))
	errChan := make(chan error, workerCount)
	var (
		mu      sync.Mutex
		results []FileResult
		wg      sync.WaitGroup
	)

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobChan {
				start := time.Now()
				n, err := s.IngestFile(ctx, job, now)
				if err != nil {
					log.Error().Err(err).
						Int("worker", workerID).
						Str("file", job.Name).
						Msg("drive ingest: file failed")
					select {
					case errChan <- err:
					default:
					}
					continue
				}
				log.Info().
					Int("worker", workerID).
					Str("file", job.Name).
					Int("records", n).
					Dur("took", time.Since(start)).
					Msg("drive ingest: file done")
				mu.Lock()
				results = append(results, FileResult{FileID: job.ID, Name: job.Name, Records: n})
				mu.Unlock()
			}
		}(i)
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			close(jobChan)
			return nil, ctx.Err()
		case jobChan <- job:
		}
	}
	close(jobChan)

	wg.Wait()
	close(errChan)

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	if err := <-errChan; err != nil {
		return results, fmt.Errorf("folder ingest failed: %w", err)
	}
	return results, nil
}
