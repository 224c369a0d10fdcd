// backend-go/internal/ingest/service_test.go
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

const salesHeader = "invoice_date,sku_code,model_name,variant,colour,quantity_sold,unit_price,total_value\n"

func salesRows(n int) []byte {
	out := salesHeader
	for i := 0; i < n; i++ {
		out += fmt.Sprintf("2024-10-%02d,HER-SPL-STD-BLK,Splendor Plus,Standard,Black,2,72000,144000\n", i+1)
	}
	return []byte(out)
}

// fakeSource serves canned files keyed by id. failID makes one download
// fail to exercise the error path.
type fakeSource struct {
	files   []RemoteFile
	content map[string][]byte
	failID  string
}

func (f *fakeSource) ListFolder(_ context.Context, _ string) ([]RemoteFile, error) {
	return f.files, nil
}

func (f *fakeSource) ResolveFolderPath(_ context.Context, path string) (string, error) {
	return "resolved-" + path, nil
}

func (f *fakeSource) Stat(_ context.Context, fileID string) (RemoteFile, error) {
	for _, rf := range f.files {
		if rf.ID == fileID {
			return rf, nil
		}
	}
	return RemoteFile{}, fmt.Errorf("not found: %s", fileID)
}

func (f *fakeSource) Download(_ context.Context, fileID string, w io.Writer) error {
	if fileID == f.failID {
		return errors.New("connection reset")
	}
	data, ok := f.content[fileID]
	if !ok {
		return fmt.Errorf("not found: %s", fileID)
	}
	_, err := w.Write(data)
	return err
}

// appendOnlyRepo records appended batches; the pool appends concurrently.
type appendOnlyRepo struct {
	mu      sync.Mutex
	records []domain.SaleRecord
	batches int
}

func (r *appendOnlyRepo) ReplaceAll(_ context.Context, records []domain.SaleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
	return nil
}

func (r *appendOnlyRepo) AppendBatch(_ context.Context, records []domain.SaleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	r.batches++
	return nil
}

func (r *appendOnlyRepo) ListAll(_ context.Context) ([]domain.SaleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records, nil
}

func (r *appendOnlyRepo) Clear(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.records))
	r.records = nil
	return n, nil
}

func (r *appendOnlyRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

func (r *appendOnlyRepo) CountBySource(_ context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int{}
	for _, rec := range r.records {
		counts[rec.SourceType]++
	}
	return counts, nil
}

func (r *appendOnlyRepo) LastUploadedAt(_ context.Context) (*time.Time, error) {
	return nil, nil
}

func TestIngestFileTagsDriveSource(t *testing.T) {
	source := &fakeSource{
		files:   []RemoteFile{{ID: "f1", Name: "october.csv"}},
		content: map[string][]byte{"f1": salesRows(3)},
	}
	repo := &appendOnlyRepo{}
	svc := NewService(source, repo, nil, 2)

	now := time.Date(2025, time.June, 16, 10, 0, 0, 0, time.UTC)
	n, err := svc.IngestFile(context.Background(), RemoteFile{ID: "f1", Name: "october.csv"}, now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, repo.records, 3)
	for _, rec := range repo.records {
		assert.Equal(t, domain.SourceDrive, rec.SourceType)
	}
}

func TestIngestFileRejectsBadFileWithoutStoring(t *testing.T) {
	bad := []byte(salesHeader + "31-10-2024,HER-SPL-STD-BLK,Splendor Plus,Standard,Black,2,72000,144000\n")
	source := &fakeSource{content: map[string][]byte{"f1": bad}}
	repo := &appendOnlyRepo{}
	svc := NewService(source, repo, nil, 2)

	_, err := svc.IngestFile(context.Background(), RemoteFile{ID: "f1", Name: "bad.csv"}, time.Now().UTC())
	require.Error(t, err)
	assert.Empty(t, repo.records)
}

func TestIngestFolderPoolsMatchingFiles(t *testing.T) {
	source := &fakeSource{
		files: []RemoteFile{
			{ID: "a", Name: "april.csv"},
			{ID: "b", Name: "may.csv"},
			{ID: "c", Name: "june.csv"},
			{ID: "d", Name: "notes.txt"},
		},
		content: map[string][]byte{
			"a": salesRows(2),
			"b": salesRows(3),
			"c": salesRows(4),
		},
	}
	repo := &appendOnlyRepo{}
	svc := NewService(source, repo, nil, 3)

	results, err := svc.IngestFolder(context.Background(), "folder-1", time.Now().UTC())
	require.NoError(t, err)

	require.Len(t, results, 3, "the txt file must be skipped")
	assert.Equal(t, "april.csv", results[0].Name)
	assert.Equal(t, "june.csv", results[1].Name)
	assert.Equal(t, "may.csv", results[2].Name)

	total := 0
	for _, res := range results {
		total += res.Records
	}
	assert.Equal(t, 9, total)
	assert.Len(t, repo.records, 9)
	assert.Equal(t, 3, repo.batches, "each file appends in its own batch")
}

func TestIngestFolderFailsRunWhenAnyFileFails(t *testing.T) {
	source := &fakeSource{
		files: []RemoteFile{
			{ID: "a", Name: "april.csv"},
			{ID: "b", Name: "may.csv"},
		},
		content: map[string][]byte{"a": salesRows(2)},
		failID:  "b",
	}
	repo := &appendOnlyRepo{}
	svc := NewService(source, repo, nil, 1)

	_, err := svc.IngestFolder(context.Background(), "folder-1", time.Now().UTC())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder ingest failed")
	assert.Len(t, repo.records, 2, "files that landed before the failure stay")
}

func TestIngestFolderEmptyFolder(t *testing.T) {
	svc := NewService(&fakeSource{}, &appendOnlyRepo{}, nil, 2)

	results, err := svc.IngestFolder(context.Background(), "folder-1", time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}
