package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dealersight/wheeler-intel/backend-go/internal/config"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dataset"
	"github.com/dealersight/wheeler-intel/backend-go/internal/storage"
)

// runImport pulls archived sales exports out of object storage and appends
// them to the dataset. Each file loads in its own transaction; a bad file is
// reported and skipped, not fatal for the batch.
func runImport(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	client, err := storage.NewMinioClient(config.StorageConfig{
		Endpoint:  c.String("storage-endpoint"),
		AccessKey: c.String("storage-access-key"),
		SecretKey: c.String("storage-secret-key"),
		Bucket:    c.String("storage-bucket"),
		UseSSL:    c.Bool("storage-use-ssl"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	ctx := c.Context
	prefix := c.String("prefix")
	downloadDir := c.String("download-dir")

	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return fmt.Errorf("failed to ensure download dir %s: %w", downloadDir, err)
	}

	objects, err := client.ListObjects(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to list objects for prefix %s: %w", prefix, err)
	}

	var keys []string
	for _, obj := range objects {
		lower := strings.ToLower(obj.Key)
		if strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx") {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("no CSV or XLSX files found for prefix %s", prefix)
	}
	sort.Strings(keys)

	now := time.Now().UTC()
	imported := 0
	for _, key := range keys {
		localPath := filepath.Join(downloadDir, filepath.Base(key))
		if err := client.DownloadObject(ctx, key, localPath); err != nil {
			return fmt.Errorf("failed to download %s: %w", key, err)
		}

		content, err := os.ReadFile(localPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", localPath, err)
		}

		records, err := dataset.ParseSalesFile(filepath.Base(key), content, now)
		if err != nil {
			log.Printf("Skipping %s: %v", key, err)
			continue
		}

		if err := insertRecords(ctx, db, records); err != nil {
			return fmt.Errorf("failed to load %s: %w", key, err)
		}

		imported += len(records)
		log.Printf("Imported %d records from %s", len(records), key)
	}

	log.Printf("Import finished: %d records from %d files", imported, len(keys))
	return nil
}
