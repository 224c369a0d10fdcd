// cmd/plan/main.go
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
)

// plan computes dispatch recommendations offline and writes them as a CSV,
// for dealers who want the order sheet without running the API server.
func main() {
	// Parse command line flags
	dbURL := flag.String("db-url", os.Getenv("DATABASE_URL"), "Database connection string")
	leadTime := flag.Int("lead-time", dispatch.DefaultLeadTimeDays, "Supplier lead time in days (7-60)")
	outDir := flag.String("out-dir", "./data/output", "Directory to write the dispatch plan CSV")
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("Database URL is required (use -db-url flag or DATABASE_URL)")
	}
	if *leadTime < dispatch.MinLeadTimeDays || *leadTime > dispatch.MaxLeadTimeDays {
		log.Fatalf("Lead time must be between %d and %d days", dispatch.MinLeadTimeDays, dispatch.MaxLeadTimeDays)
	}

	// Initialize database connection
	db, err := sql.Open("pgx", *dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	records, err := loadSales(ctx, db)
	if err != nil {
		log.Fatalf("Failed to load sales records: %v", err)
	}
	if len(records) == 0 {
		log.Fatal("No sales records found; upload or seed a dataset first")
	}

	inventory, err := loadStock(ctx, db)
	if err != nil {
		log.Fatalf("Failed to load stock inventory: %v", err)
	}

	frame := analytics.NewFrame(records)
	start := planStart(frame)

	planner := dispatch.New(forecast.New(calendar.NewDefault()))
	recs := planner.Plan(frame, start, *leadTime, inventory)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	outPath := filepath.Join(*outDir, dispatch.ExportFilename(start))

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	if err := dispatch.WriteCSV(f, recs); err != nil {
		log.Fatalf("Failed to write dispatch plan: %v", err)
	}

	capital := planner.WorkingCapital(frame, recs)
	log.Printf("Wrote %d recommendations to %s", len(recs), outPath)
	log.Printf("Total dispatch value %.2f, dead stock exposure %.2f, high risk SKUs %d",
		capital.TotalDispatchValue, capital.DeadStockExposure, len(capital.HighRiskSKUs))
}

// planStart mirrors the server: day after the newest invoice, wall clock
// only for an empty frame (which we reject above anyway).
func planStart(frame *analytics.Frame) time.Time {
	if ref, ok := frame.ReferenceDate(); ok {
		return ref.AddDate(0, 0, 1)
	}
	return calendar.Midnight(time.Now().UTC())
}

func loadSales(ctx context.Context, db *sql.DB) ([]domain.SaleRecord, error) {
	const query = `
		SELECT invoice_date, sku_code, model_name, variant, colour,
		       quantity_sold, unit_price, total_value, location, region
		FROM sales_records
		ORDER BY invoice_date, id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SaleRecord
	for rows.Next() {
		var r domain.SaleRecord
		if err := rows.Scan(&r.InvoiceDate, &r.SKUCode, &r.ModelName, &r.Variant, &r.Colour,
			&r.QuantitySold, &r.UnitPrice, &r.TotalValue, &r.Location, &r.Region); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func loadStock(ctx context.Context, db *sql.DB) ([]domain.StockItem, error) {
	const query = `
		SELECT sku_code, model_name, variant, colour, current_stock, location, region
		FROM stock_inventory`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		var item domain.StockItem
		if err := rows.Scan(&item.SKUCode, &item.ModelName, &item.Variant, &item.Colour,
			&item.CurrentStock, &item.Location, &item.Region); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
