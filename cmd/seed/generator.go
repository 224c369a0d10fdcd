package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// skuMaster is the Hero MotoCorp mix the sample dataset is built from.
type skuMaster struct {
	SKUCode   string
	ModelName string
	Variant   string
	Colour    string
	Price     float64
	BaseDaily float64
	Region    string
}

var heroSKUs = []skuMaster{
	{"HER-SPL-STD-BLK", "Splendor Plus", "Standard", "Black", 72000, 4.5, "North India"},
	{"HER-SPL-STD-RED", "Splendor Plus", "Standard", "Sports Red", 72000, 3.8, "North India"},
	{"HER-SPL-DLX-SIL", "Splendor Plus", "Deluxe", "Pearl Silver", 76000, 3.2, "North India"},
	{"HER-HFD-STD-BLK", "HF Deluxe", "Standard", "Black", 64000, 5.0, "All India"},
	{"HER-HFD-STD-RED", "HF Deluxe", "Standard", "Red", 64000, 4.0, "All India"},
	{"HER-PAS-STD-BLK", "Passion Pro", "Standard", "Black", 79000, 3.5, "All India"},
	{"HER-PAS-DLX-RED", "Passion Pro", "Deluxe", "Red", 82000, 2.5, "All India"},
	{"HER-XTR-STD-RED", "Xtreme 160R", "Standard", "Blazing Red", 115000, 2.0, "Urban"},
	{"HER-XTR-STD-BLK", "Xtreme 160R", "Standard", "Black", 115000, 1.8, "Urban"},
	{"HER-DST-STD-WHT", "Destini 125", "Standard", "Pearl White", 78000, 2.8, "All India"},
	{"HER-DST-STD-RED", "Destini 125", "Standard", "Imperial Red", 78000, 2.5, "All India"},
	{"HER-MAE-STD-SIL", "Maestro Edge 125", "Standard", "Silver", 82000, 2.0, "South India"},
	{"HER-GLM-STD-BLU", "Glamour", "Standard", "Force Blue", 85000, 1.5, "All India"},
	{"HER-XPL-STD-BLK", "Xpulse 200", "Standard", "Sports Red", 140000, 0.8, "Urban"},
	{"HER-SUP-STD-BLK", "Super Splendor", "Standard", "Black", 82000, 2.2, "All India"},
}

// seedSeasonal is the month shaping for the synthetic data. It is deliberately
// steeper than the forecasting table so the generated history has texture the
// model has to recover, instead of echoing the model's own assumptions.
var seedSeasonal = map[time.Month]float64{
	time.January: 0.85, time.February: 0.92, time.March: 1.15,
	time.April: 0.95, time.May: 1.00, time.June: 0.82,
	time.July: 0.78, time.August: 0.95, time.September: 1.08,
	time.October: 1.38, time.November: 1.52, time.December: 1.22,
}

// festivalWindow marks a day range in one month that carries a demand boost.
type festivalWindow struct {
	Month    time.Month
	StartDay int
	EndDay   int
	Boost    float64
}

var festivalWindows = map[int][]festivalWindow{
	2021: {
		{time.January, 12, 16, 1.30}, {time.October, 5, 16, 1.40}, {time.November, 1, 7, 1.60},
	},
	2022: {
		{time.January, 12, 16, 1.30}, {time.September, 25, 30, 1.20},
		{time.October, 1, 6, 1.40}, {time.October, 22, 26, 1.60},
	},
	2023: {
		{time.January, 12, 16, 1.30}, {time.April, 20, 24, 1.25},
		{time.October, 14, 25, 1.40}, {time.November, 10, 15, 1.60},
	},
	2024: {
		{time.January, 13, 17, 1.30}, {time.May, 8, 12, 1.25}, {time.October, 2, 14, 1.40},
		{time.October, 28, 31, 1.50}, {time.November, 1, 5, 1.60},
	},
}

var yoyGrowth = map[int]float64{2021: 1.00, 2022: 1.08, 2023: 1.14, 2024: 1.22}

func festivalBoost(day time.Time) float64 {
	for _, w := range festivalWindows[day.Year()] {
		if day.Month() == w.Month && day.Day() >= w.StartDay && day.Day() <= w.EndDay {
			return w.Boost
		}
	}
	return 1.0
}

func marriageBoost(day time.Time) float64 {
	switch day.Month() {
	case time.November, time.December:
		return 1.25
	case time.February, time.March, time.April, time.May:
		return 1.20
	}
	return 1.0
}

func locationFor(region string) string {
	switch region {
	case "North India":
		return "Delhi"
	case "South India":
		return "Chennai"
	case "Urban":
		return "Mumbai"
	}
	return "Pan India"
}

// generateRecords produces four years (2021-2024) of daily sales with
// seasonal, festival and marriage shaping, YoY growth and ~3%/year price
// drift rounded to the nearest hundred rupees. Deterministic for a seed.
func generateRecords(seed int64) []domain.SaleRecord {
	rng := rand.New(rand.NewSource(seed))

	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	var records []domain.SaleRecord
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		yoy := yoyGrowth[day.Year()]
		if yoy == 0 {
			yoy = 1.0
		}
		for _, sku := range heroSKUs {
			noise := 0.7 + rng.Float64()*0.6
			raw := sku.BaseDaily * seedSeasonal[day.Month()] * festivalBoost(day) * marriageBoost(day) * yoy * noise
			qty := int(math.Round(raw))
			if qty <= 0 {
				continue
			}

			priceDrift := 1.0 + 0.03*float64(day.Year()-2021)
			price := math.Round(sku.Price*priceDrift/100) * 100

			records = append(records, domain.SaleRecord{
				InvoiceDate:  day,
				SKUCode:      sku.SKUCode,
				ModelName:    sku.ModelName,
				Variant:      sku.Variant,
				Colour:       sku.Colour,
				QuantitySold: qty,
				UnitPrice:    price,
				TotalValue:   float64(qty) * price,
				Location:     locationFor(sku.Region),
				Region:       sku.Region,
				SourceType:   domain.SourceSample,
			})
		}
	}
	return records
}

func runGenerate(c *cli.Context) error {
	outPath := c.String("out")
	records := generateRecords(c.Int64("seed"))

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"invoice_date", "sku_code", "model_name", "variant", "colour",
		"quantity_sold", "unit_price", "total_value", "location", "region"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.InvoiceDate.Format("2006-01-02"),
			r.SKUCode, r.ModelName, r.Variant, r.Colour,
			strconv.Itoa(r.QuantitySold),
			strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(r.TotalValue, 'f', 2, 64),
			r.Location, r.Region,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	log.Printf("Wrote %d sample records to %s", len(records), outPath)
	return nil
}

func runLoad(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Context

	if c.Bool("replace") {
		if _, err := db.ExecContext(ctx, "DELETE FROM sales_records"); err != nil {
			return fmt.Errorf("failed to clear sales records: %w", err)
		}
		log.Println("Cleared existing sales records")
	} else {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales_records").Scan(&count); err != nil {
			return fmt.Errorf("failed to count sales records: %w", err)
		}
		if count > 0 {
			log.Printf("Database already has %d records - skipping seed (use --replace to reload)", count)
			return nil
		}
	}

	records := generateRecords(c.Int64("seed"))
	log.Printf("Generated %d sample records, loading...", len(records))

	if err := insertRecords(ctx, db, records); err != nil {
		return err
	}

	log.Printf("Seeded %d records successfully", len(records))
	return nil
}

const insertBatchSize = 500

// insertRecords loads the whole set in one transaction so a failed seed
// leaves the table as it was.
func insertRecords(ctx context.Context, db *sql.DB, records []domain.SaleRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO sales_records
			(invoice_date, sku_code, model_name, variant, colour,
			 quantity_sold, unit_price, total_value, location, region,
			 source_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.InvoiceDate, r.SKUCode, r.ModelName, r.Variant, r.Colour,
			r.QuantitySold, r.UnitPrice, r.TotalValue, r.Location, r.Region,
			r.SourceType, r.UploadedAt,
		); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
		if (i+1)%insertBatchSize == 0 {
			log.Printf("Inserted %d records...", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
