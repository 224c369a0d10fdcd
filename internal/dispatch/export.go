// backend-go/internal/dispatch/export.go
package dispatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

var exportHeader = []string{
	"SKU Code", "Model Name", "Variant", "Colour",
	"Current Stock (Uploaded)", "Stock Source",
	"Forecast Units (Next Period)", "Recommended Order Qty",
	"Buffer Stock (15%)", "Total Dispatch Qty",
	"Unit Price (₹)", "Working Capital Impact (₹)",
	"Festival Boost Factor", "Risk Score (%)", "Risk Type", "Notes",
}

// WriteCSV renders a dispatch plan in the layout dealers import into their
// ordering sheets. Risk is exported as a percentage.
func WriteCSV(w io.Writer, recs []domain.DispatchRecommendation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range recs {
		row := []string{
			r.SKUCode,
			r.ModelName,
			r.Variant,
			r.Colour,
			strconv.Itoa(r.CurrentStock),
			r.StockSource,
			strconv.Itoa(int(r.ForecastUnits)),
			strconv.Itoa(r.RecommendedQuantity),
			strconv.Itoa(r.BufferStock),
			strconv.Itoa(r.TotalDispatch),
			strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(r.WorkingCapitalImpact, 'f', 2, 64),
			strconv.FormatFloat(r.FestivalFactor, 'f', 2, 64),
			strconv.FormatFloat(round1(r.RiskScore*100), 'f', 1, 64),
			r.RiskType,
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.SKUCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename names the download after the day the plan was generated.
func ExportFilename(day time.Time) string {
	return fmt.Sprintf("dispatch_plan_%s.csv", day.Format("2006-01-02"))
}
