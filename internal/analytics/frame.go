// backend-go/internal/analytics/frame.go
package analytics

import (
	"sort"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

// Frame is a read-only view over a set of sale records. Every report,
// forecast and plan is computed from a Frame built per request, so results
// always reflect the store contents at call time.
//
// All date arithmetic keys off ReferenceDate, the newest invoice date in
// the data, never the wall clock. A fixture dataset ending in 2024 keeps
// producing the same reports forever.
type Frame struct {
	records []domain.SaleRecord
	ref     time.Time
	hasRef  bool
}

// NewFrame builds a Frame. Invoice dates are normalised to UTC midnight.
func NewFrame(records []domain.SaleRecord) *Frame {
	f := &Frame{records: make([]domain.SaleRecord, len(records))}
	copy(f.records, records)

	for i := range f.records {
		f.records[i].InvoiceDate = calendar.Midnight(f.records[i].InvoiceDate)
		if !f.hasRef || f.records[i].InvoiceDate.After(f.ref) {
			f.ref = f.records[i].InvoiceDate
			f.hasRef = true
		}
	}

	return f
}

// Empty reports whether the frame holds no records.
func (f *Frame) Empty() bool { return len(f.records) == 0 }

// Len returns the record count.
func (f *Frame) Len() int { return len(f.records) }

// Records exposes the underlying rows. Callers must not mutate them.
func (f *Frame) Records() []domain.SaleRecord { return f.records }

// ReferenceDate returns the newest invoice date in the data. ok is false
// for an empty frame.
func (f *Frame) ReferenceDate() (time.Time, bool) {
	return f.ref, f.hasRef
}

// Span returns the inclusive invoice-date range and its length in days.
func (f *Frame) Span() (domain.DateRange, int, bool) {
	if f.Empty() {
		return domain.DateRange{}, 0, false
	}

	min := f.records[0].InvoiceDate
	for _, r := range f.records[1:] {
		if r.InvoiceDate.Before(min) {
			min = r.InvoiceDate
		}
	}
	days := int(f.ref.Sub(min).Hours()/24) + 1

	return domain.DateRange{From: min, To: f.ref}, days, true
}

// GroupBySKU splits the records per SKU, keeping first-seen SKU order so
// downstream output is deterministic.
func (f *Frame) GroupBySKU() ([]domain.SKU, map[domain.SKU][]domain.SaleRecord) {
	order := []domain.SKU{}
	groups := make(map[domain.SKU][]domain.SaleRecord)
	for _, r := range f.records {
		key := domain.SKUOf(r)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	return order, groups
}

// UnitsBetween sums units per SKU over the inclusive date window.
func (f *Frame) UnitsBetween(from, to time.Time) map[domain.SKU]int {
	from = calendar.Midnight(from)
	to = calendar.Midnight(to)

	units := make(map[domain.SKU]int)
	for _, r := range f.records {
		if r.InvoiceDate.Before(from) || r.InvoiceDate.After(to) {
			continue
		}
		units[domain.SKUOf(r)] += r.QuantitySold
	}

	return units
}

// AvgDailyRevenue is total sales value divided by the span length, the
// denominator of capital-rotation estimates.
func (f *Frame) AvgDailyRevenue() float64 {
	_, days, ok := f.Span()
	if !ok {
		return 0
	}

	var revenue float64
	for _, r := range f.records {
		revenue += float64(r.QuantitySold) * r.UnitPrice
	}
	if days < 1 {
		days = 1
	}

	return revenue / float64(days)
}

// monthKey addresses one calendar month.
type monthKey struct {
	year  int
	month time.Month
}

func (k monthKey) before(o monthKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}

	return k.month < o.month
}

type monthTotal struct {
	units   int
	revenue float64
}

// monthlySeries aggregates units and revenue per calendar month, returning
// the keys in chronological order.
func (f *Frame) monthlySeries() ([]monthKey, map[monthKey]monthTotal) {
	totals := make(map[monthKey]monthTotal)
	for _, r := range f.records {
		k := monthKey{r.InvoiceDate.Year(), r.InvoiceDate.Month()}
		t := totals[k]
		t.units += r.QuantitySold
		t.revenue += float64(r.QuantitySold) * r.UnitPrice
		totals[k] = t
	}

	keys := make([]monthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	return keys, totals
}
