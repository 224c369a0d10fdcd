// backend-go/internal/service/dispatch_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
)

func newDispatchService(sales *fakeSalesRepo, stock *fakeStockRepo) *DispatchService {
	planner := dispatch.New(forecast.New(calendar.NewDefault()))
	return NewDispatchService(sales, stock, planner)
}

func TestRecommendationsUseUploadedStock(t *testing.T) {
	stock := &fakeStockRepo{items: []domain.StockItem{
		{SKUCode: "HER-SPL-STD-BLK", ModelName: "Splendor Plus", CurrentStock: 500},
	}}
	svc := newDispatchService(seededSalesRepo(), stock)

	recs, err := svc.Recommendations(context.Background(), 21, date(2025, time.June, 16))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	byCode := map[string]domain.DispatchRecommendation{}
	for _, rec := range recs {
		byCode[rec.SKUCode] = rec
	}

	splendor := byCode["HER-SPL-STD-BLK"]
	assert.Equal(t, 500, splendor.CurrentStock)
	assert.Equal(t, domain.StockSourceUploaded, splendor.StockSource)

	deluxe := byCode["HER-HFD-STD-RED"]
	assert.Equal(t, domain.StockSourceEstimated, deluxe.StockSource)
}

func TestWorkingCapitalSummary(t *testing.T) {
	svc := newDispatchService(seededSalesRepo(), &fakeStockRepo{})

	summary, err := svc.WorkingCapital(context.Background(), 21, date(2025, time.June, 16))
	require.NoError(t, err)
	assert.Positive(t, summary.TotalDispatchValue)
}

func TestExportCSV(t *testing.T) {
	svc := newDispatchService(seededSalesRepo(), &fakeStockRepo{})

	filename, data, err := svc.ExportCSV(context.Background(), 21, time.Date(2025, time.June, 16, 18, 45, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "dispatch_plan_2025-06-16.csv", filename)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "SKU Code,Model"))
}

func TestRiskScoresMapping(t *testing.T) {
	svc := newDispatchService(seededSalesRepo(), &fakeStockRepo{})
	now := date(2025, time.June, 16)

	recs, err := svc.Recommendations(context.Background(), 21, now)
	require.NoError(t, err)
	scores, err := svc.RiskScores(context.Background(), 21, now)
	require.NoError(t, err)

	require.Len(t, scores, len(recs))
	for i, score := range scores {
		assert.Equal(t, recs[i].SKUCode, score.SKUCode)
		assert.Equal(t, recs[i].ModelName, score.ModelName)
		assert.Equal(t, recs[i].Colour, score.Colour)
		assert.Equal(t, recs[i].RiskScore, score.RiskScore)
		assert.Equal(t, recs[i].RiskType, score.RiskType)
	}
}

func TestDispatchStockLoadFailureFailsPlan(t *testing.T) {
	stock := &fakeStockRepo{err: assert.AnError}
	svc := newDispatchService(seededSalesRepo(), stock)

	_, err := svc.Recommendations(context.Background(), 21, date(2025, time.June, 16))
	assert.Error(t, err)
}
