// backend-go/internal/api/api_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealersight/wheeler-intel/backend-go/internal/alerts"
	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/copilot"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memSalesRepo is an in-memory SalesRepository for router tests.
type memSalesRepo struct {
	records    []domain.SaleRecord
	lastUpload *time.Time
}

func (m *memSalesRepo) ReplaceAll(_ context.Context, records []domain.SaleRecord) error {
	m.records = records
	for _, r := range records {
		if r.UploadedAt != nil {
			m.lastUpload = r.UploadedAt
		}
	}
	return nil
}

func (m *memSalesRepo) AppendBatch(_ context.Context, records []domain.SaleRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *memSalesRepo) ListAll(_ context.Context) ([]domain.SaleRecord, error) {
	return m.records, nil
}

func (m *memSalesRepo) Clear(_ context.Context) (int64, error) {
	n := int64(len(m.records))
	m.records = nil
	return n, nil
}

func (m *memSalesRepo) Count(_ context.Context) (int, error) {
	return len(m.records), nil
}

func (m *memSalesRepo) CountBySource(_ context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, r := range m.records {
		counts[r.SourceType]++
	}
	return counts, nil
}

func (m *memSalesRepo) LastUploadedAt(_ context.Context) (*time.Time, error) {
	return m.lastUpload, nil
}

type memStockRepo struct {
	items []domain.StockItem
}

func (m *memStockRepo) ReplaceAll(_ context.Context, items []domain.StockItem) error {
	m.items = items
	return nil
}

func (m *memStockRepo) AppendBatch(_ context.Context, items []domain.StockItem) error {
	m.items = append(m.items, items...)
	return nil
}

func (m *memStockRepo) List(_ context.Context) ([]domain.StockItem, error) {
	return m.items, nil
}

func (m *memStockRepo) Summary(_ context.Context) (domain.StockSummary, error) {
	units := 0
	for _, it := range m.items {
		units += it.CurrentStock
	}
	return domain.StockSummary{
		TotalSKUs:    len(m.items),
		TotalUnits:   units,
		HasStockData: len(m.items) > 0,
	}, nil
}

func (m *memStockRepo) Clear(_ context.Context) (int64, error) {
	n := int64(len(m.items))
	m.items = nil
	return n, nil
}

func sampleRecord(code, model string, day time.Time, qty int, price float64) domain.SaleRecord {
	return domain.SaleRecord{
		InvoiceDate:  day,
		SKUCode:      code,
		ModelName:    model,
		Variant:      "Standard",
		Colour:       "Black",
		QuantitySold: qty,
		UnitPrice:    price,
		TotalValue:   float64(qty) * price,
		SourceType:   domain.SourceSample,
	}
}

// sampleRecords covers four weeks of sales for two SKUs ending 2024-09-28.
func sampleRecords() []domain.SaleRecord {
	base := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	var records []domain.SaleRecord
	for day := 0; day < 28; day++ {
		d := base.AddDate(0, 0, day)
		records = append(records,
			sampleRecord("HER-SPL-STD-BLK", "Splendor Plus", d, 3, 72000),
			sampleRecord("HER-HFD-STD-RED", "HF Deluxe", d, 2, 64000),
		)
	}
	return records
}

func newTestRouter(sales *memSalesRepo, stock *memStockRepo) *gin.Engine {
	cal := calendar.NewDefault()
	th := analytics.DefaultThresholds()
	fc := forecast.New(cal)
	planner := dispatch.New(fc)
	engine := alerts.New(cal, th)
	chat := copilot.New(cal, fc, planner, th)

	services := &Services{
		Dataset:   service.NewDatasetService(sales, nil, nil),
		Stock:     service.NewStockService(stock),
		Analytics: service.NewAnalyticsService(sales, nil, engine, th),
		Forecast:  service.NewForecastService(sales, fc),
		Dispatch:  service.NewDispatchService(sales, stock, planner),
		Advisor:   service.NewAdvisorService(sales, stock, cal, engine, chat),
	}
	return NewRouter(services, AppInfo{Name: "wheeler-intel-test", Env: "test"}, nil)
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doGET(router *gin.Engine, path string) *httptest.ResponseRecorder {
	return doRequest(router, http.MethodGet, path, nil, "")
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func multipartFile(t *testing.T, field, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(&memSalesRepo{}, &memStockRepo{})

	t.Run("root points at health", func(t *testing.T) {
		rec := doGET(router, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		decodeJSON(t, rec, &body)
		assert.Equal(t, "wheeler-intel-test", body["message"])
		assert.Equal(t, "/api/health", body["health"])
	})

	t.Run("health reports version and env", func(t *testing.T) {
		rec := doGET(router, "/api/health")
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		decodeJSON(t, rec, &body)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "1.0.0", body["version"])
		assert.Equal(t, "wheeler-intel-test", body["app"])
		assert.Equal(t, "test", body["env"])
	})
}

func TestRouterWithoutServicesServesHealthOnly(t *testing.T) {
	router := NewRouter(nil, AppInfo{Name: "bare", Env: "test"}, nil)

	assert.Equal(t, http.StatusOK, doGET(router, "/api/health").Code)
	assert.Equal(t, http.StatusNotFound, doGET(router, "/api/sales/dashboard").Code)
}

func TestQueryParamBounds(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	cases := []struct {
		name string
		path string
		want string
	}{
		{"months too small", "/api/sales/mom?months=1", "months must be an integer between 2 and 60"},
		{"limit zero", "/api/sales/top-performers?limit=0", "limit must be an integer between 1 and 50"},
		{"horizon too small", "/api/forecast?horizon_days=6", "horizon_days must be an integer between 7 and 120"},
		{"horizon not a number", "/api/forecast/summary?horizon_days=two", "horizon_days must be an integer between 7 and 120"},
		{"lead time too large", "/api/dispatch/recommendations?lead_time_days=61", "lead_time_days must be an integer between 7 and 60"},
		{"days ahead too small", "/api/festivals/upcoming?days_ahead=4", "days_ahead must be an integer between 7 and 365"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGET(router, tc.path)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			decodeJSON(t, rec, &body)
			assert.Equal(t, tc.want, body["error"])
		})
	}
}

func TestDashboardRoute(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	rec := doGET(router, "/api/sales/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.DashboardSummary
	decodeJSON(t, rec, &summary)
	assert.Equal(t, "HER-SPL-STD-BLK", summary.TopSKU)
	assert.NotZero(t, summary.YTDUnits)
	assert.NotEmpty(t, summary.SKURankings)
}

func TestForecastRoutes(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	t.Run("one point per sku per day", func(t *testing.T) {
		rec := doGET(router, "/api/forecast?horizon_days=7")
		require.Equal(t, http.StatusOK, rec.Code)
		var points []domain.ForecastPoint
		decodeJSON(t, rec, &points)
		assert.Len(t, points, 14)
	})

	t.Run("summary per sku", func(t *testing.T) {
		rec := doGET(router, "/api/forecast/summary?horizon_days=30")
		require.Equal(t, http.StatusOK, rec.Code)
		var summaries []domain.SKUForecastSummary
		decodeJSON(t, rec, &summaries)
		assert.Len(t, summaries, 2)
	})

	t.Run("unknown sku yields empty list not 404", func(t *testing.T) {
		rec := doGET(router, "/api/forecast/sku/NO-SUCH-SKU?horizon_days=7")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}

func TestWhatIfEndpoint(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	t.Run("rejects body without scenario", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/forecast/what-if",
			strings.NewReader(`{"parameter": 10}`), "application/json")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		decodeJSON(t, rec, &body)
		assert.Equal(t, "invalid request body", body["error"])
	})

	t.Run("simulates fuel price rise", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/forecast/what-if",
			strings.NewReader(`{"scenario": "fuel_price", "parameter": 10}`), "application/json")
		require.Equal(t, http.StatusOK, rec.Code)
		var result domain.WhatIfResult
		decodeJSON(t, rec, &result)
		assert.Equal(t, "fuel_price", result.Scenario)
		assert.Positive(t, result.BaselineUnits)
		assert.Less(t, result.AdjustedUnits, result.BaselineUnits)
	})
}

func TestDispatchExportDownload(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	rec := doGET(router, "/api/dispatch/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment; filename=dispatch_plan_"), disposition)
	assert.True(t, strings.HasSuffix(disposition, ".csv"), disposition)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "SKU Code,Model Name"))
}

func TestDispatchRiskScores(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	rec := doGET(router, "/api/dispatch/risk-scores")
	require.Equal(t, http.StatusOK, rec.Code)
	var scores []domain.RiskScore
	decodeJSON(t, rec, &scores)
	require.NotEmpty(t, scores)
	for _, s := range scores {
		assert.NotEmpty(t, s.SKUCode)
		assert.NotEmpty(t, s.RiskType)
	}
}

func TestStockRoutes(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	stockCSV := "sku_code,model_name,variant,colour,current_stock,location,region\n" +
		"HER-SPL-STD-BLK,Splendor Plus,Standard,Black,45,Delhi,North India\n" +
		"HER-HFD-STD-RED,HF Deluxe,Standard,Red,30,Mumbai,West India\n"

	t.Run("template download", func(t *testing.T) {
		rec := doGET(router, "/api/stock/template")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=stock_inventory_template.csv",
			rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "sku_code,model_name"))
	})

	t.Run("upload", func(t *testing.T) {
		body, contentType := multipartFile(t, "file", "stock.csv", []byte(stockCSV))
		rec := doRequest(router, http.MethodPost, "/api/stock/upload", body, contentType)
		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.StockUploadResult
		decodeJSON(t, rec, &result)
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, "stock.csv", result.Filename)
		assert.Equal(t, 2, result.RowsInserted)
		assert.True(t, result.ReplacedExisting)
	})

	t.Run("summary after upload", func(t *testing.T) {
		rec := doGET(router, "/api/stock/summary")
		require.Equal(t, http.StatusOK, rec.Code)

		var summary domain.StockSummary
		decodeJSON(t, rec, &summary)
		assert.Equal(t, 2, summary.TotalSKUs)
		assert.Equal(t, 75, summary.TotalUnits)
		assert.True(t, summary.HasStockData)
	})

	t.Run("replace_existing must be boolean", func(t *testing.T) {
		body, contentType := multipartFile(t, "file", "stock.csv", []byte(stockCSV))
		rec := doRequest(router, http.MethodPost, "/api/stock/upload?replace_existing=maybe", body, contentType)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "replace_existing must be true or false", resp["error"])
	})

	t.Run("clear reports deleted rows", func(t *testing.T) {
		rec := doRequest(router, http.MethodDelete, "/api/stock/clear", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status      string `json:"status"`
			RowsDeleted int64  `json:"rows_deleted"`
		}
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "cleared", resp.Status)
		assert.Equal(t, int64(2), resp.RowsDeleted)
	})
}

func TestSalesUploadRoutes(t *testing.T) {
	const header = "invoice_date,sku_code,model_name,variant,colour,quantity_sold,unit_price,total_value"
	goodCSV := header + "\n" +
		"2024-10-01,HER-SPL-STD-BLK,Splendor Plus,Standard,Black,3,72000,216000\n" +
		"2024-10-02,HER-HFD-STD-RED,HF Deluxe,Standard,Red,2,64000,128000\n"

	t.Run("accepts csv and replaces dataset", func(t *testing.T) {
		sales := &memSalesRepo{}
		router := newTestRouter(sales, &memStockRepo{})

		body, contentType := multipartFile(t, "file", "sales.csv", []byte(goodCSV))
		rec := doRequest(router, http.MethodPost, "/api/sales-data/upload", body, contentType)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		decodeJSON(t, rec, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, "Successfully imported 2 records.", resp.Message)
		assert.Len(t, sales.records, 2)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		router := newTestRouter(&memSalesRepo{}, &memStockRepo{})

		body, contentType := multipartFile(t, "file", "sales.csv", nil)
		rec := doRequest(router, http.MethodPost, "/api/sales-data/upload", body, contentType)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "Uploaded file is empty.", resp["error"])
	})

	t.Run("rejects request without file", func(t *testing.T) {
		router := newTestRouter(&memSalesRepo{}, &memStockRepo{})

		rec := doRequest(router, http.MethodPost, "/api/sales-data/upload", strings.NewReader(""), "multipart/form-data")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		decodeJSON(t, rec, &resp)
		assert.Equal(t, "No file provided.", resp["error"])
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		bad := header + "\n31-10-2024,HER-SPL-STD-BLK,Splendor Plus,Standard,Black,3,72000,216000\n"
		router := newTestRouter(&memSalesRepo{}, &memStockRepo{})

		body, contentType := multipartFile(t, "file", "sales.csv", []byte(bad))
		rec := doRequest(router, http.MethodPost, "/api/sales-data/upload", body, contentType)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status reflects upload", func(t *testing.T) {
		sales := &memSalesRepo{}
		router := newTestRouter(sales, &memStockRepo{})

		body, contentType := multipartFile(t, "file", "sales.csv", []byte(goodCSV))
		require.Equal(t, http.StatusOK,
			doRequest(router, http.MethodPost, "/api/sales-data/upload", body, contentType).Code)

		rec := doGET(router, "/api/sales-data/status")
		require.Equal(t, http.StatusOK, rec.Code)

		var status domain.DatasetStatus
		decodeJSON(t, rec, &status)
		assert.Equal(t, 2, status.TotalRecords)
		assert.Equal(t, domain.SourceUploaded, status.Source)
		assert.Equal(t, 2, status.UploadedRecords)
	})
}

func TestCopilotRoutes(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	t.Run("chat answers", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/copilot/chat",
			strings.NewReader(`{"message": "Which SKUs should I order before Diwali?"}`), "application/json")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp domain.CopilotResponse
		decodeJSON(t, rec, &resp)
		assert.NotEmpty(t, resp.Answer)
	})

	t.Run("chat requires a message", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/copilot/chat",
			strings.NewReader(`{}`), "application/json")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("suggestions", func(t *testing.T) {
		rec := doGET(router, "/api/copilot/suggestions")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Questions []string `json:"questions"`
		}
		decodeJSON(t, rec, &resp)
		assert.NotEmpty(t, resp.Questions)
	})
}

func TestMarketRoutes(t *testing.T) {
	router := newTestRouter(&memSalesRepo{}, &memStockRepo{})

	rec := doGET(router, "/api/market/all")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.MarketItem
	decodeJSON(t, rec, &items)
	assert.NotEmpty(t, items)

	for _, path := range []string{"/trends", "/competitor-news", "/ev-trends", "/fuel", "/policy"} {
		assert.Equal(t, http.StatusOK, doGET(router, "/api/market"+path).Code, path)
	}
}

func TestAlertRoutes(t *testing.T) {
	router := newTestRouter(&memSalesRepo{records: sampleRecords()}, &memStockRepo{})

	t.Run("count buckets sum to total", func(t *testing.T) {
		rec := doGET(router, "/api/alerts/count")
		require.Equal(t, http.StatusOK, rec.Code)

		var counts domain.AlertCounts
		decodeJSON(t, rec, &counts)
		assert.Equal(t, counts.Total, counts.High+counts.Medium+counts.Low)
	})

	t.Run("critical only carries high priority", func(t *testing.T) {
		rec := doGET(router, "/api/alerts/critical")
		require.Equal(t, http.StatusOK, rec.Code)

		var critical []domain.Alert
		decodeJSON(t, rec, &critical)
		for _, a := range critical {
			assert.Equal(t, domain.PriorityHigh, a.Priority)
		}
	})
}

func TestFestivalRoutes(t *testing.T) {
	router := newTestRouter(&memSalesRepo{}, &memStockRepo{})

	t.Run("calendar lists curated festivals", func(t *testing.T) {
		rec := doGET(router, "/api/festivals/calendar")
		require.Equal(t, http.StatusOK, rec.Code)

		var events []domain.FestivalEvent
		decodeJSON(t, rec, &events)
		assert.NotEmpty(t, events)
	})

	t.Run("unknown festival impact is an empty list", func(t *testing.T) {
		rec := doGET(router, "/api/festivals/impact/Notafestival")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("marriage season status has next season", func(t *testing.T) {
		rec := doGET(router, "/api/festivals/marriage-season")
		require.Equal(t, http.StatusOK, rec.Code)

		var status domain.MarriageSeasonStatus
		decodeJSON(t, rec, &status)
		require.NotNil(t, status.NextSeason)
	})
}
