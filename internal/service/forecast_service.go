// backend-go/internal/service/forecast_service.go
package service

import (
	"context"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/forecast"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

// ForecastService projects demand over a caller-chosen horizon. Forecasts
// always start the day after the last invoice in the dataset, so a stale
// dataset yields the same numbers tomorrow that it yields today.
type ForecastService struct {
	sales repository.SalesRepository
	fc    *forecast.Forecaster
}

func NewForecastService(sales repository.SalesRepository, fc *forecast.Forecaster) *ForecastService {
	return &ForecastService{sales: sales, fc: fc}
}

// Forecast returns day-by-day predicted demand for every SKU in the dataset.
func (s *ForecastService) Forecast(ctx context.Context, horizonDays int, now time.Time) ([]domain.ForecastPoint, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return s.fc.Run(frame, forecastStart(frame, now), horizonDays), nil
}

// Summary rolls the daily forecast up to one row per SKU.
func (s *ForecastService) Summary(ctx context.Context, horizonDays int, now time.Time) ([]domain.SKUForecastSummary, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	start := forecastStart(frame, now)
	points := s.fc.Run(frame, start, horizonDays)
	return s.fc.Summarise(points, start), nil
}

// ForecastSKU narrows the forecast to a single SKU. An unknown code yields
// an empty series, not an error.
func (s *ForecastService) ForecastSKU(ctx context.Context, skuCode string, horizonDays int, now time.Time) ([]domain.ForecastPoint, error) {
	points, err := s.Forecast(ctx, horizonDays, now)
	if err != nil {
		return nil, err
	}
	matched := []domain.ForecastPoint{}
	for _, p := range points {
		if p.SKUCode == skuCode {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// WhatIf simulates a scenario against the default-horizon forecast.
func (s *ForecastService) WhatIf(ctx context.Context, req domain.WhatIfRequest, horizonDays int, now time.Time) (*domain.WhatIfResult, error) {
	points, err := s.Forecast(ctx, horizonDays, now)
	if err != nil {
		return nil, err
	}
	result := forecast.WhatIf(points, req)
	return &result, nil
}
