// backend-go/internal/service/analytics_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dealersight/wheeler-intel/backend-go/internal/alerts"
	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/cache"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

// AnalyticsService serves the sales-intelligence reports. Every report is
// computed from the full dataset on demand; only the dashboard summary is
// cached, keyed by calendar day so the alert count stays honest.
type AnalyticsService struct {
	sales  repository.SalesRepository
	cache  cache.DashboardCache
	alerts *alerts.Engine
	th     analytics.Thresholds
}

func NewAnalyticsService(sales repository.SalesRepository, cacheImpl cache.DashboardCache, alertEngine *alerts.Engine, th analytics.Thresholds) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &AnalyticsService{sales: sales, cache: cacheImpl, alerts: alertEngine, th: th}
}

// Dashboard assembles the headline summary. The alert count depends on the
// wall clock (festival countdowns), which is why the cache key carries the
// day.
func (s *AnalyticsService) Dashboard(ctx context.Context, now time.Time) (*domain.DashboardSummary, error) {
	day := calendar.Midnight(now)

	if cached, ok, err := s.cache.GetSummary(ctx, day); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache read failed")
	}

	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}

	summary := frame.Dashboard(s.th)
	summary.ActiveAlerts = len(s.alerts.Generate(frame, now))

	if err := s.cache.SetSummary(ctx, day, &summary); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache write failed")
	}

	return &summary, nil
}

func (s *AnalyticsService) YoY(ctx context.Context) ([]domain.YoYPoint, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return frame.YoY(), nil
}

func (s *AnalyticsService) MoM(ctx context.Context, months int) ([]domain.MoMPoint, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return frame.MoM(months), nil
}

func (s *AnalyticsService) SKUPerformance(ctx context.Context) ([]domain.SKUPerformance, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return frame.SKUPerformance(s.th), nil
}

// TopPerformers returns the best-selling SKUs by lifetime units.
func (s *AnalyticsService) TopPerformers(ctx context.Context, limit int) ([]domain.SKUPerformance, error) {
	perf, err := s.SKUPerformance(ctx)
	if err != nil {
		return nil, err
	}
	if len(perf) > limit {
		perf = perf[:limit]
	}
	return perf, nil
}

func (s *AnalyticsService) SlowMovers(ctx context.Context) ([]domain.SKUPerformance, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return frame.SlowMovers(s.th), nil
}

func (s *AnalyticsService) ColourAnalysis(ctx context.Context) ([]domain.ColourStats, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return frame.ColourAnalysis(), nil
}

func (s *AnalyticsService) SeasonalPatterns(ctx context.Context) ([]domain.SeasonalPattern, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return frame.SeasonalPatterns(), nil
}
