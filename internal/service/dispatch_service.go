// backend-go/internal/service/dispatch_service.go
package service

import (
	"bytes"
	"context"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/dispatch"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

// DispatchService turns the demand forecast into order recommendations.
// Uploaded stock sharpens the plan when present; without it the planner
// estimates stock from recent sales velocity.
type DispatchService struct {
	sales   repository.SalesRepository
	stock   repository.StockRepository
	planner *dispatch.Planner
}

func NewDispatchService(sales repository.SalesRepository, stock repository.StockRepository, planner *dispatch.Planner) *DispatchService {
	return &DispatchService{sales: sales, stock: stock, planner: planner}
}

func (s *DispatchService) plan(ctx context.Context, leadTimeDays int, now time.Time) (*analytics.Frame, []domain.DispatchRecommendation, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, nil, err
	}
	inventory, err := s.stock.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	recs := s.planner.Plan(frame, forecastStart(frame, now), leadTimeDays, inventory)
	return frame, recs, nil
}

func (s *DispatchService) Recommendations(ctx context.Context, leadTimeDays int, now time.Time) ([]domain.DispatchRecommendation, error) {
	_, recs, err := s.plan(ctx, leadTimeDays, now)
	return recs, err
}

func (s *DispatchService) WorkingCapital(ctx context.Context, leadTimeDays int, now time.Time) (*domain.WorkingCapitalSummary, error) {
	frame, recs, err := s.plan(ctx, leadTimeDays, now)
	if err != nil {
		return nil, err
	}
	summary := s.planner.WorkingCapital(frame, recs)
	return &summary, nil
}

// ExportCSV renders the plan as a dated CSV attachment.
func (s *DispatchService) ExportCSV(ctx context.Context, leadTimeDays int, now time.Time) (string, []byte, error) {
	_, recs, err := s.plan(ctx, leadTimeDays, now)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if err := dispatch.WriteCSV(&buf, recs); err != nil {
		return "", nil, err
	}
	return dispatch.ExportFilename(calendar.Midnight(now)), buf.Bytes(), nil
}

// RiskScores strips the plan down to its risk columns.
func (s *DispatchService) RiskScores(ctx context.Context, leadTimeDays int, now time.Time) ([]domain.RiskScore, error) {
	_, recs, err := s.plan(ctx, leadTimeDays, now)
	if err != nil {
		return nil, err
	}
	scores := make([]domain.RiskScore, 0, len(recs))
	for _, rec := range recs {
		scores = append(scores, domain.RiskScore{
			SKUCode:   rec.SKUCode,
			ModelName: rec.ModelName,
			Colour:    rec.Colour,
			RiskScore: rec.RiskScore,
			RiskType:  rec.RiskType,
		})
	}
	return scores, nil
}
