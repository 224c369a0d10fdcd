// backend-go/internal/service/advisor_service.go
package service

import (
	"context"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/alerts"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/copilot"
	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

// AdvisorService bundles the dealer-facing guidance surfaces: alerts, the
// chat copilot and the festival calendar. All of them depend on the wall
// clock, which callers pass in explicitly.
type AdvisorService struct {
	sales   repository.SalesRepository
	stock   repository.StockRepository
	cal     *calendar.Calendar
	engine  *alerts.Engine
	copilot *copilot.Service
}

func NewAdvisorService(sales repository.SalesRepository, stock repository.StockRepository, cal *calendar.Calendar, engine *alerts.Engine, chat *copilot.Service) *AdvisorService {
	return &AdvisorService{sales: sales, stock: stock, cal: cal, engine: engine, copilot: chat}
}

func (s *AdvisorService) Alerts(ctx context.Context, now time.Time) ([]domain.Alert, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return s.engine.Generate(frame, now), nil
}

func (s *AdvisorService) CriticalAlerts(ctx context.Context, now time.Time) ([]domain.Alert, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	return s.engine.Critical(frame, now), nil
}

func (s *AdvisorService) AlertCounts(ctx context.Context, now time.Time) (*domain.AlertCounts, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	counts := s.engine.Count(frame, now)
	return &counts, nil
}

// Chat answers a free-text question against the live dataset and inventory.
func (s *AdvisorService) Chat(ctx context.Context, message string, now time.Time) (*domain.CopilotResponse, error) {
	frame, err := loadFrame(ctx, s.sales)
	if err != nil {
		return nil, err
	}
	inventory, err := s.stock.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.copilot.Answer(frame, inventory, now, message)
	return &resp, nil
}

func (s *AdvisorService) Suggestions() []string {
	return copilot.SuggestedQuestions()
}

func (s *AdvisorService) UpcomingFestivals(now time.Time, daysAhead int) []domain.UpcomingFestival {
	return s.cal.Upcoming(now, daysAhead)
}

func (s *AdvisorService) FestivalCalendar() []domain.FestivalEvent {
	return s.cal.All()
}

// FestivalImpact reports the historical sales boost of a named festival.
// Unknown names yield an empty history.
func (s *AdvisorService) FestivalImpact(name string) []domain.FestivalImpact {
	return s.cal.ImpactHistory(name)
}

func (s *AdvisorService) MarriageSeason(now time.Time) domain.MarriageSeasonStatus {
	active := s.cal.ActiveMarriageSeason(now)
	return domain.MarriageSeasonStatus{
		CurrentlyInSeason: active != nil,
		CurrentSeason:     active,
		NextSeason:        s.cal.NextMarriageSeason(now),
	}
}
