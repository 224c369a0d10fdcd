// backend-go/internal/service/frame.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/analytics"
	"github.com/dealersight/wheeler-intel/backend-go/internal/calendar"
	"github.com/dealersight/wheeler-intel/backend-go/internal/repository"
)

// loadFrame pulls the whole dataset into an analytics frame. Every read
// endpoint recomputes from the frame; the dataset is small enough that
// the dashboard cache is the only layer worth keeping warm.
func loadFrame(ctx context.Context, sales repository.SalesRepository) (*analytics.Frame, error) {
	records, err := sales.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales dataset: %w", err)
	}
	return analytics.NewFrame(records), nil
}

// forecastStart anchors projections to the day after the last invoice so a
// stale dataset still produces a forecast aligned with its own history.
// Only an empty dataset falls back to the wall clock.
func forecastStart(frame *analytics.Frame, now time.Time) time.Time {
	if ref, ok := frame.ReferenceDate(); ok {
		return ref.AddDate(0, 0, 1)
	}
	return calendar.Midnight(now)
}
