// backend-go/internal/calendar/calendar.go
package calendar

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
)

const (
	// DefaultPreWindowDays applies to festivals without a curated ramp.
	DefaultPreWindowDays = 14

	// postTailDays and postTailCarry shape the residual demand right after
	// a festival date: 3 days at 40% of the peak impact.
	postTailDays  = 3
	postTailCarry = 0.4

	// multiplierScanDays bounds how far ahead Multiplier looks for an
	// active ramp. The longest curated ramp is 21 days.
	multiplierScanDays = 30
)

// Calendar is the immutable festival and season reference injected into the
// forecaster, planner, alerts and API. Build one with NewDefault and share
// it freely; all methods are read-only.
type Calendar struct {
	festivals  map[int][]domain.FestivalEvent
	preWindows map[string]int
	seasonal   map[time.Month]float64
	seasons    []MarriageSeason
}

// NewDefault builds a Calendar from the curated 2021-2026 tables.
func NewDefault() *Calendar {
	c := &Calendar{
		festivals:  make(map[int][]domain.FestivalEvent, len(festivalTable)),
		preWindows: preWindowTable,
		seasonal:   seasonalTable,
		seasons:    marriageSeasonTable,
	}

	for year, entries := range festivalTable {
		events := make([]domain.FestivalEvent, 0, len(entries))
		for _, e := range entries {
			events = append(events, domain.FestivalEvent{
				Name:      e.name,
				Date:      time.Date(year, e.month, e.day, 0, 0, 0, 0, time.UTC),
				Type:      e.ftype,
				Region:    e.region,
				ImpactPct: e.impact,
			})
		}
		sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
		c.festivals[year] = events
	}

	return c
}

// Multiplier returns the demand multiplier in effect on target and the name
// of the festival driving it. Outside any ramp or tail it returns (1.0, "").
func (c *Calendar) Multiplier(target time.Time) (float64, string) {
	target = Midnight(target)
	best := 1.0
	bestName := ""

	// Scan from 3 days back so a festival whose tail covers target is seen.
	for _, f := range c.Upcoming(target.AddDate(0, 0, -postTailDays), multiplierScanDays) {
		daysTo := daysBetween(target, f.Date)
		window := c.PreWindowDays(f.Name)

		var mult float64
		switch {
		case daysTo >= -postTailDays && daysTo < 0:
			mult = 1 + float64(f.ImpactPct)/100*postTailCarry
		case daysTo >= 0 && daysTo <= window:
			// Linear ramp peaking on the festival day itself.
			mult = 1 + float64(f.ImpactPct)/100*(1-float64(daysTo)/float64(window))
		default:
			continue
		}

		// Strictly greater, so the earliest festival wins ties.
		if mult > best {
			best = mult
			bestName = f.Name
		}
	}

	return round3(best), bestName
}

// Upcoming lists festivals within [from, from+daysAhead], annotated with
// distance and ramp length, sorted by date.
func (c *Calendar) Upcoming(from time.Time, daysAhead int) []domain.UpcomingFestival {
	from = Midnight(from)
	end := from.AddDate(0, 0, daysAhead)

	out := []domain.UpcomingFestival{}
	for _, year := range []int{from.Year(), from.Year() + 1} {
		for _, f := range c.festivals[year] {
			if f.Date.Before(from) || f.Date.After(end) {
				continue
			}
			out = append(out, domain.UpcomingFestival{
				FestivalEvent: f,
				DaysAway:      daysBetween(from, f.Date),
				PreWindowDays: c.PreWindowDays(f.Name),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}

// ForYear returns the curated festivals of one year, date-sorted. Unknown
// years yield an empty slice.
func (c *Calendar) ForYear(year int) []domain.FestivalEvent {
	events := c.festivals[year]
	out := make([]domain.FestivalEvent, len(events))
	copy(out, events)

	return out
}

// All returns every curated festival across all years, date-sorted.
func (c *Calendar) All() []domain.FestivalEvent {
	out := []domain.FestivalEvent{}
	for _, events := range c.festivals {
		out = append(out, events...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}

// ImpactHistory returns the year-by-year record of one festival,
// case-insensitive on the name.
func (c *Calendar) ImpactHistory(name string) []domain.FestivalImpact {
	out := []domain.FestivalImpact{}
	for year, events := range c.festivals {
		for _, f := range events {
			if strings.EqualFold(f.Name, name) {
				out = append(out, domain.FestivalImpact{Year: year, Date: f.Date, ImpactPct: f.ImpactPct})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out
}

// PreWindowDays returns the pre-festival ramp length for a festival name.
func (c *Calendar) PreWindowDays(name string) int {
	if w, ok := c.preWindows[name]; ok {
		return w
	}

	return DefaultPreWindowDays
}

// SeasonalFactor returns the monthly demand factor used by the forecaster.
func (c *Calendar) SeasonalFactor(m time.Month) float64 {
	if f, ok := c.seasonal[m]; ok {
		return f
	}

	return 1.0
}

// ActiveMarriageSeason reports the wedding season covering the given date,
// or nil when the month is off-season.
func (c *Calendar) ActiveMarriageSeason(on time.Time) *domain.MarriageSeasonInfo {
	on = Midnight(on)
	for _, s := range c.seasons {
		if s.containsMonth(on.Month()) {
			return s.info(int(on.Month()), 0)
		}
	}

	return nil
}

// NextMarriageSeason scans month starts up to a year ahead and returns the
// first in-season month. DaysAway is 0 when the season is already active.
func (c *Calendar) NextMarriageSeason(from time.Time) *domain.MarriageSeasonInfo {
	from = Midnight(from)
	for dm := 0; dm <= 12; dm++ {
		probe := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, dm, 0)
		for _, s := range c.seasons {
			if s.containsMonth(probe.Month()) {
				days := daysBetween(from, probe)
				if days < 0 {
					days = 0
				}
				return s.info(int(probe.Month()), days)
			}
		}
	}

	return nil
}

func (s MarriageSeason) containsMonth(m time.Month) bool {
	for _, sm := range s.Months {
		if sm == m {
			return true
		}
	}

	return false
}

func (s MarriageSeason) info(month, daysAway int) *domain.MarriageSeasonInfo {
	colours := make([]string, len(s.Colours))
	copy(colours, s.Colours)
	types := make([]string, len(s.Types))
	copy(types, s.Types)

	return &domain.MarriageSeasonInfo{
		Season:             s.Name,
		Month:              month,
		UpliftPct:          s.UpliftPct,
		RecommendedColours: colours,
		RecommendedTypes:   types,
		DaysAway:           daysAway,
	}
}

// Midnight truncates a time to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b; negative when b is earlier.
func daysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
