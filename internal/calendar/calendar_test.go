package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMultiplier(t *testing.T) {
	cal := NewDefault()

	tests := []struct {
		name     string
		target   time.Time
		wantMult float64
		wantFest string
	}{
		{
			name:     "diwali day peaks at full impact",
			target:   date(2025, time.October, 20),
			wantMult: 1.6,
			wantFest: "Diwali",
		},
		{
			name:     "mid ramp ten days before diwali",
			target:   date(2025, time.October, 10),
			wantMult: 1.314,
			wantFest: "Diwali",
		},
		{
			name:     "post festival tail day after diwali",
			target:   date(2025, time.October, 21),
			wantMult: 1.24,
			wantFest: "Diwali",
		},
		{
			name:     "quiet monsoon day",
			target:   date(2025, time.June, 15),
			wantMult: 1.0,
			wantFest: "",
		},
		{
			name:     "year not in table",
			target:   date(2030, time.October, 20),
			wantMult: 1.0,
			wantFest: "",
		},
		{
			name:     "onam ramp in kerala window",
			target:   date(2025, time.August, 20),
			wantMult: 1.0 + 0.35*(1.0-7.0/21.0),
			wantFest: "Onam",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mult, fest := cal.Multiplier(tt.target)
			assert.InDelta(t, tt.wantMult, mult, 0.001)
			assert.Equal(t, tt.wantFest, fest)
		})
	}
}

func TestMultiplierNeverBelowOne(t *testing.T) {
	cal := NewDefault()

	day := date(2025, time.January, 1)
	for day.Year() == 2025 {
		mult, _ := cal.Multiplier(day)
		require.GreaterOrEqual(t, mult, 1.0, "multiplier below 1 on %s", day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
}

func TestUpcoming(t *testing.T) {
	cal := NewDefault()

	t.Run("festive quarter", func(t *testing.T) {
		got := cal.Upcoming(date(2025, time.September, 1), 60)

		require.Len(t, got, 5)
		assert.Equal(t, "Navratri", got[0].Name)
		assert.Equal(t, 21, got[0].DaysAway)
		assert.Equal(t, 10, got[0].PreWindowDays)
		assert.Equal(t, "Diwali", got[3].Name)
		assert.Equal(t, 49, got[3].DaysAway)
		assert.Equal(t, 21, got[3].PreWindowDays)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Date.Before(got[i-1].Date), "not date-sorted")
		}
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		got := cal.Upcoming(date(2025, time.December, 20), 30)

		require.Len(t, got, 1)
		assert.Equal(t, "Pongal", got[0].Name)
		assert.Equal(t, 2026, got[0].Date.Year())
		assert.Equal(t, 25, got[0].DaysAway)
	})

	t.Run("unknown year is empty", func(t *testing.T) {
		assert.Empty(t, cal.Upcoming(date(2030, time.January, 1), 90))
	})
}

func TestImpactHistory(t *testing.T) {
	cal := NewDefault()

	got := cal.ImpactHistory("diwali")

	require.Len(t, got, 6)
	assert.Equal(t, 2021, got[0].Year)
	assert.Equal(t, 2026, got[5].Year)
	for _, h := range got {
		assert.Equal(t, 60, h.ImpactPct)
	}

	assert.Empty(t, cal.ImpactHistory("no such festival"))
}

func TestPreWindowDays(t *testing.T) {
	cal := NewDefault()

	assert.Equal(t, 21, cal.PreWindowDays("Diwali"))
	assert.Equal(t, 10, cal.PreWindowDays("Pongal"))
	assert.Equal(t, DefaultPreWindowDays, cal.PreWindowDays("Holi"))
}

func TestSeasonalFactor(t *testing.T) {
	cal := NewDefault()

	assert.InDelta(t, 1.40, cal.SeasonalFactor(time.October), 0.0001)
	assert.InDelta(t, 0.75, cal.SeasonalFactor(time.July), 0.0001)
}

func TestMarriageSeasons(t *testing.T) {
	cal := NewDefault()

	t.Run("winter active", func(t *testing.T) {
		info := cal.ActiveMarriageSeason(date(2025, time.November, 15))

		require.NotNil(t, info)
		assert.Equal(t, "Winter", info.Season)
		assert.Equal(t, 25, info.UpliftPct)
		assert.Equal(t, 0, info.DaysAway)
		assert.Contains(t, info.RecommendedColours, "Imperial Blue")
	})

	t.Run("monsoon is off season", func(t *testing.T) {
		assert.Nil(t, cal.ActiveMarriageSeason(date(2025, time.June, 10)))
	})

	t.Run("next from monsoon is winter", func(t *testing.T) {
		info := cal.NextMarriageSeason(date(2025, time.June, 10))

		require.NotNil(t, info)
		assert.Equal(t, "Winter", info.Season)
		assert.Equal(t, 11, info.Month)
		assert.Equal(t, 144, info.DaysAway)
	})

	t.Run("next from inside spring is spring now", func(t *testing.T) {
		info := cal.NextMarriageSeason(date(2025, time.March, 15))

		require.NotNil(t, info)
		assert.Equal(t, "Spring", info.Season)
		assert.Equal(t, 0, info.DaysAway)
	})
}

func TestForYearAndAll(t *testing.T) {
	cal := NewDefault()

	y2024 := cal.ForYear(2024)
	require.Len(t, y2024, 12)
	assert.Equal(t, "Pongal", y2024[0].Name)
	assert.Equal(t, "Gurpurab", y2024[11].Name)

	all := cal.All()
	assert.Len(t, all, 12+11+11+12+11+10)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.Before(all[i-1].Date))
	}

	assert.Empty(t, cal.ForYear(1999))
}
