package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	got := All()

	require.Len(t, got, 7)
	for _, item := range got {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Summary)
		assert.NotEmpty(t, item.Source)
		assert.NotEmpty(t, item.Tags)
		assert.GreaterOrEqual(t, item.ImpactScore, -0.2)
		assert.LessOrEqual(t, item.ImpactScore, 0.22)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	first[0].Title = "mutated"
	assert.NotEqual(t, "mutated", All()[0].Title)
}

func TestCategoryFilters(t *testing.T) {
	trends := Trends()
	require.Len(t, trends, 3)
	for _, item := range trends {
		assert.Contains(t, []string{CategoryTrends, CategoryMarket}, item.Category)
	}

	competitor := CompetitorNews()
	require.Len(t, competitor, 1)
	assert.Contains(t, competitor[0].Title, "Honda")

	ev := EVTrends()
	require.Len(t, ev, 1)
	assert.InDelta(t, -0.15, ev[0].ImpactScore, 0.0001)

	fuel := FuelUpdates()
	require.Len(t, fuel, 1)
	assert.Contains(t, fuel[0].Tags, "petrol")

	policy := PolicyUpdates()
	require.Len(t, policy, 1)
	assert.Contains(t, policy[0].Title, "FAME-III")
}

func TestByCategoryUnknown(t *testing.T) {
	assert.Empty(t, ByCategory("astrology"))
}
