// backend-go/internal/market/market.go
package market

import "github.com/dealersight/wheeler-intel/backend-go/internal/domain"

// Item categories.
const (
	CategoryEVTrends   = "ev_trends"
	CategoryCompetitor = "competitor"
	CategoryFuel       = "fuel"
	CategoryPolicy     = "policy"
	CategoryTrends     = "trends"
	CategoryMarket     = "market"
)

// Curated market intelligence. A production deployment would refresh this
// from a news API and Google Trends; the curated set keeps the surface
// stable for demos and tests.
var items = []domain.MarketItem{
	{
		Category: CategoryEVTrends,
		Title:    "EV Two-Wheeler Sales Grow 35% YoY in India",
		Summary: "Electric two-wheelers now account for 4.7% of total two-wheeler sales. " +
			"Ola Electric, Ather, and TVS iQube lead the segment. " +
			"Government FAME-II subsidies and rising petrol prices are key growth drivers.",
		ImpactScore: -0.15,
		Source:      "SIAM Industry Report",
		DataDate:    "2025-01-15",
		Tags:        []string{"EV", "market_share", "competitor"},
	},
	{
		Category: CategoryCompetitor,
		Title:    "Honda Launches Activa EV – Scooter Segment Competition Intensifies",
		Summary: "Honda's Activa EV launch at ₹1.17L targets the premium scooter segment. " +
			"Destini 125 and Maestro Edge 125 may see 5–8% demand impact in metro markets.",
		ImpactScore: -0.2,
		Source:      "AutoCar India",
		DataDate:    "2025-02-01",
		Tags:        []string{"competitor", "scooter", "Honda"},
	},
	{
		Category: CategoryFuel,
		Title:    "Petrol Prices Stable – No Revision Expected Before Elections",
		Summary: "Petrol prices stable at ₹95–103/litre across major cities. " +
			"Stable fuel prices are a positive for ICE two-wheeler demand. " +
			"Analysts expect no hike until Q3 2025.",
		ImpactScore: 0.05,
		Source:      "Economic Times",
		DataDate:    "2025-02-10",
		Tags:        []string{"fuel", "petrol", "demand"},
	},
	{
		Category: CategoryPolicy,
		Title:    "FAME-III Scheme Expected to Boost EV Adoption Further",
		Summary: "Government to extend FAME subsidies under FAME-III framework. " +
			"Expected to lower EV price by ₹10,000–15,000. " +
			"May accelerate ICE-to-EV shift in the 125cc+ segment.",
		ImpactScore: -0.10,
		Source:      "Ministry of Heavy Industries",
		DataDate:    "2025-01-28",
		Tags:        []string{"policy", "EV", "FAME"},
	},
	{
		Category: CategoryTrends,
		Title:    "Splendor Plus Search Trends Up 18% – Commuter Segment Buoyant",
		Summary: "Google Trends shows 18% YoY increase in searches for 'Splendor Plus price'. " +
			"Rural market demand recovery driving commuter bike interest. " +
			"Monsoon recovery expected to further boost H2 rural sales.",
		ImpactScore: 0.18,
		Source:      "Google Trends",
		DataDate:    "2025-02-15",
		Tags:        []string{"trends", "Splendor", "rural"},
	},
	{
		Category: CategoryMarket,
		Title:    "Two-Wheeler Industry Grows 8% YoY in Jan 2025",
		Summary: "Total industry volume at 1.7 million units in January 2025. " +
			"Motorcycles up 9%, scooters up 6%. Premium segment (>150cc) up 14%. " +
			"Rural market recovery remains key growth driver.",
		ImpactScore: 0.08,
		Source:      "SIAM",
		DataDate:    "2025-02-05",
		Tags:        []string{"industry", "growth", "SIAM"},
	},
	{
		Category: CategoryTrends,
		Title:    "Xtreme 160R Demand Rising Among Youth – Urban Markets",
		Summary: "Sport bike segment sees 22% growth. Xtreme 160R trending on social media. " +
			"Younger buyers (18–28) driving premium motorcycle demand. " +
			"Recommendation: Increase Xtreme 160R dispatch for Tier-1 cities.",
		ImpactScore: 0.22,
		Source:      "Social Media Analytics",
		DataDate:    "2025-02-12",
		Tags:        []string{"trends", "Xtreme", "youth"},
	},
}

// All returns every curated item.
func All() []domain.MarketItem {
	out := make([]domain.MarketItem, len(items))
	copy(out, items)
	return out
}

// ByCategory filters items to the given categories, keeping curated order.
func ByCategory(categories ...string) []domain.MarketItem {
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	out := make([]domain.MarketItem, 0, len(items))
	for _, item := range items {
		if want[item.Category] {
			out = append(out, item)
		}
	}
	return out
}

// Trends covers demand-trend and industry-volume items together, matching
// what the market dashboard shows on its landing tab.
func Trends() []domain.MarketItem {
	return ByCategory(CategoryTrends, CategoryMarket)
}

func CompetitorNews() []domain.MarketItem {
	return ByCategory(CategoryCompetitor)
}

func EVTrends() []domain.MarketItem {
	return ByCategory(CategoryEVTrends)
}

func FuelUpdates() []domain.MarketItem {
	return ByCategory(CategoryFuel)
}

func PolicyUpdates() []domain.MarketItem {
	return ByCategory(CategoryPolicy)
}
