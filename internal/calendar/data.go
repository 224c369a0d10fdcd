package calendar

import "time"

// festivalEntry is the compact form the curated table is written in; the
// Calendar expands entries into domain.FestivalEvent values at build time.
type festivalEntry struct {
	name   string
	month  time.Month
	day    int
	ftype  string
	region string
	impact int
}

// Curated festival dates 2021-2026. Impact is the peak demand uplift in
// percent observed for the festival day; dates follow the Indian lunisolar
// calendar and therefore move year to year.
var festivalTable = map[int][]festivalEntry{
	2021: {
		{"Pongal", time.January, 14, "regional", "South India", 30},
		{"Maha Shivratri", time.March, 11, "auspicious", "All India", 10},
		{"Holi", time.March, 29, "national", "All India", 15},
		{"Eid ul-Fitr", time.May, 13, "national", "All India", 20},
		{"Akshaya Tritiya", time.May, 14, "auspicious", "All India", 25},
		{"Onam", time.August, 21, "regional", "Kerala", 35},
		{"Navratri", time.October, 7, "national", "All India", 25},
		{"Dussehra", time.October, 15, "national", "All India", 30},
		{"Dhanteras", time.November, 2, "national", "All India", 50},
		{"Diwali", time.November, 4, "national", "All India", 60},
		{"Bhai Dooj", time.November, 6, "national", "All India", 20},
		{"Gurpurab", time.November, 19, "regional", "North India", 15},
	},
	2022: {
		{"Pongal", time.January, 14, "regional", "South India", 30},
		{"Maha Shivratri", time.March, 1, "auspicious", "All India", 10},
		{"Holi", time.March, 18, "national", "All India", 15},
		{"Eid ul-Fitr", time.May, 2, "national", "All India", 20},
		{"Akshaya Tritiya", time.May, 3, "auspicious", "All India", 25},
		{"Onam", time.September, 8, "regional", "Kerala", 35},
		{"Navratri", time.September, 26, "national", "All India", 25},
		{"Dussehra", time.October, 5, "national", "All India", 30},
		{"Dhanteras", time.October, 22, "national", "All India", 50},
		{"Diwali", time.October, 24, "national", "All India", 60},
		{"Bhai Dooj", time.October, 26, "national", "All India", 20},
	},
	2023: {
		{"Pongal", time.January, 14, "regional", "South India", 30},
		{"Maha Shivratri", time.February, 18, "auspicious", "All India", 10},
		{"Holi", time.March, 8, "national", "All India", 15},
		{"Eid ul-Fitr", time.April, 21, "national", "All India", 20},
		{"Akshaya Tritiya", time.April, 22, "auspicious", "All India", 25},
		{"Onam", time.August, 29, "regional", "Kerala", 35},
		{"Navratri", time.October, 15, "national", "All India", 25},
		{"Dussehra", time.October, 24, "national", "All India", 30},
		{"Dhanteras", time.November, 10, "national", "All India", 50},
		{"Diwali", time.November, 12, "national", "All India", 60},
		{"Bhai Dooj", time.November, 15, "national", "All India", 20},
	},
	2024: {
		{"Pongal", time.January, 15, "regional", "South India", 30},
		{"Maha Shivratri", time.March, 8, "auspicious", "All India", 10},
		{"Holi", time.March, 25, "national", "All India", 15},
		{"Eid ul-Fitr", time.April, 10, "national", "All India", 20},
		{"Akshaya Tritiya", time.May, 10, "auspicious", "All India", 25},
		{"Onam", time.September, 5, "regional", "Kerala", 35},
		{"Navratri", time.October, 3, "national", "All India", 25},
		{"Dussehra", time.October, 12, "national", "All India", 30},
		{"Dhanteras", time.October, 29, "national", "All India", 50},
		{"Diwali", time.November, 1, "national", "All India", 60},
		{"Bhai Dooj", time.November, 3, "national", "All India", 20},
		{"Gurpurab", time.November, 15, "regional", "North India", 15},
	},
	2025: {
		{"Pongal", time.January, 14, "regional", "South India", 30},
		{"Maha Shivratri", time.February, 26, "auspicious", "All India", 10},
		{"Holi", time.March, 14, "national", "All India", 15},
		{"Eid ul-Fitr", time.March, 30, "national", "All India", 20},
		{"Akshaya Tritiya", time.April, 30, "auspicious", "All India", 25},
		{"Onam", time.August, 27, "regional", "Kerala", 35},
		{"Navratri", time.September, 22, "national", "All India", 25},
		{"Dussehra", time.October, 2, "national", "All India", 30},
		{"Dhanteras", time.October, 18, "national", "All India", 50},
		{"Diwali", time.October, 20, "national", "All India", 60},
		{"Bhai Dooj", time.October, 22, "national", "All India", 20},
	},
	2026: {
		{"Pongal", time.January, 14, "regional", "South India", 30},
		{"Maha Shivratri", time.February, 15, "auspicious", "All India", 10},
		{"Holi", time.March, 3, "national", "All India", 15},
		{"Eid ul-Fitr", time.March, 20, "national", "All India", 20},
		{"Akshaya Tritiya", time.April, 20, "auspicious", "All India", 25},
		{"Onam", time.August, 17, "regional", "Kerala", 35},
		{"Navratri", time.October, 11, "national", "All India", 25},
		{"Dussehra", time.October, 20, "national", "All India", 30},
		{"Dhanteras", time.November, 6, "national", "All India", 50},
		{"Diwali", time.November, 8, "national", "All India", 60},
	},
}

// Pre-festival demand ramps. Dealers start stocking Diwali and Onam weeks
// in advance; shorter festivals spike closer to the date.
var preWindowTable = map[string]int{
	"Diwali":          21,
	"Dhanteras":       14,
	"Dussehra":        14,
	"Navratri":        10,
	"Akshaya Tritiya": 14,
	"Onam":            21,
	"Pongal":          10,
}

// Monthly demand shape used by the forecaster. October and November carry
// the festive buying peak, monsoon months sag.
var seasonalTable = map[time.Month]float64{
	time.January:   0.85,
	time.February:  0.90,
	time.March:     1.10,
	time.April:     1.05,
	time.May:       0.95,
	time.June:      0.80,
	time.July:      0.75,
	time.August:    0.85,
	time.September: 1.00,
	time.October:   1.40,
	time.November:  1.25,
	time.December:  1.10,
}

// MarriageSeason is one recurring wedding window with its merchandising
// guidance.
type MarriageSeason struct {
	Name      string
	Months    []time.Month
	UpliftPct int
	Colours   []string
	Types     []string
}

var marriageSeasonTable = []MarriageSeason{
	{
		Name:      "Winter",
		Months:    []time.Month{time.November, time.December},
		UpliftPct: 25,
		Colours:   []string{"Pearl White", "Sports Red", "Imperial Blue"},
		Types:     []string{"scooter", "premium_bike"},
	},
	{
		Name:      "Spring",
		Months:    []time.Month{time.February, time.March, time.April, time.May},
		UpliftPct: 20,
		Colours:   []string{"Pearl White", "Silver", "Sports Red"},
		Types:     []string{"scooter", "standard_bike"},
	},
}
