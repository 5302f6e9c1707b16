// internal/forecast/policy.go
package forecast

// Policy collects every tunable constant of the allocation pipeline in one
// place so the numbers that drive restock decisions can be reviewed and
// adjusted without touching algorithm code.
type Policy struct {
	// Sales aggregation (lookback window split)
	RecencySplitDays int     // boundary between "recent" and "older" sales
	RecencyWeight    float64 // multiplier for quantities inside the boundary
	OlderWindowDays  int     // divisor for the older daily-rate proxy

	// Category growth clamp
	GrowthClampMin float64
	GrowthClampMax float64

	// Safety stock sizing
	DemandVariabilityRatio float64 // demand-proportional floor on stddev
	ZService95             float64
	ZService99             float64
	ZServiceDefault        float64
	DefaultLeadTimeDays    int
	SafetyStockFloorDays   int // floor = ceil(avgDaily * this)
	SafetyStockMinimum     int

	// Confidence scoring
	ConfidenceBase          int
	StrongSalesThreshold    float64
	StrongSalesBonus        int
	ModerateSalesThreshold  float64
	ModerateSalesBonus      int
	RecentSalesThreshold    float64
	RecentSalesBonus        int
	ConfidenceCap           int

	// Runway sentinel when a product has no measurable daily demand
	RunwaySentinelDays int

	// Chart assembly
	HistoryWindowDays int
}

// DefaultPolicy returns the production allocation policy.
func DefaultPolicy() Policy {
	return Policy{
		RecencySplitDays: 30,
		RecencyWeight:    2.0,
		OlderWindowDays:  60,

		GrowthClampMin: 0.3,
		GrowthClampMax: 3.0,

		DemandVariabilityRatio: 0.2,
		ZService95:             1.65,
		ZService99:             2.33,
		ZServiceDefault:        1.28,
		DefaultLeadTimeDays:    7,
		SafetyStockFloorDays:   3,
		SafetyStockMinimum:     5,

		ConfidenceBase:         70,
		StrongSalesThreshold:   50,
		StrongSalesBonus:       20,
		ModerateSalesThreshold: 20,
		ModerateSalesBonus:     10,
		RecentSalesThreshold:   10,
		RecentSalesBonus:       10,
		ConfidenceCap:          95,

		RunwaySentinelDays: 9999,

		HistoryWindowDays: 30,
	}
}

// ZScore maps a service level to its normal-distribution z value.
func (p Policy) ZScore(serviceLevel float64) float64 {
	switch serviceLevel {
	case 0.95:
		return p.ZService95
	case 0.99:
		return p.ZService99
	default:
		return p.ZServiceDefault
	}
}
