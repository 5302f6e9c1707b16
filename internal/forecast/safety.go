// internal/forecast/safety.go
package forecast

import "math"

// SafetyStock sizes the statistical buffer for one product. Demand
// variability is proxied by the spread between the recent and older daily
// rates blended with a demand-proportional floor, so low-volume products
// still get a non-trivial buffer.
func SafetyStock(p Policy, predictedDemand, forecastDays int, recentUnits, olderUnits float64, leadTimeDays int, serviceLevel float64) int {
	if forecastDays <= 0 {
		forecastDays = 1
	}
	if leadTimeDays <= 0 {
		leadTimeDays = p.DefaultLeadTimeDays
	}

	dailyDemand := float64(predictedDemand) / float64(forecastDays)

	recentDaily := recentUnits / float64(p.RecencySplitDays)
	olderDaily := olderUnits / float64(p.OlderWindowDays)
	stdDevDaily := math.Abs(recentDaily-olderDaily)/2 + dailyDemand*p.DemandVariabilityRatio

	z := p.ZScore(serviceLevel)
	computed := math.Ceil(z * stdDevDaily * math.Sqrt(float64(leadTimeDays)))
	if math.IsNaN(computed) || math.IsInf(computed, 0) {
		computed = 0
	}

	floor := math.Ceil(dailyDemand * float64(p.SafetyStockFloorDays))
	result := math.Max(computed, floor)
	if result < float64(p.SafetyStockMinimum) {
		result = float64(p.SafetyStockMinimum)
	}

	return int(result)
}
