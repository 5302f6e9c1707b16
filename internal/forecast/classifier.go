// internal/forecast/classifier.go
package forecast

import (
	"math"
	"sort"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
)

var urgencyRank = map[string]int{
	domain.UrgencyHigh:   0,
	domain.UrgencyMedium: 1,
	domain.UrgencyLow:    2,
}

// BuildRecommendations sizes safety stock per allocated product, classifies
// urgency and confidence, filters out well-stocked products, and ranks the
// remainder by severity then restock size.
func BuildRecommendations(p Policy, demands []ProductDemand, forecastDays, leadTimeDays int, serviceLevel float64) []domain.RestockRecommendation {
	recs := make([]domain.RestockRecommendation, 0, len(demands))

	for _, d := range demands {
		safetyStock := SafetyStock(p, d.PredictedDemand, forecastDays, d.RecentUnits, d.OlderUnits, leadTimeDays, serviceLevel)
		if rec, ok := classify(p, d, safetyStock, forecastDays); ok {
			recs = append(recs, rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := urgencyRank[recs[i].Urgency], urgencyRank[recs[j].Urgency]
		if ri != rj {
			return ri < rj
		}
		return recs[i].RecommendedRestock > recs[j].RecommendedRestock
	})

	return recs
}

// classify derives the recommendation for one product. The boolean result
// is the inclusion filter: products that need no restock, have ample
// runway and carry no urgency are silently excluded.
func classify(p Policy, d ProductDemand, safetyStock, forecastDays int) (domain.RestockRecommendation, bool) {
	targetStock := d.PredictedDemand + safetyStock
	restock := targetStock - d.Product.CurrentStock
	if restock < 0 {
		restock = 0
	}

	reorderPoint := safetyStock

	dailyDemand := float64(d.PredictedDemand) / float64(forecastDays)
	daysOfStock := p.RunwaySentinelDays
	if dailyDemand > 0 {
		daysOfStock = int(math.Floor(float64(d.Product.CurrentStock) / dailyDemand))
	}

	urgency := classifyUrgency(daysOfStock, d.Product.CurrentStock, reorderPoint, forecastDays)
	confidence := scoreConfidence(p, d)

	rec := domain.RestockRecommendation{
		ProductID:          d.Product.ID,
		ProductName:        d.Product.Name,
		Category:           d.Category,
		CurrentStock:       d.Product.CurrentStock,
		PredictedDemand:    d.PredictedDemand,
		RecommendedRestock: restock,
		SafetyStock:        safetyStock,
		DaysOfStock:        daysOfStock,
		Urgency:            urgency,
		Confidence:         confidence,
		GrowthFactor:       d.GrowthFactor,
		HistoricalSales:    d.RawUnits,
		SalesProportion:    d.SalesProportion,
	}

	include := restock > 0 || daysOfStock < forecastDays || urgency != domain.UrgencyLow
	return rec, include
}

// classifyUrgency applies the tier rules in order; the first match wins.
func classifyUrgency(daysOfStock, currentStock, reorderPoint, forecastDays int) string {
	runway := float64(daysOfStock)
	stock := float64(currentStock)
	reorder := float64(reorderPoint)
	horizon := float64(forecastDays)

	switch {
	case runway < horizon/3 || stock < reorder/2:
		return domain.UrgencyHigh
	case runway < horizon/2 || stock < reorder:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}

// scoreConfidence rates how much history backs the demand estimate.
func scoreConfidence(p Policy, d ProductDemand) int {
	confidence := p.ConfidenceBase

	if d.RawUnits > p.StrongSalesThreshold {
		confidence += p.StrongSalesBonus
	} else if d.RawUnits > p.ModerateSalesThreshold {
		confidence += p.ModerateSalesBonus
	}

	if d.RecentUnits > p.RecentSalesThreshold {
		confidence += p.RecentSalesBonus
	}

	if confidence > p.ConfidenceCap {
		confidence = p.ConfidenceCap
	}
	return confidence
}
