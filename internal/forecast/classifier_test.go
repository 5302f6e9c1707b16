package forecast

import (
	"testing"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demandFor(id string, stock, predicted int, raw, recent float64) ProductDemand {
	return ProductDemand{
		Product: domain.ProductCatalogEntry{
			ID:           id,
			Name:         id,
			Category:     "General",
			CurrentStock: stock,
		},
		Category:        "General",
		PredictedDemand: predicted,
		GrowthFactor:    1.0,
		RawUnits:        raw,
		RecentUnits:     recent,
	}
}

func TestOutOfStockProductIsHighUrgency(t *testing.T) {
	// 45 units of demand over 30 days against an empty shelf: safety stock
	// lands on the minimum 5, so the gap to the 50-unit target is the
	// whole recommendation.
	demands := []ProductDemand{demandFor("p1", 0, 45, 0, 0)}

	recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, 50, rec.RecommendedRestock)
	assert.Equal(t, 5, rec.SafetyStock)
	assert.Equal(t, 0, rec.DaysOfStock)
	assert.Equal(t, domain.UrgencyHigh, rec.Urgency)
}

func TestMediumUrgencyFromShortRunway(t *testing.T) {
	// Daily demand 2, stock 25: 12 days of runway sits between a third
	// and a half of the 30-day horizon.
	demands := []ProductDemand{demandFor("p1", 25, 60, 0, 0)}

	recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)

	require.Len(t, recs, 1)
	assert.Equal(t, 12, recs[0].DaysOfStock)
	assert.Equal(t, domain.UrgencyMedium, recs[0].Urgency)
}

func TestWellStockedProductExcluded(t *testing.T) {
	// Huge stock, tiny demand, no restock needed: the product must not
	// appear in the recommendation list at all.
	demands := []ProductDemand{demandFor("p1", 1000, 10, 0, 0)}

	recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)

	assert.Empty(t, recs)
}

func TestZeroDemandUsesRunwaySentinel(t *testing.T) {
	// Stock on hand but no predicted demand: runway is the sentinel, not
	// a division by zero.
	demands := []ProductDemand{demandFor("p1", 3, 0, 0, 0)}

	recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)

	require.Len(t, recs, 1)
	assert.Equal(t, DefaultPolicy().RunwaySentinelDays, recs[0].DaysOfStock)
	// Restock 2 (to the minimum safety buffer) still includes it.
	assert.Equal(t, 2, recs[0].RecommendedRestock)
}

func TestShorterRunwayNeverLessUrgent(t *testing.T) {
	// Three products share the same stock and land on the same minimum
	// safety buffer; only predicted demand differs. Runways of 5, 10 and
	// 18 days against a 30-day horizon must step down in severity, never
	// up.
	demands := []ProductDemand{
		demandFor("fast", 5, 30, 0, 0),
		demandFor("mid", 5, 15, 0, 0),
		demandFor("slow", 5, 8, 0, 0),
	}

	recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)

	require.Len(t, recs, 3)
	byID := make(map[string]domain.RestockRecommendation, len(recs))
	for _, r := range recs {
		byID[r.ProductID] = r
	}

	// Equal reorder points, strictly decreasing runway.
	require.Equal(t, byID["fast"].SafetyStock, byID["mid"].SafetyStock)
	require.Equal(t, byID["mid"].SafetyStock, byID["slow"].SafetyStock)
	require.Less(t, byID["fast"].DaysOfStock, byID["mid"].DaysOfStock)
	require.Less(t, byID["mid"].DaysOfStock, byID["slow"].DaysOfStock)

	assert.LessOrEqual(t, urgencyRank[byID["fast"].Urgency], urgencyRank[byID["mid"].Urgency])
	assert.LessOrEqual(t, urgencyRank[byID["mid"].Urgency], urgencyRank[byID["slow"].Urgency])
	assert.Equal(t, domain.UrgencyHigh, byID["fast"].Urgency)
	assert.Equal(t, domain.UrgencyMedium, byID["mid"].Urgency)
	assert.Equal(t, domain.UrgencyLow, byID["slow"].Urgency)
}

func TestRecommendationOrdering(t *testing.T) {
	demands := []ProductDemand{
		demandFor("medium", 25, 60, 0, 0), // medium urgency, restock 41
		demandFor("small-high", 0, 20, 0, 0),
		demandFor("big-high", 0, 100, 0, 0),
	}

	recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)

	require.Len(t, recs, 3)
	assert.Equal(t, "big-high", recs[0].ProductID)
	assert.Equal(t, "small-high", recs[1].ProductID)
	assert.Equal(t, "medium", recs[2].ProductID)
	assert.Equal(t, domain.UrgencyHigh, recs[0].Urgency)
	assert.Equal(t, domain.UrgencyMedium, recs[2].Urgency)
}

func TestConfidenceScoring(t *testing.T) {
	tests := []struct {
		name   string
		raw    float64
		recent float64
		want   int
	}{
		{"no history", 0, 0, 70},
		{"moderate sales", 25, 5, 80},
		{"strong sales", 60, 5, 90},
		{"capped", 60, 20, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			demands := []ProductDemand{demandFor("p1", 0, 30, tt.raw, tt.recent)}
			recs := BuildRecommendations(DefaultPolicy(), demands, 30, 7, 0.95)
			require.Len(t, recs, 1)
			assert.Equal(t, tt.want, recs[0].Confidence)
		})
	}
}
