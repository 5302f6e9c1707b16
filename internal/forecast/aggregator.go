// internal/forecast/aggregator.go
package forecast

import (
	"math"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
)

// ProductSales holds one product's aggregated unit sales over the lookback
// window, split at the recency boundary.
type ProductSales struct {
	WeightedUnits float64
	RawUnits      float64
	RecentUnits   float64
	OlderUnits    float64
}

// CategoryAggregate holds per-category sales totals and the growth factor
// derived from the recent-vs-older split.
type CategoryAggregate struct {
	Category      string
	RecentUnits   float64
	OlderUnits    float64
	RecentRevenue float64
	OlderRevenue  float64
	ProductCount  int
	GrowthFactor  float64
}

// SalesSnapshot is the output of one aggregation pass. It is recomputed
// fresh for every request; nothing here survives across requests.
type SalesSnapshot struct {
	Products           map[string]*ProductSales
	Categories         map[string]*CategoryAggregate
	TotalWeightedUnits float64
	TotalRawUnits      float64
	LookbackDays       int
}

// UncategorizedCategory is assigned to sales of products missing from the
// catalog snapshot.
const UncategorizedCategory = "Uncategorized"

// Aggregate splits the lookback window at the recency boundary and produces
// per-product and per-category totals. Quantities inside the most recent
// RecencySplitDays are weighted by RecencyWeight; recent/older unit counts
// stay unweighted. Date comparisons happen on store-local (WIB) date keys.
func Aggregate(p Policy, catalog []domain.ProductCatalogEntry, sales []domain.SalesRecord, now time.Time, lookbackDays int) *SalesSnapshot {
	snap := &SalesSnapshot{
		Products:     make(map[string]*ProductSales),
		Categories:   make(map[string]*CategoryAggregate),
		LookbackDays: lookbackDays,
	}

	categoryOf := make(map[string]string, len(catalog))
	for _, entry := range catalog {
		cat := entry.Category
		if cat == "" {
			cat = UncategorizedCategory
		}
		categoryOf[entry.ID] = cat

		agg, ok := snap.Categories[cat]
		if !ok {
			agg = &CategoryAggregate{Category: cat, GrowthFactor: 1.0}
			snap.Categories[cat] = agg
		}
		agg.ProductCount++
	}

	// ISO date keys sort lexicographically, so the recency check is a
	// plain string comparison after the WIB conversion.
	boundaryKey := timeutil.DateKey(now.AddDate(0, 0, -p.RecencySplitDays))
	windowKey := timeutil.DateKey(now.AddDate(0, 0, -lookbackDays))

	for _, sale := range sales {
		saleKey := timeutil.DateKey(sale.TransactionDate)
		if saleKey < windowKey {
			continue
		}

		qty := float64(sale.Quantity)
		revenue := qty * sale.UnitPrice
		recent := saleKey >= boundaryKey

		ps, ok := snap.Products[sale.ProductID]
		if !ok {
			ps = &ProductSales{}
			snap.Products[sale.ProductID] = ps
		}

		ps.RawUnits += qty
		snap.TotalRawUnits += qty
		if recent {
			ps.WeightedUnits += qty * p.RecencyWeight
			snap.TotalWeightedUnits += qty * p.RecencyWeight
			ps.RecentUnits += qty
		} else {
			ps.WeightedUnits += qty
			snap.TotalWeightedUnits += qty
			ps.OlderUnits += qty
		}

		cat, ok := categoryOf[sale.ProductID]
		if !ok {
			cat = UncategorizedCategory
		}
		agg, ok := snap.Categories[cat]
		if !ok {
			agg = &CategoryAggregate{Category: cat, GrowthFactor: 1.0}
			snap.Categories[cat] = agg
		}
		if recent {
			agg.RecentUnits += qty
			agg.RecentRevenue += revenue
		} else {
			agg.OlderUnits += qty
			agg.OlderRevenue += revenue
		}
	}

	estimateCategoryGrowth(p, snap)

	return snap
}

// estimateCategoryGrowth derives a bounded growth multiplier per category
// from the recent-vs-older daily rates. A zero older rate means no signal,
// which maps to the neutral 1.0 rather than a runaway ratio.
func estimateCategoryGrowth(p Policy, snap *SalesSnapshot) {
	olderDays := snap.LookbackDays - p.RecencySplitDays

	for _, agg := range snap.Categories {
		if olderDays <= 0 {
			agg.GrowthFactor = 1.0
			continue
		}

		recentRate := agg.RecentUnits / float64(p.RecencySplitDays)
		olderRate := agg.OlderUnits / float64(olderDays)
		if olderRate <= 0 {
			agg.GrowthFactor = 1.0
			continue
		}

		growth := recentRate / olderRate
		if math.IsNaN(growth) || math.IsInf(growth, 0) {
			growth = 1.0
		}
		agg.GrowthFactor = clamp(growth, p.GrowthClampMin, p.GrowthClampMax)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
