// internal/forecast/allocator.go
package forecast

import (
	"math"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
)

// AllocationInput feeds one allocation pass.
type AllocationInput struct {
	// AggregateForecast is the sum of predicted values over the forecast
	// horizon, in revenue terms. When the catalog has no usable average
	// price it is treated directly as a unit figure.
	AggregateForecast float64
	ForecastDays      int
	Catalog           []domain.ProductCatalogEntry
	Snapshot          *SalesSnapshot

	// EventMultipliers optionally scales demand per category. No current
	// caller populates it; absent categories default to 1.0.
	EventMultipliers map[string]float64
}

// ProductDemand is one product's allocated share of the aggregate forecast.
type ProductDemand struct {
	Product         domain.ProductCatalogEntry
	Category        string
	PredictedDemand int
	SalesProportion float64
	GrowthFactor    float64
	WeightedUnits   float64
	RawUnits        float64
	RecentUnits     float64
	OlderUnits      float64
}

// Allocate converts the aggregate forecast into per-product unit demand
// using sales-proportion allocation. Every catalog product receives a
// nonzero share: weighted share first, raw share second, uniform
// 1/catalogSize for products with no history at all.
func Allocate(p Policy, in AllocationInput) []ProductDemand {
	if len(in.Catalog) == 0 {
		return nil
	}

	totalPredictedUnits := in.AggregateForecast
	if avgPrice := averageSellingPrice(in.Catalog); avgPrice > 0 {
		totalPredictedUnits = in.AggregateForecast / avgPrice
	}
	if math.IsNaN(totalPredictedUnits) || math.IsInf(totalPredictedUnits, 0) || totalPredictedUnits < 0 {
		totalPredictedUnits = 0
	}

	uniformShare := 1.0 / float64(len(in.Catalog))
	demands := make([]ProductDemand, 0, len(in.Catalog))

	for _, entry := range in.Catalog {
		category := entry.Category
		if category == "" {
			category = UncategorizedCategory
		}

		d := ProductDemand{
			Product:      entry,
			Category:     category,
			GrowthFactor: 1.0,
		}
		if agg, ok := in.Snapshot.Categories[category]; ok {
			d.GrowthFactor = agg.GrowthFactor
		}

		if ps, ok := in.Snapshot.Products[entry.ID]; ok {
			d.WeightedUnits = ps.WeightedUnits
			d.RawUnits = ps.RawUnits
			d.RecentUnits = ps.RecentUnits
			d.OlderUnits = ps.OlderUnits
		}

		switch {
		case in.Snapshot.TotalWeightedUnits > 0 && d.WeightedUnits > 0:
			d.SalesProportion = d.WeightedUnits / in.Snapshot.TotalWeightedUnits
		case in.Snapshot.TotalRawUnits > 0 && d.RawUnits > 0:
			d.SalesProportion = d.RawUnits / in.Snapshot.TotalRawUnits
		default:
			d.SalesProportion = uniformShare
		}

		multiplier := 1.0
		if in.EventMultipliers != nil {
			if m, ok := in.EventMultipliers[category]; ok && m > 0 {
				multiplier = m
			}
		}

		demand := totalPredictedUnits * d.SalesProportion * d.GrowthFactor * multiplier
		if math.IsNaN(demand) || math.IsInf(demand, 0) || demand < 0 {
			demand = 0
		}
		d.PredictedDemand = int(math.Ceil(demand))

		demands = append(demands, d)
	}

	return demands
}

func averageSellingPrice(catalog []domain.ProductCatalogEntry) float64 {
	if len(catalog) == 0 {
		return 0
	}
	var sum float64
	for _, entry := range catalog {
		sum += entry.SellingPrice
	}
	return sum / float64(len(catalog))
}
