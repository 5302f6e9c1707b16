// internal/domain/models.go
package domain

import "time"

// SalesRecord is a single sale line item from the transaction log.
type SalesRecord struct {
	ProductID       string    `json:"product_id" db:"product_id"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	TransactionDate time.Time `json:"transaction_date" db:"transaction_date"`
}

// ProductCatalogEntry is a read-only snapshot of one catalog product.
type ProductCatalogEntry struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Category     string  `json:"category" db:"category"`
	CurrentStock int     `json:"stock" db:"stock"`
	SellingPrice float64 `json:"selling_price" db:"selling_price"`
}

// DailySales is one day of aggregated revenue, used for the chart history.
type DailySales struct {
	Date  time.Time `json:"date" db:"ds"`
	Total float64   `json:"total" db:"total"`
}

// ForecastPoint is one predicted day supplied by the external model.
type ForecastPoint struct {
	Date       time.Time `json:"date"`
	Predicted  float64   `json:"predicted"`
	LowerBound float64   `json:"lower"`
	UpperBound float64   `json:"upper"`
}

// CalendarEvent is a user-authored calendar entry (promo, holiday, closure).
type CalendarEvent struct {
	Date  time.Time `json:"date" db:"date"`
	Title string    `json:"title" db:"title"`
	Type  string    `json:"type" db:"type"`
}

// Holiday is a public holiday supplied by the external holiday API.
type Holiday struct {
	Date       time.Time `json:"date"`
	Title      string    `json:"title"`
	IsNational bool      `json:"is_national"`
}

// EventAnnotation groups all event titles that fall on one chart date.
type EventAnnotation struct {
	Date   string   `json:"date"`
	Titles []string `json:"titles"`
	Types  []string `json:"types"`
}

// Urgency tiers for restock recommendations, ordered by severity.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// RestockRecommendation is one ranked, per-product restock suggestion.
type RestockRecommendation struct {
	ProductID          string  `json:"productId"`
	ProductName        string  `json:"productName"`
	Category           string  `json:"category"`
	CurrentStock       int     `json:"currentStock"`
	PredictedDemand    int     `json:"predictedDemand"`
	RecommendedRestock int     `json:"recommendedRestock"`
	SafetyStock        int     `json:"safetyStock"`
	DaysOfStock        int     `json:"daysOfStock"`
	Urgency            string  `json:"urgency"`
	Confidence         int     `json:"confidence"`
	GrowthFactor       float64 `json:"categoryGrowthFactor"`
	HistoricalSales    float64 `json:"historicalSales"`
	SalesProportion    float64 `json:"salesProportion"`
}

// ChartPoint is one day on the unified history+forecast timeline.
// Historical is always a number inside the historical window (0 for days
// with no sales) and nil on forecast-only days; Predicted is the inverse.
type ChartPoint struct {
	Date        string   `json:"date"`
	Historical  *float64 `json:"historical"`
	Predicted   *float64 `json:"predicted"`
	LowerBound  *float64 `json:"lower"`
	UpperBound  *float64 `json:"upper"`
	IsHoliday   bool     `json:"isHoliday"`
	HolidayName *string  `json:"holidayName"`
}

// ForecastMeta carries the summary fields returned alongside the chart.
type ForecastMeta struct {
	AppliedGrowthFactor float64 `json:"appliedGrowthFactor"`
	HistoricalDays      int     `json:"historicalDays"`
	ForecastDays        int     `json:"forecastDays"`
	LastHistoricalDate  string  `json:"lastHistoricalDate,omitempty"`
	Accuracy            float64 `json:"accuracy"`
}

// PredictionResponse is the full bundle produced for one forecast request.
type PredictionResponse struct {
	Status           string                  `json:"status"`
	ChartData        []ChartPoint            `json:"chartData"`
	Recommendations  []RestockRecommendation `json:"recommendations"`
	EventAnnotations []EventAnnotation       `json:"eventAnnotations"`
	Meta             ForecastMeta            `json:"meta"`
}
