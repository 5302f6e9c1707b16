// internal/domain/dashboard.go
package domain

// DashboardMetrics summarises today's trading for the store dashboard.
type DashboardMetrics struct {
	TodayRevenue      float64 `json:"today_revenue" db:"today_revenue"`
	TodayTransactions int     `json:"today_transactions" db:"today_transactions"`
	ItemsSold         int     `json:"items_sold" db:"items_sold"`
	LowStockCount     int     `json:"low_stock_count" db:"low_stock_count"`
}

// SalesChartPoint is one day of the dashboard revenue chart.
type SalesChartPoint struct {
	Date  string  `json:"date" db:"date"`
	Total float64 `json:"total" db:"total"`
}

// CategorySales is one slice of the per-category revenue breakdown.
type CategorySales struct {
	Category string  `json:"category" db:"category"`
	Revenue  float64 `json:"revenue" db:"revenue"`
	Units    int     `json:"units" db:"units"`
}
