package entity

import "time"

// ActivityItem is one entry of the dashboard feed, derived from a recent lead
// or quote.
type ActivityItem struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"` // "lead" or "quote"
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Date     time.Time `json:"date"`
}

// ProviderStats is the dashboard aggregate, recomputed on every request.
type ProviderStats struct {
	TotalLeads     int       `json:"totalLeads"`
	TotalQuotes    int       `json:"totalQuotes"`
	TotalAmount    float64   `json:"totalAmount"`
	TotalRevenue   float64   `json:"totalRevenue"`
	PendingLeads   int       `json:"pendingLeads"`
	RevenueGrowth  float64   `json:"revenueGrowth"`
	ConversionRate float64   `json:"conversionRate"`
	WeeklyData     []float64 `json:"weeklyData"`
	MonthlyData    []float64 `json:"monthlyData"`
	AnnualData     []float64 `json:"annualData"`
}
