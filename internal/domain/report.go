package domain

import "time"

// Report is one aggregated sales row, computed server-side.
type Report struct {
	Date        string  `json:"date"`
	TotalOrders int     `json:"total_orders"`
	TotalSales  float64 `json:"total_sales,string"`
	TotalProfit float64 `json:"total_profit,string"`
}

// WithinDays reports whether the report date falls inside the last n days
// relative to now.
func (r Report) WithinDays(now time.Time, n int) bool {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return false
	}
	return !d.Before(now.AddDate(0, 0, -n))
}

// Coupon is a discount code owned by a user.
type Coupon struct {
	Code      string     `json:"code"`
	Value     float64    `json:"value,string"`
	IsUsed    bool       `json:"is_used"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// VisitorStats is the live-visitor count exposed by the backend.
type VisitorStats struct {
	LiveVisitors int `json:"live_visitors"`
}

// ReportPrefs are the persisted report filter preferences for a device.
type ReportPrefs struct {
	Type  string `json:"reportType"`
	Date  string `json:"reportDate"`
	Year  string `json:"reportYear"`
	Month string `json:"reportMonth"`
}

// DashboardStats is the admin dashboard snapshot. The source collections
// are fetched concurrently and individual failures degrade to empty
// defaults rather than failing the whole snapshot.
type DashboardStats struct {
	Users    []User    `json:"users"`
	Orders   []Order   `json:"orders"`
	Products []Product `json:"products"`
	Reports  []Report  `json:"reports"`

	TotalStock    int     `json:"total_stock"`
	LowStockCount int     `json:"low_stock_count"`
	TotalSales    float64 `json:"total_sales"`
	TotalProfit   float64 `json:"total_profit"`
	TotalOrders   int     `json:"total_orders"`
	RecentReports int     `json:"recent_reports"`
}
