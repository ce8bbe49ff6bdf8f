package core

import "time"

// SummaryReport is the filtered treasury overview for one owner.
type SummaryReport struct {
	Period     Period              `json:"period"`
	Category   string              `json:"category"`
	Entries    Money               `json:"entries"`
	Exits      Money               `json:"exits"`
	Balance    Money               `json:"balance"`
	Categories []CategoryBreakdown `json:"categories"`
}

// MonthlyReport is the monthly financial movement sheet: the daily cash
// lines, the footer totals and the month's expenses.
type MonthlyReport struct {
	OwnerID     string        `json:"ownerId"`
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	Sheet       MonthlySheet  `json:"sheet"`
	Records     []DailyRecord `json:"records"`
	Totals      SheetTotals   `json:"totals"`
	Expenses    Money         `json:"expenses"`
	Balance     Money         `json:"balance"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// DashboardMetrics is the landing page snapshot for one owner.
type DashboardMetrics struct {
	Entries    Money                            `json:"entries"`
	Exits      Money                            `json:"exits"`
	Balance    Money                            `json:"balance"`
	Offerings  map[OfferingKind]OfferingSummary `json:"offerings"`
	TodayCount *CashCount                       `json:"todayCount,omitempty"`
	Recent     []Transaction                    `json:"recent"`
}
