package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds the dashboard aggregates. Either side may be nil, in
// which case that side is unbounded. To is inclusive of the whole day.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ItemOption is one selectable item for the entry form's autocomplete.
type ItemOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MonthlyTotal is one month's aggregated income and expense sums.
type MonthlyTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// SummaryReport aggregates a user's entries for the dashboard.
type SummaryReport struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Balance       decimal.Decimal `json:"balance"`
	MonthlyTotals []MonthlyTotal  `json:"monthly_totals"`
}

// ChartPoint is one item's total within a kind, for the breakdown chart.
type ChartPoint struct {
	ItemName string          `json:"item_name"`
	Total    decimal.Decimal `json:"total"`
}
