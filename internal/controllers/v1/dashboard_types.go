package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyAmount is a monetary value together with its localized display
// string.
type MoneyAmount struct {
	Amount  decimal.Decimal `json:"amount" example:"1234.56"`  // The raw value
	Display string          `json:"display" example:"€ 1,234.56"` // The value formatted with the configured currency
}

// DashboardSummary are the headline figures for the dashboard.
type DashboardSummary struct {
	Income           MoneyAmount     `json:"income"`                          // Sum of all income transactions in the range
	Expenses         MoneyAmount     `json:"expenses"`                        // Sum of all expense transactions in the range
	Balance          MoneyAmount     `json:"balance"`                         // Income minus expenses
	SavingsRate      decimal.Decimal `json:"savingsRate" example:"12.5"`      // Percentage of income that was not spent. 0 if there is no income.
	TransactionCount int64           `json:"transactionCount" example:"127"`  // Number of transactions in the range
}

type DashboardSummaryResponse struct {
	Data  *DashboardSummary `json:"data"`                                             // The dashboard summary
	Error *string           `json:"error" example:"summing INCOME transactions failed"` // The error, if any occurred
}

// CategorySpend is the expense total of one category for the category
// breakdown. Expenses whose category no longer resolves are reported
// under the "Uncategorized" placeholder with a nil category ID.
type CategorySpend struct {
	CategoryID *uuid.UUID      `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // nil for the "Uncategorized" placeholder
	Name       string          `json:"name" example:"Groceries"`
	Color      string          `json:"color" example:"#22c55e"`
	Total      MoneyAmount     `json:"total"`
	Share      decimal.Decimal `json:"share" example:"23.1"` // Percentage of all expenses in the range
}

type CategoryBreakdownResponse struct {
	Data  []CategorySpend `json:"data"`                                               // Expense totals per category, highest first
	Error *string         `json:"error" example:"grouping expenses by category failed"` // The error, if any occurred
}

// DashboardQueryFilter limits the dashboard figures to a date range.
type DashboardQueryFilter struct {
	FromDate time.Time `form:"fromDate"` // Include transactions at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	ToDate   time.Time `form:"toDate"`   // Include transactions before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
}

// rangeBounds normalizes the filter dates to day boundaries in UTC.
// Zero times stay zero and mean an unbounded range.
func (f DashboardQueryFilter) rangeBounds() (from, until time.Time) {
	if !f.FromDate.IsZero() {
		from = time.Date(f.FromDate.Year(), f.FromDate.Month(), f.FromDate.Day(), 0, 0, 0, 0, time.UTC)
	}

	if !f.ToDate.IsZero() {
		until = time.Date(f.ToDate.Year(), f.ToDate.Month(), f.ToDate.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return from, until
}

// money pairs an amount with its display string in the given currency.
func money(unit currency.Unit, amount decimal.Decimal) MoneyAmount {
	p := message.NewPrinter(language.English)

	return MoneyAmount{
		Amount: amount,
		Display: p.Sprintf("%v %v", currency.Symbol(unit), number.Decimal(
			amount.InexactFloat64(),
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2),
		)),
	}
}
