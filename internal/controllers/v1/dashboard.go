package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/text/currency"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup, cfg config.Config) {
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		unit = currency.EUR
	}

	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetDashboardSummary(unit))

	r.OPTIONS("/categories", httputil.OptionsGet)
	r.GET("/categories", GetCategoryBreakdown(unit))
}

// GetDashboardSummary returns the headline figures
//
//	@Summary		Dashboard summary
//	@Description	Returns income, expenses, balance and savings rate for the authenticated user, limited to the date range if one is given
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	DashboardSummaryResponse
//	@Failure		400	{object}	DashboardSummaryResponse
//	@Failure		500	{object}	DashboardSummaryResponse
//	@Router			/v1/dashboard/summary [get]
//	@Security		Bearer
//	@Param			fromDate	query	string	false	"Include transactions at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
//	@Param			toDate		query	string	false	"Include transactions before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
func GetDashboardSummary(unit currency.Unit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter DashboardQueryFilter
		if err := c.Bind(&filter); err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, DashboardSummaryResponse{
				Error: &s,
			})
			return
		}

		userID := auth.UserID(c)
		from, until := filter.rangeBounds()

		income, err := models.TransactionsSum(models.DB, userID, models.TypeIncome, from, until)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, DashboardSummaryResponse{
				Error: &s,
			})
			return
		}

		expenses, err := models.TransactionsSum(models.DB, userID, models.TypeExpense, from, until)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, DashboardSummaryResponse{
				Error: &s,
			})
			return
		}

		q := models.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)
		if !from.IsZero() {
			q = q.Where("date >= ?", from)
		}
		if !until.IsZero() {
			q = q.Where("date <= ?", until)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, DashboardSummaryResponse{
				Error: &s,
			})
			return
		}

		balance := income.Sub(expenses)

		// No income means no savings rate, not a division by zero
		savingsRate := decimal.Zero
		if income.IsPositive() {
			savingsRate = balance.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
		}

		c.JSON(http.StatusOK, DashboardSummaryResponse{
			Data: &DashboardSummary{
				Income:           money(unit, income),
				Expenses:         money(unit, expenses),
				Balance:          money(unit, balance),
				SavingsRate:      savingsRate,
				TransactionCount: count,
			},
		})
	}
}

// GetCategoryBreakdown returns the expense totals per category
//
//	@Summary		Category breakdown
//	@Description	Returns the expense totals per category for the authenticated user, highest first. Expenses referencing a deleted category are reported under the "Uncategorized" placeholder.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	CategoryBreakdownResponse
//	@Failure		400	{object}	CategoryBreakdownResponse
//	@Failure		500	{object}	CategoryBreakdownResponse
//	@Router			/v1/dashboard/categories [get]
//	@Security		Bearer
//	@Param			fromDate	query	string	false	"Include transactions at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
//	@Param			toDate		query	string	false	"Include transactions before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
func GetCategoryBreakdown(unit currency.Unit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter DashboardQueryFilter
		if err := c.Bind(&filter); err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, CategoryBreakdownResponse{
				Error: &s,
			})
			return
		}

		userID := auth.UserID(c)
		from, until := filter.rangeBounds()

		totals, err := models.ExpenseTotalsByCategory(models.DB, userID, from, until)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, CategoryBreakdownResponse{
				Error: &s,
			})
			return
		}

		// Resolve the category IDs. Dangling references all collapse
		// into a single "Uncategorized" bucket.
		uncategorized := decimal.Zero
		data := make([]CategorySpend, 0)
		sum := decimal.Zero

		for _, total := range totals {
			sum = sum.Add(total.Total)

			var category models.Category
			if total.CategoryID == nil ||
				models.DB.First(&category, "id = ? AND user_id = ?", *total.CategoryID, userID).Error != nil {
				uncategorized = uncategorized.Add(total.Total)
				continue
			}

			data = append(data, CategorySpend{
				CategoryID: total.CategoryID,
				Name:       category.Name,
				Color:      category.Color,
				Total:      money(unit, total.Total),
			})
		}

		if uncategorized.IsPositive() {
			placeholder := models.Uncategorized()
			data = append(data, CategorySpend{
				Name:  placeholder.Name,
				Color: placeholder.Color,
				Total: money(unit, uncategorized),
			})
		}

		for i := range data {
			if sum.IsPositive() {
				data[i].Share = data[i].Total.Amount.Div(sum).Mul(decimal.NewFromInt(100)).Round(2)
			}
		}

		slices.SortFunc(data, func(a, b CategorySpend) int {
			return b.Total.Amount.Cmp(a.Total.Amount)
		})

		c.JSON(http.StatusOK, CategoryBreakdownResponse{Data: data})
	}
}
