package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDashboardSummary() {
	headers := registerTestUser(suite.T())

	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Salary", Amount: decimal.NewFromFloat(1000), Type: models.TypeIncome})
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Groceries", Amount: decimal.NewFromFloat(150), Type: models.TypeExpense})
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Utilities", Amount: decimal.NewFromFloat(100), Type: models.TypeExpense})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/summary", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Income.Amount.Equal(decimal.NewFromFloat(1000)), "Income is %s", response.Data.Income.Amount)
	assert.True(suite.T(), response.Data.Expenses.Amount.Equal(decimal.NewFromFloat(250)), "Expenses are %s", response.Data.Expenses.Amount)
	assert.True(suite.T(), response.Data.Balance.Amount.Equal(decimal.NewFromFloat(750)), "Balance is %s", response.Data.Balance.Amount)
	assert.True(suite.T(), response.Data.SavingsRate.Equal(decimal.NewFromFloat(75)), "Savings rate is %s", response.Data.SavingsRate)
	assert.Equal(suite.T(), int64(3), response.Data.TransactionCount)

	// Formatted amounts carry the default currency symbol
	assert.Contains(suite.T(), response.Data.Income.Display, "1,000")
}

// TestDashboardSummaryNoIncome verifies that the savings rate is
// defined as zero when there is no income.
func (suite *TestSuiteStandard) TestDashboardSummaryNoIncome() {
	headers := registerTestUser(suite.T())

	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Groceries", Amount: decimal.NewFromFloat(50), Type: models.TypeExpense})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/summary", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.SavingsRate.IsZero())
	assert.True(suite.T(), response.Data.Balance.Amount.Equal(decimal.NewFromFloat(-50)))
}

func (suite *TestSuiteStandard) TestDashboardSummaryDateRange() {
	headers := registerTestUser(suite.T())

	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "March salary", Amount: decimal.NewFromFloat(1000), Type: models.TypeIncome, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "April salary", Amount: decimal.NewFromFloat(1200), Type: models.TypeIncome, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/summary?fromDate=2024-03-01T00:00:00Z&toDate=2024-03-31T00:00:00Z", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Income.Amount.Equal(decimal.NewFromFloat(1000)), "Income is %s", response.Data.Income.Amount)
	assert.Equal(suite.T(), int64(1), response.Data.TransactionCount)
}

func (suite *TestSuiteStandard) TestDashboardCategoryBreakdown() {
	headers := registerTestUser(suite.T())

	groceries := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Groceries", Color: "#22c55e", Type: models.TypeExpense})
	restaurants := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Restaurants", Color: "#f97316", Type: models.TypeExpense})

	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Supermarket", Amount: decimal.NewFromFloat(300), Type: models.TypeExpense, CategoryID: &groceries.Data.ID})
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Dinner", Amount: decimal.NewFromFloat(100), Type: models.TypeExpense, CategoryID: &restaurants.Data.ID})
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Mystery", Amount: decimal.NewFromFloat(100), Type: models.TypeExpense})

	// Income must not show up in the breakdown
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Salary", Amount: decimal.NewFromFloat(2800), Type: models.TypeIncome})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/categories", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryBreakdownResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)

	// Sorted by total, highest first
	assert.Equal(suite.T(), "Groceries", response.Data[0].Name)
	assert.True(suite.T(), response.Data[0].Total.Amount.Equal(decimal.NewFromFloat(300)))
	assert.True(suite.T(), response.Data[0].Share.Equal(decimal.NewFromFloat(60)), "Share is %s", response.Data[0].Share)

	// The transaction without category resolves to the placeholder
	names := []string{response.Data[0].Name, response.Data[1].Name, response.Data[2].Name}
	assert.Contains(suite.T(), names, "Uncategorized")

	for _, spend := range response.Data {
		if spend.Name == "Uncategorized" {
			assert.Nil(suite.T(), spend.CategoryID)
			assert.True(suite.T(), spend.Total.Amount.Equal(decimal.NewFromFloat(100)))
		}
	}
}

// TestDashboardCategoryBreakdownDeletedCategory verifies that expenses
// of a deleted category are counted under the placeholder.
func (suite *TestSuiteStandard) TestDashboardCategoryBreakdownDeletedCategory() {
	headers := registerTestUser(suite.T())

	category := createTestCategory(suite.T(), headers, v1.CategoryEditable{Name: "Ephemeral", Color: "#ff0000", Type: models.TypeExpense})
	createTestTransaction(suite.T(), headers, v1.TransactionEditable{Title: "Orphaned", Amount: decimal.NewFromFloat(42), Type: models.TypeExpense, CategoryID: &category.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard/categories", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryBreakdownResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Uncategorized", response.Data[0].Name)
	assert.Nil(suite.T(), response.Data[0].CategoryID)
	assert.True(suite.T(), response.Data[0].Total.Amount.Equal(decimal.NewFromFloat(42)))
	assert.True(suite.T(), response.Data[0].Share.Equal(decimal.NewFromFloat(100)))
}
