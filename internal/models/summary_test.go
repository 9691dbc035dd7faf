package models_test

import (
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionsSum() {
	user := suite.createTestUser(models.User{})
	otherUser := suite.createTestUser(models.User{})

	march := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(1000), Type: models.TypeIncome, Date: march})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(200), Type: models.TypeIncome, Date: april})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(150), Type: models.TypeExpense, Date: march})
	_ = suite.createTestTransaction(models.Transaction{UserID: otherUser.ID, Amount: decimal.NewFromFloat(99), Type: models.TypeIncome, Date: march})

	income, err := models.TransactionsSum(models.DB, user.ID, models.TypeIncome, time.Time{}, time.Time{})
	suite.Require().Nil(err)
	suite.Assert().True(income.Equal(decimal.NewFromFloat(1200)), "Income is %s", income)

	expenses, err := models.TransactionsSum(models.DB, user.ID, models.TypeExpense, time.Time{}, time.Time{})
	suite.Require().Nil(err)
	suite.Assert().True(expenses.Equal(decimal.NewFromFloat(150)), "Expenses are %s", expenses)

	// Limited to March
	income, err = models.TransactionsSum(models.DB, user.ID, models.TypeIncome,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	)
	suite.Require().Nil(err)
	suite.Assert().True(income.Equal(decimal.NewFromFloat(1000)), "Income is %s", income)
}

// TestTransactionsSumEmpty verifies that the sum over no transactions
// is zero, not an error.
func (suite *TestSuiteStandard) TestTransactionsSumEmpty() {
	user := suite.createTestUser(models.User{})

	sum, err := models.TransactionsSum(models.DB, user.ID, models.TypeIncome, time.Time{}, time.Time{})
	suite.Require().Nil(err)
	suite.Assert().True(sum.IsZero())
}

func (suite *TestSuiteStandard) TestExpenseTotalsByCategory() {
	user := suite.createTestUser(models.User{})
	groceries := suite.createTestCategory(models.Category{UserID: user.ID, Name: "Groceries"})

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(100), Type: models.TypeExpense, CategoryID: &groceries.ID})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(50), Type: models.TypeExpense, CategoryID: &groceries.ID})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(25), Type: models.TypeExpense})

	// Income must not be grouped
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Amount: decimal.NewFromFloat(1000), Type: models.TypeIncome})

	totals, err := models.ExpenseTotalsByCategory(models.DB, user.ID, time.Time{}, time.Time{})
	suite.Require().Nil(err)
	suite.Require().Len(totals, 2)

	for _, total := range totals {
		if total.CategoryID == nil {
			suite.Assert().True(total.Total.Equal(decimal.NewFromFloat(25)), "Uncategorized total is %s", total.Total)
		} else {
			suite.Assert().Equal(groceries.ID, *total.CategoryID)
			suite.Assert().True(total.Total.Equal(decimal.NewFromFloat(150)), "Groceries total is %s", total.Total)
		}
	}
}
