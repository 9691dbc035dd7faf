package models_test

import (
	"github.com/fintrack/backend/internal/models"
)

// TestUserEmailUnique verifies that the unique constraint error is
// replaced with a user friendly one.
func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser(models.User{Email: "jane@example.com"})

	duplicate := models.User{Email: "jane@example.com"}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrEmailNotUnique)
}

// TestDatabaseClosedGeneralError verifies that low level database
// errors are replaced with a general error message.
func (suite *TestSuiteStandard) TestDatabaseClosedGeneralError() {
	suite.CloseDB()

	var user models.User
	err := models.DB.First(&user).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
