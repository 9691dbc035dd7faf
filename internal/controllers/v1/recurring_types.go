package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecurringTransactionEditable struct {
	Title string `json:"title" example:"Rent"` // A short description of the generated transactions

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"950" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for each generated transaction

	Type                models.TransactionType     `json:"type" example:"EXPENSE"`                                    // Whether the generated transactions are income or expense
	CategoryID          *uuid.UUID                 `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category for generated transactions
	StartDate           time.Time                  `json:"startDate" example:"2024-03-01T00:00:00Z"`                  // Date of the first occurrence
	EndDate             *time.Time                 `json:"endDate" example:"2025-03-01T00:00:00Z"`                    // Optional date after which no more transactions are generated. Must be after the start date.
	RecurrenceFrequency models.RecurrenceFrequency `json:"recurrenceFrequency" example:"MONTHLY"`                     // How often a transaction is generated
	IsActive            bool                       `json:"isActive" example:"true" default:"true"`                    // Inactive recurring transactions are skipped by the scheduler
	Description         string                     `json:"description" example:"Apartment rent" default:""`           // A longer description
}

// model returns the database resource for the API representation of the editable fields
func (editable RecurringTransactionEditable) model(userID uuid.UUID) models.RecurringTransaction {
	return models.RecurringTransaction{
		UserID:              userID,
		Title:               editable.Title,
		Amount:              editable.Amount,
		Type:                editable.Type,
		CategoryID:          editable.CategoryID,
		StartDate:           editable.StartDate,
		EndDate:             editable.EndDate,
		RecurrenceFrequency: editable.RecurrenceFrequency,
		IsActive:            editable.IsActive,
		Description:         editable.Description,
	}
}

type RecurringTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring-transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The recurring transaction itself
}

// RecurringTransaction is the representation of a RecurringTransaction in API v1.
type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	NextOccurrence time.Time                 `json:"nextOccurrence" example:"2024-04-01T00:00:00Z"` // Date the next transaction will be generated for
	Links          RecurringTransactionLinks `json:"links"`
}

// newRecurringTransaction returns the API v1 representation of the resource
func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction) RecurringTransaction {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			Title:               model.Title,
			Amount:              model.Amount,
			Type:                model.Type,
			CategoryID:          model.CategoryID,
			StartDate:           model.StartDate,
			EndDate:             model.EndDate,
			RecurrenceFrequency: model.RecurrenceFrequency,
			IsActive:            model.IsActive,
			Description:         model.Description,
		},
		NextOccurrence: model.NextOccurrence,
		Links: RecurringTransactionLinks{
			Self: fmt.Sprintf("%s/v1/recurring-transactions/%s", url, model.ID),
		},
	}
}

type RecurringTransactionListResponse struct {
	Data  []RecurringTransaction `json:"data"`                                                          // List of recurring transactions
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTransactionCreateResponse struct {
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of created recurring transactions
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, RecurringTransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // The recurring transaction data, if creation was successful
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this recurring transaction
}

type RecurringTransactionQueryFilter struct {
	Type     models.TransactionType `form:"type" filterField:"false"` // Type of the recurring transaction
	IsActive bool                   `form:"isActive"`                 // Is the recurring transaction active?
}

// model converts the filter to a database resource for exact matching.
func (f RecurringTransactionQueryFilter) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		IsActive: f.IsActive,
	}
}
