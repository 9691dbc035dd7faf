package v1

import (
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/models"
	ez_uuid "github.com/fintrack/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionEditable struct {
	Title string `json:"title" example:"Weekly groceries"` // A short description of the transaction

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction. Always positive, the sign follows from the type.

	Type                models.TransactionType     `json:"type" example:"EXPENSE"`                                    // Whether the transaction is an income or an expense
	Date                time.Time                  `json:"date" example:"2024-03-07T00:00:00Z"`                       // Date of the transaction. Time is currently only used for sorting
	CategoryID          *uuid.UUID                 `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	IsRecurring         bool                       `json:"isRecurring" example:"false" default:"false"`               // Whether this transaction was created by a recurring transaction
	RecurrenceFrequency models.RecurrenceFrequency `json:"recurrenceFrequency" example:"MONTHLY" default:""`          // Frequency of the recurrence, if any
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:              userID,
		Title:               editable.Title,
		Amount:              editable.Amount,
		Type:                editable.Type,
		Date:                editable.Date,
		CategoryID:          editable.CategoryID,
		IsRecurring:         editable.IsRecurring,
		RecurrenceFrequency: editable.RecurrenceFrequency,
	}
}

// TransactionCategory is the category of a transaction as resolved at
// read time. Transactions referencing a deleted category resolve to the
// "Uncategorized" placeholder, with a nil ID.
type TransactionCategory struct {
	ID    *uuid.UUID `json:"id" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // nil for the "Uncategorized" placeholder
	Name  string     `json:"name" example:"Groceries"`
	Color string     `json:"color" example:"#22c55e"`
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Category TransactionCategory `json:"category"`
	Links    TransactionLinks    `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, db *gorm.DB, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	ref := model.ResolveCategory(db)
	category := TransactionCategory{
		Name:  ref.Category.Name,
		Color: ref.Category.Color,
	}
	if ref.Known {
		category.ID = model.CategoryID
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Title:               model.Title,
			Amount:              model.Amount,
			Type:                model.Type,
			Date:                model.Date,
			CategoryID:          model.CategoryID,
			IsRecurring:         model.IsRecurring,
			RecurrenceFrequency: model.RecurrenceFrequency,
		},
		Category: category,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Query       string                 `form:"query" filterField:"false"`      // Title contains this string, case-insensitive
	Type        models.TransactionType `form:"type" filterField:"false"`       // Type of the transaction
	CategoryID  ez_uuid.UUID           `form:"categoryId" filterField:"false"` // ID of the category
	FromDate    time.Time              `form:"fromDate" filterField:"false"`   // Transactions at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	ToDate      time.Time              `form:"toDate" filterField:"false"`     // Transactions before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	IsRecurring bool                   `form:"isRecurring"`                    // Is the transaction recurring?
	Sort        string                 `form:"sort" filterField:"false"`       // Field to sort by. One of date, amount, title, createdAt. Defaults to createdAt.
	Order       string                 `form:"order" filterField:"false"`      // Sort order, asc or desc. Defaults to desc.
	Offset      uint                   `form:"offset" filterField:"false"`     // The offset of the first Transaction returned. Defaults to 0.
	Limit       int                    `form:"limit" filterField:"false"`      // Maximum number of transactions to return. Defaults to 50.
}

// model converts the filter to a database resource for exact matching.
// String and date fields are handled in the controller function.
func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		IsRecurring: f.IsRecurring,
	}
}
