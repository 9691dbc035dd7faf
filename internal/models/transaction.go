package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType determines whether a transaction adds to or
// subtracts from the balance. Amounts are always stored positive,
// the sign is derived from the type at display time.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense entry.
//
// CategoryID is deliberately not a foreign key: deleting a category
// leaves referencing transactions in place and the API resolves the
// dangling reference to the "Uncategorized" placeholder.
type Transaction struct {
	DefaultModel
	UserID              uuid.UUID           `json:"userId" gorm:"index"`
	User                User                `json:"-"`
	Title               string              `json:"title"`
	Amount              decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Type                TransactionType     `json:"type"`
	Date                time.Time           `json:"date"`
	CategoryID          *uuid.UUID          `json:"categoryId" gorm:"index"`
	IsRecurring         bool                `json:"isRecurring"`
	RecurrenceFrequency RecurrenceFrequency `json:"recurrenceFrequency,omitempty"`
}

// BeforeSave validates the transaction and normalizes the date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.RecurrenceFrequency != "" && !t.RecurrenceFrequency.Valid() {
		return ErrFrequencyInvalid
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind sets the timezone for the date to UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return t.DefaultModel.AfterFind(tx)
}

// CategoryRef is the resolved category of a transaction. A transaction
// referencing a deleted or unknown category resolves to the
// "Uncategorized" placeholder instead of an error.
type CategoryRef struct {
	Known    bool
	Category Category
}

// Uncategorized is the placeholder category for transactions whose
// category reference does not resolve.
func Uncategorized() Category {
	return Category{Name: "Uncategorized", Color: "#9ca3af"}
}

// ResolveCategory looks up the category of the transaction.
func (t Transaction) ResolveCategory(db *gorm.DB) CategoryRef {
	if t.CategoryID == nil {
		return CategoryRef{Category: Uncategorized()}
	}

	var category Category
	err := db.First(&category, "id = ?", *t.CategoryID).Error
	if err != nil {
		return CategoryRef{Category: Uncategorized()}
	}

	return CategoryRef{Known: true, Category: category}
}
