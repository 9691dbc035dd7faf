package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurrenceFrequency is the interval at which a recurring
// transaction generates new transactions.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "DAILY"
	FrequencyWeekly  RecurrenceFrequency = "WEEKLY"
	FrequencyMonthly RecurrenceFrequency = "MONTHLY"
	FrequencyYearly  RecurrenceFrequency = "YEARLY"
)

// Valid reports whether the frequency is one of the known frequencies.
func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringTransaction is a template from which transactions are
// generated on a schedule. NextOccurrence is the date the next
// transaction will be created for.
type RecurringTransaction struct {
	DefaultModel
	UserID              uuid.UUID           `json:"userId" gorm:"index"`
	User                User                `json:"-"`
	Title               string              `json:"title"`
	Amount              decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Type                TransactionType     `json:"type"`
	CategoryID          *uuid.UUID          `json:"categoryId"`
	StartDate           time.Time           `json:"startDate"`
	EndDate             *time.Time          `json:"endDate"`
	RecurrenceFrequency RecurrenceFrequency `json:"recurrenceFrequency"`
	IsActive            bool                `json:"isActive"`
	NextOccurrence      time.Time           `json:"nextOccurrence"`
	Description         string              `json:"description,omitempty"`
}

// BeforeSave validates the recurring transaction and initializes
// NextOccurrence to the start date.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !r.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if !r.RecurrenceFrequency.Valid() {
		return ErrFrequencyInvalid
	}

	r.StartDate = r.StartDate.In(time.UTC)

	if r.EndDate != nil {
		end := r.EndDate.In(time.UTC)
		r.EndDate = &end

		if !end.After(r.StartDate) {
			return ErrEndBeforeStart
		}
	}

	if r.NextOccurrence.IsZero() {
		r.NextOccurrence = r.StartDate
	} else {
		r.NextOccurrence = r.NextOccurrence.In(time.UTC)
	}

	return nil
}

// AfterFind sets the timezone for all dates to UTC.
func (r *RecurringTransaction) AfterFind(tx *gorm.DB) error {
	r.StartDate = r.StartDate.In(time.UTC)
	r.NextOccurrence = r.NextOccurrence.In(time.UTC)

	if r.EndDate != nil {
		end := r.EndDate.In(time.UTC)
		r.EndDate = &end
	}

	return r.DefaultModel.AfterFind(tx)
}
