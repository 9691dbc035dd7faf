package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAmountNotPositive      = errors.New("the amount must be positive")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrFrequencyInvalid       = errors.New("the recurrence frequency must be DAILY, WEEKLY, MONTHLY or YEARLY")
	ErrColorInvalid           = errors.New("the color must be a hex string like #1a2b3c")
	ErrEndBeforeStart         = errors.New("the end date must be after the start date")

	ErrCategoryNameNotUnique = errors.New("a category with this name and type already exists")
	ErrEmailNotUnique        = errors.New("this email address is already registered")
)
