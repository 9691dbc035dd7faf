package models

import (
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category groups transactions. The name is unique per user and type.
type Category struct {
	DefaultModel
	UserID uuid.UUID       `json:"userId" gorm:"index;uniqueIndex:category_user_type_name"`
	User   User            `json:"-"`
	Name   string          `json:"name" gorm:"uniqueIndex:category_user_type_name"`
	Color  string          `json:"color"`
	Type   TransactionType `json:"type" gorm:"uniqueIndex:category_user_type_name"`
}

// BeforeSave validates the category.
func (category *Category) BeforeSave(_ *gorm.DB) error {
	if !colorPattern.MatchString(category.Color) {
		return ErrColorInvalid
	}

	if !category.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}
