package models

// User owns all other resources.
type User struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}
