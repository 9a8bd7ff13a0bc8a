package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a registered user. All other resources are owned by
// exactly one user.
type User struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex" example:"jane@example.com"`
	PasswordHash string `json:"-"`
	Name         string `json:"name" example:"Jane" default:""`
}

// BeforeSave trims and lowercases the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	return nil
}
