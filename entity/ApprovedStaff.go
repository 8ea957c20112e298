package entity

import (
	"gorm.io/gorm"
)

// ApprovedStaff is the secondary credential row staged beside Account: a
// PBKDF2 salt+hash recorded before the staff member's Account formally exists.
// Staff login verifies against this row first, then reconciles Account/User.
type ApprovedStaff struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordSalt string `json:"-"`
	PasswordHash string `json:"-"`
}
