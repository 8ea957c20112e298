package entity

import (
	"gorm.io/gorm"
)

// Account is the login identity (email + bcrypt hash). It is deliberately kept
// apart from User: approved staff are staged in ApprovedStaff before any
// Account exists, and the reconciliation flow creates the Account on first
// staff login or on approval with an explicit password.
type Account struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
}
