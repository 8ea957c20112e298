package entity

import (
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `gorm:"not null;default:student" json:"role"`

	// set once the user owns a store (approved merchant)
	StoreID *uint `json:"storeId,omitempty"`

	// Relations — preload เฉพาะตอนจำเป็น
	StoresOwned  []Store   `gorm:"foreignKey:OwnerID" json:"-"`
	Orders       []Order   `gorm:"foreignKey:StudentID" json:"-"`
	Ratings      []Rating  `json:"-"`
	MessagesSent []Message `gorm:"foreignKey:SenderID" json:"-"`
}
