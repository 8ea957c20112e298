package entity

import (
	"gorm.io/gorm"
)

// RejectedStaff archives a rejected merchant application.
type RejectedStaff struct {
	gorm.Model
	Email     string `gorm:"index" json:"email"`
	StoreName string `json:"storeName"`
	Reason    string `json:"reason"`
}
