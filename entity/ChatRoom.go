package entity

import (
	"gorm.io/gorm"
)

// ChatRoom is the flat per-order chat log container.
type ChatRoom struct {
	gorm.Model
	OrderID uint `json:"orderId"`

	Order Order `json:"-"`

	// preload messages เฉพาะ endpoint ที่ต้องการ
	Messages []Message `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}
