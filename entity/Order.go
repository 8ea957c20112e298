package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Total int64 `json:"total"`

	Status string `gorm:"not null;default:pending_payment" json:"status"`

	PickupSlot string     `json:"pickupSlot"`
	PickupTime *time.Time `json:"pickupTime,omitempty"`

	PaymentProofURL string `json:"paymentProofUrl"`
	Note            string `json:"note"`

	StudentID uint `json:"studentId"`
	Student   User `gorm:"foreignKey:StudentID" json:"-"`

	StoreID uint  `json:"storeId"`
	Store   Store `json:"-"` // preload เมื่อจำเป็น

	// preload แค่ตอน detail
	OrderItems []OrderItem `json:"-"`
	Ratings    []Rating    `json:"-"`

	ChatRoom *ChatRoom `gorm:"foreignKey:OrderID;references:ID" json:"-"`
}
