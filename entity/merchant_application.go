package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppPending  = "pending"
	AppApproved = "approved"
	AppRejected = "rejected"
)

// ใบสมัครเปิดร้าน — ยังไม่สร้าง Store จริงจนกว่า admin จะอนุมัติ
type MerchantApplication struct {
	gorm.Model
	// unique while an application is live; a rejected row releases the email
	Email       string `gorm:"not null;index:idx_app_email_active,unique,where:status <> 'rejected'" json:"email"`
	StoreName   string `json:"storeName"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// pending / approved / rejected
	Status string `gorm:"not null;default:pending" json:"status"`

	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	RejectReason *string    `json:"rejectReason,omitempty"`
}
