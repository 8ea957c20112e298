package entity

import (
	"gorm.io/gorm"
)

type Rating struct {
	gorm.Model
	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment"`

	// comma-separated upload URLs
	ImageURLs string `json:"imageUrls"`

	UserID uint `gorm:"uniqueIndex:idx_rating_order_user" json:"userId"`
	User   User `json:"-"`

	StoreID uint  `json:"storeId"`
	Store   Store `json:"-"`

	OrderID uint  `gorm:"uniqueIndex:idx_rating_order_user" json:"orderId"`
	Order   Order `json:"-"`
}
