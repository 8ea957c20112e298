package entity

import (
	"gorm.io/gorm"
)

type Meal struct {
	gorm.Model
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Price  int64  `json:"price"` // satang

	Available bool `gorm:"not null;default:true" json:"available"`

	ImageURL string `json:"imageUrl"`
	ThumbURL string `json:"thumbUrl"`

	StoreID uint  `json:"storeId"`
	Store   Store `json:"-"` // preload เมื่อจำเป็น

	OrderItems []OrderItem `json:"-"`
}
