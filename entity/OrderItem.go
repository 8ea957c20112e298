package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"` // snapshot at order time
	Total     int64  `json:"total"`
	Note      string `json:"note"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MealID uint `json:"mealId"`
	Meal   Meal `json:"-"` // preload เฉพาะตอนต้องการชื่อเมนู
}
