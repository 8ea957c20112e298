package repository

import (
	"quickbite/entity"

	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) Create(rt *entity.Rating) error {
	return r.DB.Create(rt).Error
}

// ExistsForOrderUser backs the at-most-one-rating rule (the unique index is
// the real guard; this gives the nicer error).
func (r *RatingRepository) ExistsForOrderUser(orderID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Rating{}).
		Where("order_id = ? AND user_id = ?", orderID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

type RatingView struct {
	ID        uint   `json:"id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	ImageURLs string `json:"imageUrls"`
	UserID    uint   `json:"userId"`
	FirstName string `json:"firstName"`
	CreatedAt string `json:"createdAt"`
}

func (r *RatingRepository) ListForStore(storeID uint, limit int) ([]RatingView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []RatingView
	err := r.DB.Table("ratings AS rt").
		Select("rt.id, rt.rating, rt.comment, rt.image_urls, rt.user_id, u.first_name, rt.created_at").
		Joins("JOIN users u ON u.id = rt.user_id").
		Where("rt.store_id = ? AND rt.deleted_at IS NULL", storeID).
		Order("rt.id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}
