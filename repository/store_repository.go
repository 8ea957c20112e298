package repository

import (
	"strings"

	"quickbite/entity"

	"gorm.io/gorm"
)

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{DB: db}
}

func (r *StoreRepository) Create(tx *gorm.DB, s *entity.Store) error {
	return tx.Create(s).Error
}

func (r *StoreRepository) Get(id uint) (*entity.Store, error) {
	var s entity.Store
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) Save(s *entity.Store) error {
	return r.DB.Save(s).Error
}

// StoreSummary คือข้อมูลที่หน้า list ต้องใช้
type StoreSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	LogoURL     string  `json:"logoUrl"`
	BannerURL   string  `json:"bannerUrl"`
	AvgRating   float64 `json:"avgRating"`
	RatingCount int64   `json:"ratingCount"`
}

func (r *StoreRepository) List(search, category string) ([]StoreSummary, error) {
	db := r.DB.Table("stores AS s").
		Select(`s.id, s.name, s.description, s.category, s.logo_url, s.banner_url,
			COALESCE(AVG(rt.rating), 0) AS avg_rating,
			COUNT(rt.id) AS rating_count`).
		Joins("LEFT JOIN ratings rt ON rt.store_id = s.id AND rt.deleted_at IS NULL").
		Where("s.deleted_at IS NULL").
		Group("s.id")

	if search != "" {
		db = db.Where("LOWER(s.name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if category != "" {
		db = db.Where("s.category = ?", category)
	}

	var out []StoreSummary
	err := db.Order("s.id").Scan(&out).Error
	return out, err
}

func (r *StoreRepository) IsOwnedBy(storeID, userID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Store{}).
		Where("id = ? AND owner_id = ?", storeID, userID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *StoreRepository) FindByOwner(userID uint) (*entity.Store, error) {
	var s entity.Store
	if err := r.DB.Where("owner_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) OwnerHasStore(tx *gorm.DB, userID uint) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Store{}).Where("owner_id = ?", userID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *StoreRepository) DeleteWithMeals(tx *gorm.DB, storeID uint) error {
	if err := tx.Where("store_id = ?", storeID).Delete(&entity.Meal{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Store{}, storeID).Error
}

// RatingAggregate สำหรับหน้า detail
func (r *StoreRepository) RatingAggregate(storeID uint) (avg float64, count int64, err error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err = r.DB.Model(&entity.Rating{}).
		Select("COALESCE(AVG(rating),0) AS avg, COUNT(id) AS count").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}
