package repository

import (
	"quickbite/entity"

	"gorm.io/gorm"
)

type MealRepository struct {
	DB *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{DB: db}
}

func (r *MealRepository) Create(m *entity.Meal) error {
	return r.DB.Create(m).Error
}

func (r *MealRepository) Get(id uint) (*entity.Meal, error) {
	var m entity.Meal
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MealRepository) Save(m *entity.Meal) error {
	return r.DB.Save(m).Error
}

func (r *MealRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Meal{}, id).Error
}

func (r *MealRepository) ListForStore(storeID uint, onlyAvailable bool) ([]entity.Meal, error) {
	db := r.DB.Where("store_id = ?", storeID)
	if onlyAvailable {
		db = db.Where("available = ?", true)
	}
	var out []entity.Meal
	err := db.Order("id").Find(&out).Error
	return out, err
}

// GetBasics เอาเฉพาะ field ที่ order ต้องใช้
func (r *MealRepository) GetBasics(id uint) (entity.Meal, error) {
	var m entity.Meal
	err := r.DB.Select("id, price, store_id, available").First(&m, id).Error
	return m, err
}

// ตรวจว่าเมนูทั้งหมด belong กับร้านเดียว
func (r *MealRepository) ValidateBelongToStore(mealIDs []uint, storeID uint) (bool, error) {
	if len(mealIDs) == 0 {
		return true, nil
	}
	var cnt int64
	if err := r.DB.Model(&entity.Meal{}).
		Where("id IN ? AND store_id = ?", mealIDs, storeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == int64(len(mealIDs)), nil
}
