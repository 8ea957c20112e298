package repository

import (
	"strings"

	"quickbite/entity"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(tx *gorm.DB, app *entity.MerchantApplication) error {
	app.Email = strings.ToLower(app.Email)
	return tx.Create(app).Error
}

func (r *ApplicationRepository) Get(id uint) (*entity.MerchantApplication, error) {
	var app entity.MerchantApplication
	if err := r.DB.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) Save(tx *gorm.DB, app *entity.MerchantApplication) error {
	return tx.Save(app).Error
}

func (r *ApplicationRepository) ListByStatus(status string) ([]entity.MerchantApplication, error) {
	var apps []entity.MerchantApplication
	err := r.DB.Where("status = ?", status).Order("id DESC").Find(&apps).Error
	return apps, err
}

// LatestByEmail returns the newest application for an email — staff login
// gates on its status.
func (r *ApplicationRepository) LatestByEmail(email string) (*entity.MerchantApplication, error) {
	var app entity.MerchantApplication
	err := r.DB.Where("email = ?", strings.ToLower(email)).
		Order("id DESC").First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}
