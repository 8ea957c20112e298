package repository

import (
	"strings"

	"quickbite/entity"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) Create(tx *gorm.DB, a *entity.Account) error {
	a.Email = strings.ToLower(a.Email)
	return tx.Create(a).Error
}

func (r *AccountRepository) FindByEmail(email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.DB.Where("email = ?", strings.ToLower(email)).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) UpdatePassword(tx *gorm.DB, email, hash string) error {
	return tx.Model(&entity.Account{}).
		Where("email = ?", strings.ToLower(email)).
		Update("password", hash).Error
}

// DeleteByEmail hard-deletes so the unique email index frees up for
// re-registration after a cascade delete.
func (r *AccountRepository) DeleteByEmail(tx *gorm.DB, email string) error {
	return tx.Unscoped().Where("email = ?", strings.ToLower(email)).Delete(&entity.Account{}).Error
}
