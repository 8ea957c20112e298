package repository

import (
	"strings"

	"quickbite/entity"

	"gorm.io/gorm"
)

// StaffRepository owns the ApprovedStaff credential rows and the
// RejectedStaff archive.
type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) Upsert(tx *gorm.DB, email, salt, hash string) error {
	email = strings.ToLower(email)
	var row entity.ApprovedStaff
	err := tx.Where("email = ?", email).First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(&entity.ApprovedStaff{Email: email, PasswordSalt: salt, PasswordHash: hash}).Error
	}
	return tx.Model(&row).Updates(map[string]any{"password_salt": salt, "password_hash": hash}).Error
}

func (r *StaffRepository) FindByEmail(email string) (*entity.ApprovedStaff, error) {
	var row entity.ApprovedStaff
	if err := r.DB.Where("email = ?", strings.ToLower(email)).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *StaffRepository) EmailExists(email string) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.ApprovedStaff{}).
		Where("email = ?", strings.ToLower(email)).Count(&cnt).Error
	return cnt > 0, err
}

// DeleteByEmail removes the row for real: a soft delete would keep the email
// under the unique index and block re-provisioning after a rejection.
func (r *StaffRepository) DeleteByEmail(tx *gorm.DB, email string) error {
	return tx.Unscoped().Where("email = ?", strings.ToLower(email)).Delete(&entity.ApprovedStaff{}).Error
}

func (r *StaffRepository) Archive(tx *gorm.DB, email, storeName, reason string) error {
	return tx.Create(&entity.RejectedStaff{
		Email:     strings.ToLower(email),
		StoreName: storeName,
		Reason:    reason,
	}).Error
}
