package repository

import (
	"strings"

	"quickbite/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(tx *gorm.DB, u *entity.User) error {
	u.Email = strings.ToLower(u.Email)
	return tx.Create(u).Error
}

func (r *UserRepository) Get(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertRole creates the profile row if the email is unknown, otherwise just
// moves the role (and store pointer when given).
func (r *UserRepository) UpsertRole(tx *gorm.DB, email, role string, storeID *uint) (*entity.User, error) {
	email = strings.ToLower(email)
	var u entity.User
	err := tx.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		u = entity.User{Email: email, Role: role, StoreID: storeID}
		if cerr := tx.Create(&u).Error; cerr != nil {
			return nil, cerr
		}
		return &u, nil
	}

	updates := map[string]any{"role": role}
	if storeID != nil {
		updates["store_id"] = *storeID
	}
	if uerr := tx.Model(&u).Updates(updates).Error; uerr != nil {
		return nil, uerr
	}
	return &u, nil
}

// DemoteToStudent is the best-effort rollback used on rejection.
func (r *UserRepository) DemoteToStudent(email string) error {
	return r.DB.Model(&entity.User{}).
		Where("email = ? AND role = ?", strings.ToLower(email), entity.RoleStaff).
		Updates(map[string]any{"role": entity.RoleStudent, "store_id": nil}).Error
}

// DeleteByEmail hard-deletes; a soft-deleted row would still hold the unique
// email and block re-registration.
func (r *UserRepository) DeleteByEmail(tx *gorm.DB, email string) error {
	return tx.Unscoped().Where("email = ?", strings.ToLower(email)).Delete(&entity.User{}).Error
}
