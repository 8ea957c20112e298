package services

import (
	"strings"

	"quickbite/entity"
	"quickbite/repository"
	"quickbite/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StaffService owns the secondary staff-credential path: staging a password
// before an Account exists, and the staff login that reconciles the four
// stores once the application is approved.
type StaffService struct {
	DB       *gorm.DB
	Staff    *repository.StaffRepository
	Accounts *repository.AccountRepository
	Users    *repository.UserRepository
	Stores   *repository.StoreRepository
	Apps     *repository.ApplicationRepository
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{
		DB:       db,
		Staff:    repository.NewStaffRepository(db),
		Accounts: repository.NewAccountRepository(db),
		Users:    repository.NewUserRepository(db),
		Stores:   repository.NewStoreRepository(db),
		Apps:     repository.NewApplicationRepository(db),
	}
}

// Provision stages (or replaces) the salt+hash for an applicant email.
func (s *StaffService) Provision(email, password string) error {
	salt, hash, err := utils.StagePassword(password)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Staff.Upsert(tx, email, salt, hash)
	})
}

func (s *StaffService) DeleteApproved(email string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Staff.DeleteByEmail(tx, email)
	})
}

// Login authenticates against the staged ApprovedStaff hash, gates on the
// latest application status, then brings Account/User/Store in line:
//   - rejected application  → ErrStaffRejected
//   - pending / no application → ErrStaffPending
//   - approved → create-or-refresh Account, upsert role staff, create the
//     store if the user owns none yet
func (s *StaffService) Login(email, password string) (*entity.User, error) {
	row, err := s.Staff.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if !utils.VerifyStagedPassword(password, row.PasswordSalt, row.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	app, err := s.Apps.LatestByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStaffPending
		}
		return nil, err
	}
	switch app.Status {
	case entity.AppRejected:
		return nil, ErrStaffRejected
	case entity.AppApproved:
		// continue
	default:
		return nil, ErrStaffPending
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		email := strings.ToLower(email)

		var acc entity.Account
		ferr := tx.Where("email = ?", email).First(&acc).Error
		if ferr == gorm.ErrRecordNotFound {
			if cerr := s.Accounts.Create(tx, &entity.Account{Email: email, Password: string(hashed)}); cerr != nil {
				return cerr
			}
		} else if ferr != nil {
			return ferr
		}

		u, uerr := s.Users.UpsertRole(tx, email, entity.RoleStaff, nil)
		if uerr != nil {
			return uerr
		}

		has, herr := s.Stores.OwnerHasStore(tx, u.ID)
		if herr != nil {
			return herr
		}
		if !has {
			store := entity.Store{
				Name:        app.StoreName,
				Description: app.Description,
				Category:    app.Category,
				OwnerID:     u.ID,
			}
			if cerr := s.Stores.Create(tx, &store); cerr != nil {
				return cerr
			}
			if uerr := tx.Model(u).Update("store_id", store.ID).Error; uerr != nil {
				return uerr
			}
			u.StoreID = &store.ID
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
