package services

import (
	"strings"

	"quickbite/entity"
	"quickbite/pkg/mailer"
	"quickbite/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	Accounts *repository.AccountRepository
	Users    *repository.UserRepository
	Stores   *repository.StoreRepository
	Staff    *repository.StaffRepository
	Mailer   *mailer.Mailer

	// emails allowed to self-confirm as admin
	AdminEmails []string
}

func NewAuthService(db *gorm.DB, m *mailer.Mailer, adminEmails []string) *AuthService {
	return &AuthService{
		DB:          db,
		Accounts:    repository.NewAccountRepository(db),
		Users:       repository.NewUserRepository(db),
		Stores:      repository.NewStoreRepository(db),
		Staff:       repository.NewStaffRepository(db),
		Mailer:      m,
		AdminEmails: adminEmails,
	}
}

// CheckEmail probes all four sources. Exposed as its own endpoint and reused
// by every registration-like flow.
func (s *AuthService) CheckEmail(email string) (*EmailCheck, error) {
	return emailInUse(s.DB, email)
}

type RegisterIn struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the Account + User pair atomically. The uniqueness probe
// runs inside the same transaction, and the unique indexes on the email
// columns back it up.
func (s *AuthService) Register(in *RegisterIn) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user entity.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		check, err := emailInUse(tx, in.Email)
		if err != nil {
			return err
		}
		if !check.Available {
			return ErrEmailTaken
		}

		if err := s.Accounts.Create(tx, &entity.Account{Email: in.Email, Password: string(hashed)}); err != nil {
			return err
		}
		user = entity.User{
			Email:     strings.ToLower(in.Email),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      entity.RoleStudent,
		}
		return s.Users.Create(tx, &user)
	})
	if err != nil {
		return nil, err
	}

	// best-effort, per policy: registration succeeds even if this never sends
	s.Mailer.SendWelcome(user.Email)
	return &user, nil
}

// Login verifies the Account credential and returns the profile row.
func (s *AuthService) Login(email, password string) (*entity.User, error) {
	acc, err := s.Accounts.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// ConfirmAdmin promotes an allow-listed email to admin, creating or resetting
// the Account password on the way.
func (s *AuthService) ConfirmAdmin(email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	allowed := false
	for _, e := range s.AdminEmails {
		if e == email {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrForbidden
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var acc entity.Account
		ferr := tx.Where("email = ?", email).First(&acc).Error
		if ferr == gorm.ErrRecordNotFound {
			if cerr := s.Accounts.Create(tx, &entity.Account{Email: email, Password: string(hashed)}); cerr != nil {
				return cerr
			}
		} else if ferr != nil {
			return ferr
		} else if uerr := s.Accounts.UpdatePassword(tx, email, string(hashed)); uerr != nil {
			return uerr
		}

		u, uerr := s.Users.UpsertRole(tx, email, entity.RoleAdmin, nil)
		if uerr != nil {
			return uerr
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccountCascade removes every trace of an email: Account, User, staged
// staff credential and, when the user owned a store, the store with its meals.
func (s *AuthService) DeleteAccountCascade(email string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var u entity.User
		ferr := tx.Where("email = ?", strings.ToLower(email)).First(&u).Error
		if ferr != nil && ferr != gorm.ErrRecordNotFound {
			return ferr
		}
		if ferr == nil {
			var stores []entity.Store
			if serr := tx.Where("owner_id = ?", u.ID).Find(&stores).Error; serr != nil {
				return serr
			}
			for _, st := range stores {
				if derr := s.Stores.DeleteWithMeals(tx, st.ID); derr != nil {
					return derr
				}
			}
			if derr := s.Users.DeleteByEmail(tx, email); derr != nil {
				return derr
			}
		}
		if derr := s.Staff.DeleteByEmail(tx, email); derr != nil {
			return derr
		}
		return s.Accounts.DeleteByEmail(tx, email)
	})
}
