package services

import (
	"strings"
	"time"

	"quickbite/entity"
	"quickbite/pkg/logger"
	"quickbite/pkg/mailer"
	"quickbite/repository"
	"quickbite/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB       *gorm.DB
	Apps     *repository.ApplicationRepository
	Staff    *repository.StaffRepository
	Accounts *repository.AccountRepository
	Users    *repository.UserRepository
	Stores   *repository.StoreRepository
	Mailer   *mailer.Mailer
}

func NewApplicationService(db *gorm.DB, m *mailer.Mailer) *ApplicationService {
	return &ApplicationService{
		DB:       db,
		Apps:     repository.NewApplicationRepository(db),
		Staff:    repository.NewStaffRepository(db),
		Accounts: repository.NewAccountRepository(db),
		Users:    repository.NewUserRepository(db),
		Stores:   repository.NewStoreRepository(db),
		Mailer:   m,
	}
}

type SubmitApplicationIn struct {
	Email       string
	StoreName   string
	Description string
	Category    string
	// optional: stages the staff credential at application time
	Password string
}

// Submit inserts a pending application; the uniqueness probe runs in the same
// transaction. A rejected application does not block re-applying.
func (s *ApplicationService) Submit(in *SubmitApplicationIn) (*entity.MerchantApplication, error) {
	var app entity.MerchantApplication
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		check, err := emailInUse(tx, in.Email)
		if err != nil {
			return err
		}
		if !check.Available {
			return ErrEmailTaken
		}

		app = entity.MerchantApplication{
			Email:       in.Email,
			StoreName:   in.StoreName,
			Description: in.Description,
			Category:    in.Category,
			Status:      entity.AppPending,
		}
		if err := s.Apps.Create(tx, &app); err != nil {
			return err
		}

		if in.Password != "" {
			salt, hash, herr := utils.StagePassword(in.Password)
			if herr != nil {
				return herr
			}
			return s.Staff.Upsert(tx, in.Email, salt, hash)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) List(status string) ([]entity.MerchantApplication, error) {
	return s.Apps.ListByStatus(status)
}

type ApproveOut struct {
	ApplicationID uint   `json:"applicationId"`
	StoreID       uint   `json:"storeId"`
	OwnerUserID   uint   `json:"ownerUserId"`
	Status        string `json:"status"`
}

// Approve moves pending → approved: find-or-create the Account, upsert the
// User with role staff, and create the Store iff the user owns none yet.
// Calling it again on the same application fails with ErrNotPending, so the
// Store is never duplicated.
func (s *ApplicationService) Approve(appID uint, explicitPassword string) (*ApproveOut, error) {
	app, err := s.Apps.Get(appID)
	if err != nil {
		return nil, ErrNotFound
	}
	if app.Status != entity.AppPending {
		return nil, ErrNotPending
	}

	staged, serr := s.Staff.EmailExists(app.Email)
	if serr != nil {
		return nil, serr
	}
	if !staged && explicitPassword == "" {
		return nil, ErrNoStagedPassword
	}

	var out ApproveOut
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		email := strings.ToLower(app.Email)

		// Account: find, or create when a password was supplied. With only a
		// staged hash on file the Account appears at first staff login.
		var acc entity.Account
		ferr := tx.Where("email = ?", email).First(&acc).Error
		if ferr == gorm.ErrRecordNotFound && explicitPassword != "" {
			hashed, herr := bcrypt.GenerateFromPassword([]byte(explicitPassword), bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			if cerr := s.Accounts.Create(tx, &entity.Account{Email: email, Password: string(hashed)}); cerr != nil {
				return cerr
			}
		} else if ferr != nil && ferr != gorm.ErrRecordNotFound {
			return ferr
		}

		// keep the staged credential usable for the staff-login gate
		if explicitPassword != "" {
			salt, hash, herr := utils.StagePassword(explicitPassword)
			if herr != nil {
				return herr
			}
			if uerr := s.Staff.Upsert(tx, email, salt, hash); uerr != nil {
				return uerr
			}
		}

		u, uerr := s.Users.UpsertRole(tx, email, entity.RoleStaff, nil)
		if uerr != nil {
			return uerr
		}

		has, herr := s.Stores.OwnerHasStore(tx, u.ID)
		if herr != nil {
			return herr
		}
		storeID := uint(0)
		if has {
			st, ferr := s.Stores.FindByOwner(u.ID)
			if ferr == nil {
				storeID = st.ID
			}
		} else {
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
			storeID = store.ID
		}

		now := time.Now()
		app.Status = entity.AppApproved
		app.ReviewedAt = &now
		if serr := s.Apps.Save(tx, app); serr != nil {
			return serr
		}

		out = ApproveOut{ApplicationID: app.ID, StoreID: storeID, OwnerUserID: u.ID, Status: entity.AppApproved}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Mailer.SendApproval(app.Email, app.StoreName)
	return &out, nil
}

// Reject moves pending → rejected, archives the applicant, revokes the staged
// credential and best-effort demotes the linked user. The mail and the demote
// never fail the rejection.
func (s *ApplicationService) Reject(appID uint, reason string) (*entity.MerchantApplication, error) {
	app, err := s.Apps.Get(appID)
	if err != nil {
		return nil, ErrNotFound
	}
	if app.Status != entity.AppPending {
		return nil, ErrNotPending
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		app.Status = entity.AppRejected
		app.ReviewedAt = &now
		app.RejectReason = &reason
		if serr := s.Apps.Save(tx, app); serr != nil {
			return serr
		}
		if aerr := s.Staff.Archive(tx, app.Email, app.StoreName, reason); aerr != nil {
			return aerr
		}
		return s.Staff.DeleteByEmail(tx, app.Email)
	})
	if err != nil {
		return nil, err
	}

	if derr := s.Users.DemoteToStudent(app.Email); derr != nil {
		logger.L().Warn("demote after rejection failed", zap.String("email", app.Email), zap.Error(derr))
	}
	s.Mailer.SendRejection(app.Email, app.StoreName, reason)
	return app, nil
}

// ResendApproval / ResendRejection back the send-*-email endpoints.
func (s *ApplicationService) ResendApproval(appID uint) error {
	app, err := s.Apps.Get(appID)
	if err != nil {
		return ErrNotFound
	}
	if app.Status != entity.AppApproved {
		return ErrNotPending
	}
	return s.Mailer.Send(app.Email, "Your QuickBite store is approved",
		"<p>Your application for <b>"+app.StoreName+"</b> was approved.</p>")
}

func (s *ApplicationService) ResendRejection(appID uint) error {
	app, err := s.Apps.Get(appID)
	if err != nil {
		return ErrNotFound
	}
	if app.Status != entity.AppRejected {
		return ErrNotPending
	}
	reason := ""
	if app.RejectReason != nil {
		reason = *app.RejectReason
	}
	return s.Mailer.Send(app.Email, "About your QuickBite application",
		"<p>Your application for <b>"+app.StoreName+"</b> was not approved.</p><p>Reason: "+reason+"</p>")
}
