package services

import (
	"time"

	"quickbite/entity"
	"quickbite/repository"
	"quickbite/utils"

	"gorm.io/gorm"
)

type StoreService struct {
	DB        *gorm.DB
	Repo      *repository.StoreRepository
	MealRepo  *repository.MealRepository
	OrderRepo *repository.OrderRepository
	UploadDir string
}

func NewStoreService(db *gorm.DB, uploadDir string) *StoreService {
	return &StoreService{
		DB:        db,
		Repo:      repository.NewStoreRepository(db),
		MealRepo:  repository.NewMealRepository(db),
		OrderRepo: repository.NewOrderRepository(db),
		UploadDir: uploadDir,
	}
}

func (s *StoreService) List(search, category string) ([]repository.StoreSummary, error) {
	return s.Repo.List(search, category)
}

type StoreDetail struct {
	Store       *entity.Store       `json:"store"`
	Meals       []entity.Meal       `json:"meals"`
	Slots       []entity.PickupSlot `json:"slots"`
	AvgRating   float64             `json:"avgRating"`
	RatingCount int64               `json:"ratingCount"`
}

func (s *StoreService) Detail(storeID uint) (*StoreDetail, error) {
	store, err := s.Repo.Get(storeID)
	if err != nil {
		return nil, ErrNotFound
	}
	meals, err := s.MealRepo.ListForStore(storeID, true)
	if err != nil {
		return nil, err
	}
	slots, err := store.Slots()
	if err != nil {
		return nil, err
	}
	avg, cnt, err := s.Repo.RatingAggregate(storeID)
	if err != nil {
		return nil, err
	}
	return &StoreDetail{Store: store, Meals: meals, Slots: slots, AvgRating: avg, RatingCount: cnt}, nil
}

func (s *StoreService) requireOwner(storeID, userID uint, role string) (*entity.Store, error) {
	store, err := s.Repo.Get(storeID)
	if err != nil {
		return nil, ErrNotFound
	}
	if role != entity.RoleAdmin && store.OwnerID != userID {
		return nil, ErrForbidden
	}
	return store, nil
}

type UpdateStoreIn struct {
	Name        *string
	Description *string
	Category    *string
	PromptPayID *string
}

func (s *StoreService) Update(storeID, userID uint, role string, in *UpdateStoreIn) (*entity.Store, error) {
	store, err := s.requireOwner(storeID, userID, role)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.Description != nil {
		store.Description = *in.Description
	}
	if in.Category != nil {
		store.Category = *in.Category
	}
	if in.PromptPayID != nil {
		store.PromptPayID = *in.PromptPayID
	}
	if err := s.Repo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) SetSlots(storeID, userID uint, role string, slots []entity.PickupSlot) (*entity.Store, error) {
	store, err := s.requireOwner(storeID, userID, role)
	if err != nil {
		return nil, err
	}
	if err := store.SetSlots(slots); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

// UploadImage saves a base64 banner or logo under the store's upload prefix.
func (s *StoreService) UploadImage(storeID, userID uint, role, kind, b64 string) (*entity.Store, error) {
	store, err := s.requireOwner(storeID, userID, role)
	if err != nil {
		return nil, err
	}
	url, err := utils.SaveBase64Image(b64, s.UploadDir, kind+"s", storeID)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "logo":
		store.LogoURL = url
	default:
		store.BannerURL = url
	}
	if err := s.Repo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

// RegenerateQR renders the payment QR from the store's PromptPay target.
func (s *StoreService) RegenerateQR(storeID, userID uint, role string) (*entity.Store, error) {
	store, err := s.requireOwner(storeID, userID, role)
	if err != nil {
		return nil, err
	}
	if store.PromptPayID == "" {
		return nil, ErrNotFound
	}
	url, err := utils.WriteStoreQR(s.UploadDir, storeID, store.PromptPayID)
	if err != nil {
		return nil, err
	}
	store.QRURL = url
	if err := s.Repo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) Dashboard(storeID, userID uint, role string) (*repository.StoreDashboard, error) {
	if _, err := s.requireOwner(storeID, userID, role); err != nil {
		return nil, err
	}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.OrderRepo.DashboardForStore(storeID, dayStart)
}
