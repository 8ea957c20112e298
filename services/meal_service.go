package services

import (
	"quickbite/entity"
	"quickbite/repository"
	"quickbite/utils"

	"gorm.io/gorm"
)

type MealService struct {
	DB        *gorm.DB
	Repo      *repository.MealRepository
	StoreRepo *repository.StoreRepository
	UploadDir string
}

func NewMealService(db *gorm.DB, uploadDir string) *MealService {
	return &MealService{
		DB:        db,
		Repo:      repository.NewMealRepository(db),
		StoreRepo: repository.NewStoreRepository(db),
		UploadDir: uploadDir,
	}
}

func (s *MealService) requireOwner(storeID, userID uint, role string) error {
	if role == entity.RoleAdmin {
		return nil
	}
	ok, err := s.StoreRepo.IsOwnedBy(storeID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

type MealIn struct {
	Name        string
	Detail      string
	Price       int64
	Available   *bool
	ImageBase64 string
}

func (s *MealService) Create(storeID, userID uint, role string, in *MealIn) (*entity.Meal, error) {
	if err := s.requireOwner(storeID, userID, role); err != nil {
		return nil, err
	}

	m := entity.Meal{
		Name:      in.Name,
		Detail:    in.Detail,
		Price:     in.Price,
		Available: true,
		StoreID:   storeID,
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	if in.ImageBase64 != "" {
		url, thumb, err := utils.SaveBase64ImageWithThumb(in.ImageBase64, s.UploadDir, "meals", storeID)
		if err != nil {
			return nil, err
		}
		m.ImageURL, m.ThumbURL = url, thumb
	}
	if err := s.Repo.Create(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MealService) Update(mealID, userID uint, role string, in *MealIn) (*entity.Meal, error) {
	m, err := s.Repo.Get(mealID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.requireOwner(m.StoreID, userID, role); err != nil {
		return nil, err
	}

	if in.Name != "" {
		m.Name = in.Name
	}
	if in.Detail != "" {
		m.Detail = in.Detail
	}
	if in.Price > 0 {
		m.Price = in.Price
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	if in.ImageBase64 != "" {
		url, thumb, err := utils.SaveBase64ImageWithThumb(in.ImageBase64, s.UploadDir, "meals", m.StoreID)
		if err != nil {
			return nil, err
		}
		m.ImageURL, m.ThumbURL = url, thumb
	}
	if err := s.Repo.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MealService) Delete(mealID, userID uint, role string) error {
	m, err := s.Repo.Get(mealID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.requireOwner(m.StoreID, userID, role); err != nil {
		return err
	}
	return s.Repo.Delete(mealID)
}

// ListForOwner includes unavailable meals; the public listing does not.
func (s *MealService) ListForOwner(storeID, userID uint, role string) ([]entity.Meal, error) {
	if err := s.requireOwner(storeID, userID, role); err != nil {
		return nil, err
	}
	return s.Repo.ListForStore(storeID, false)
}
