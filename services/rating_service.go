package services

import (
	"strings"

	"quickbite/entity"
	"quickbite/repository"
	"quickbite/utils"

	"gorm.io/gorm"
)

type RatingService struct {
	DB        *gorm.DB
	Repo      *repository.RatingRepository
	OrderRepo *repository.OrderRepository
	UploadDir string
}

func NewRatingService(db *gorm.DB, uploadDir string) *RatingService {
	return &RatingService{
		DB:        db,
		Repo:      repository.NewRatingRepository(db),
		OrderRepo: repository.NewOrderRepository(db),
		UploadDir: uploadDir,
	}
}

type CreateRatingIn struct {
	OrderID      uint
	Rating       int
	Comment      string
	ImagesBase64 []string
}

// Create allows one rating per (order, user), only by the order's student and
// only once the order is claimed. The unique index on (order_id, user_id) is
// the hard guard; the pre-check gives the friendlier error.
func (s *RatingService) Create(userID uint, in *CreateRatingIn) (*entity.Rating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errBadInput("rating must be 1-5")
	}

	o, err := s.OrderRepo.GetForStudent(userID, in.OrderID)
	if err != nil {
		return nil, ErrNotFound
	}
	if o.Status != entity.StatusClaimed {
		return nil, ErrNotClaimed
	}

	exists, err := s.Repo.ExistsForOrderUser(in.OrderID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRating
	}

	urls := make([]string, 0, len(in.ImagesBase64))
	for _, b64 := range in.ImagesBase64 {
		u, uerr := utils.SaveBase64Image(b64, s.UploadDir, "ratings", o.StoreID)
		if uerr != nil {
			return nil, uerr
		}
		urls = append(urls, u)
	}

	rt := entity.Rating{
		Rating:    in.Rating,
		Comment:   in.Comment,
		ImageURLs: strings.Join(urls, ","),
		UserID:    userID,
		StoreID:   o.StoreID,
		OrderID:   in.OrderID,
	}
	if err := s.Repo.Create(&rt); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *RatingService) ListForStore(storeID uint, limit int) ([]repository.RatingView, error) {
	return s.Repo.ListForStore(storeID, limit)
}
