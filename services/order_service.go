package services

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"quickbite/entity"
	"quickbite/pkg/metrics"
	"quickbite/repository"
	"quickbite/utils"

	"gorm.io/gorm"
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	MealRepo  *repository.MealRepository
	StoreRepo *repository.StoreRepository
	ChatRepo  *repository.ChatRepository
	UploadDir string
}

func NewOrderService(db *gorm.DB, uploadDir string) *OrderService {
	return &OrderService{
		DB:        db,
		Repo:      repository.NewOrderRepository(db),
		MealRepo:  repository.NewMealRepository(db),
		StoreRepo: repository.NewStoreRepository(db),
		ChatRepo:  repository.NewChatRepository(db),
		UploadDir: uploadDir,
	}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MealID uint   `json:"mealId"`
	Qty    int    `json:"qty"`
	Note   string `json:"note"`
}

type CreateOrderIn struct {
	StoreID    uint          `json:"storeId"`
	PickupSlot string        `json:"pickupSlot"`
	Note       string        `json:"note"`
	Items      []OrderItemIn `json:"items"`
}

type CreateOrderOut struct {
	ID     uint   `json:"id"`
	Total  int64  `json:"total"`
	Status string `json:"status"`
	RoomID uint   `json:"roomId"`
}

// Create places an order: meals must belong to the store and be available,
// prices are snapshotted, and when the store configured pickup slots the
// chosen slot must exist and have capacity left. Order, items and the chat
// room land in one transaction.
func (s *OrderService) Create(studentID uint, in *CreateOrderIn) (*CreateOrderOut, error) {
	if len(in.Items) == 0 {
		return nil, errBadInput("items is required")
	}

	store, err := s.StoreRepo.Get(in.StoreID)
	if err != nil {
		return nil, errBadInput("store not found")
	}

	mealIDs := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Qty <= 0 {
			return nil, errBadInput("qty must be positive")
		}
		mealIDs = append(mealIDs, it.MealID)
	}
	ok, err := s.MealRepo.ValidateBelongToStore(mealIDs, in.StoreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errBadInput("meal not in this store")
	}

	var total int64
	rows := make([]struct {
		mealID    uint
		qty       int
		note      string
		unitPrice int64
	}, 0, len(in.Items))

	for _, it := range in.Items {
		m, err := s.MealRepo.GetBasics(it.MealID)
		if err != nil {
			return nil, errBadInput("meal not found")
		}
		if !m.Available {
			return nil, errBadInput("meal not available")
		}
		total += m.Price * int64(it.Qty)
		rows = append(rows, struct {
			mealID    uint
			qty       int
			note      string
			unitPrice int64
		}{m.ID, it.Qty, it.Note, m.Price})
	}

	slots, err := store.Slots()
	if err != nil {
		return nil, err
	}
	var slotLimit int
	if len(slots) > 0 {
		found := false
		for _, sl := range slots {
			if sl.Slot == in.PickupSlot {
				found, slotLimit = true, sl.Limit
				break
			}
		}
		if !found {
			return nil, ErrUnknownSlot
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out CreateOrderOut
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if slotLimit > 0 {
			active, cerr := s.Repo.CountActiveInSlot(tx, in.StoreID, in.PickupSlot, dayStart)
			if cerr != nil {
				return cerr
			}
			if active >= int64(slotLimit) {
				return ErrSlotFull
			}
		}

		order := entity.Order{
			Total:      total,
			Status:     entity.StatusPendingPayment,
			PickupSlot: in.PickupSlot,
			PickupTime: slotStartTime(in.PickupSlot, now),
			Note:       in.Note,
			StudentID:  studentID,
			StoreID:    in.StoreID,
		}
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}

		for _, r := range rows {
			oi := entity.OrderItem{
				Qty: r.qty, UnitPrice: r.unitPrice, Total: r.unitPrice * int64(r.qty),
				Note: r.note, OrderID: order.ID, MealID: r.mealID,
			}
			if err := s.Repo.CreateItem(tx, &oi); err != nil {
				return err
			}
		}

		room := entity.ChatRoom{OrderID: order.ID}
		if err := s.ChatRepo.CreateRoom(tx, &room); err != nil {
			return err
		}

		out = CreateOrderOut{ID: order.ID, Total: order.Total, Status: order.Status, RoomID: room.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	return &out, nil
}

// SubmitPaymentProof stores the slip image and flips pending_payment →
// payment_submitted in one guarded update.
func (s *OrderService) SubmitPaymentProof(studentID, orderID uint, b64 string) (*entity.Order, error) {
	o, err := s.Repo.GetForStudent(studentID, orderID)
	if err != nil {
		return nil, ErrNotFound
	}
	if o.Status != entity.StatusPendingPayment {
		return nil, ErrInvalidTransition
	}

	url, err := utils.SaveBase64Image(b64, s.UploadDir, "payment-proofs", o.StoreID)
	if err != nil {
		return nil, err
	}

	var affected int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		n, uerr := s.Repo.SetPaymentProof(tx, o.ID, url)
		affected = n
		return uerr
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// lost the race after the upload; don't leave the slip behind
		os.Remove(filepath.Join(s.UploadDir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/"))))
		return nil, ErrInvalidTransition
	}
	return s.Repo.Get(o.ID)
}

// ----- List & Detail -----

func (s *OrderService) ListForStudent(studentID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListForStudent(studentID, limit)
}

type OrderDetail struct {
	Order *entity.Order      `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForStudent(studentID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetForStudent(studentID, orderID)
	if err != nil {
		return nil, ErrNotFound
	}
	items, err := s.Repo.GetItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

type StoreOrderListOut struct {
	Items []repository.StoreOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListForStore(userID uint, role string, storeID uint, status string, page, limit int) (*StoreOrderListOut, error) {
	if err := s.requireStoreAccess(storeID, userID, role); err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListForStore(storeID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return &StoreOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForStore(userID uint, role string, storeID, orderID uint) (*OrderDetail, error) {
	if err := s.requireStoreAccess(storeID, userID, role); err != nil {
		return nil, err
	}
	o, err := s.Repo.GetForStore(storeID, orderID)
	if err != nil {
		return nil, ErrNotFound
	}
	items, err := s.Repo.GetItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

func (s *OrderService) requireStoreAccess(storeID, userID uint, role string) error {
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

// slotStartTime resolves a "15:04-15:34" slot to its start on the given day.
// Orders without a slot (or with a malformed one) keep a null pickup time.
func slotStartTime(slot string, now time.Time) *time.Time {
	start, _, ok := strings.Cut(slot, "-")
	if !ok {
		return nil
	}
	t, err := time.Parse("15:04", strings.TrimSpace(start))
	if err != nil {
		return nil
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return &at
}

// errBadInput keeps plain-message validation failures distinguishable from
// the sentinel errors.
type badInputError string

func (e badInputError) Error() string { return string(e) }

func errBadInput(msg string) error { return badInputError(msg) }

// IsBadInput reports whether err is a validation failure the controller
// should answer with 400.
func IsBadInput(err error) bool {
	_, ok := err.(badInputError)
	return ok
}
