package repository

import (
	"strings"
	"time"

	"quickbite/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders (CRUD หลัก) ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID         uint      `json:"id"`
	StoreID    uint      `json:"storeId"`
	Total      int64     `json:"total"`
	Status     string    `json:"status"`
	PickupSlot string    `json:"pickupSlot"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListForStudent(studentID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, store_id, total, status, pickup_slot, created_at").
		Where("student_id = ?", studentID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetForStudent(studentID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND student_id = ?", orderID, studentID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type StoreOrderSummary struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"studentId"`
	StudentName string    `json:"studentName"`
	Total       int64     `json:"total"`
	Status      string    `json:"status"`
	PickupSlot  string    `json:"pickupSlot"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListForStore(storeID uint, status string, page, limit int) ([]StoreOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Table("orders AS o").Where("o.store_id = ? AND o.deleted_at IS NULL", storeID)
	if status != "" {
		dbCount = dbCount.Where("o.status = ?", status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// join users → ดึงชื่อลูกค้า
	var rows []struct {
		ID         uint
		StudentID  uint
		Total      int64
		Status     string
		PickupSlot string
		CreatedAt  time.Time
		FirstName  string
		LastName   string
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.student_id, o.total, o.status, o.pickup_slot, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.student_id").
		Where("o.store_id = ? AND o.deleted_at IS NULL", storeID)
	if status != "" {
		db = db.Where("o.status = ?", status)
	}
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]StoreOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, StoreOrderSummary{
			ID:          row.ID,
			StudentID:   row.StudentID,
			StudentName: strings.TrimSpace(row.FirstName + " " + row.LastName),
			Total:       row.Total,
			Status:      row.Status,
			PickupSlot:  row.PickupSlot,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, total, nil
}

func (r *OrderRepository) GetForStore(storeID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND store_id = ?", orderID, storeID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusGuard ย้าย status แบบ compare-and-set กันเขียนทับกัน
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetPaymentProof(tx *gorm.DB, orderID uint, url string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, entity.StatusPendingPayment).
		Updates(map[string]any{"payment_proof_url": url, "status": entity.StatusPaymentSubmitted})
	return res.RowsAffected, res.Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, qty, unit_price, total, note, meal_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// ---------------- Slot capacity / stale orders ----------------

// CountActiveInSlot นับออเดอร์ที่ยังไม่จบในช่วงรับอาหารเดียวกัน (วันนี้)
func (r *OrderRepository) CountActiveInSlot(tx *gorm.DB, storeID uint, slot string, dayStart time.Time) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.Order{}).
		Where("store_id = ? AND pickup_slot = ? AND created_at >= ?", storeID, slot, dayStart).
		Where("status IN ?", entity.ActiveStatuses()).
		Count(&cnt).Error
	return cnt, err
}

// CancelStale cancels orders stuck in pending_payment longer than ttl and
// returns how many were flipped.
func (r *OrderRepository) CancelStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	res := r.DB.Model(&entity.Order{}).
		Where("status = ? AND created_at < ?", entity.StatusPendingPayment, cutoff).
		Update("status", entity.StatusCancelled)
	return res.RowsAffected, res.Error
}

// ---------------- Dashboard ----------------

type StoreDashboard struct {
	TodayOrders  int64 `json:"todayOrders"`
	TodayRevenue int64 `json:"todayRevenue"`
	PendingCount int64 `json:"pendingCount"`
	ReadyCount   int64 `json:"readyCount"`
}

func (r *OrderRepository) DashboardForStore(storeID uint, dayStart time.Time) (*StoreDashboard, error) {
	var d StoreDashboard

	if err := r.DB.Model(&entity.Order{}).
		Where("store_id = ? AND created_at >= ? AND status <> ?", storeID, dayStart, entity.StatusCancelled).
		Count(&d.TodayOrders).Error; err != nil {
		return nil, err
	}

	var row struct{ Revenue int64 }
	if err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total),0) AS revenue").
		Where("store_id = ? AND created_at >= ? AND status = ?", storeID, dayStart, entity.StatusClaimed).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	d.TodayRevenue = row.Revenue

	if err := r.DB.Model(&entity.Order{}).
		Where("store_id = ? AND status = ?", storeID, entity.StatusPaymentSubmitted).
		Count(&d.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&entity.Order{}).
		Where("store_id = ? AND status = ?", storeID, entity.StatusReady).
		Count(&d.ReadyCount).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
