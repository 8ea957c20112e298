package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quickbite/entity"
	"quickbite/repository"

	"gorm.io/gorm"
)

type orderFixture struct {
	db      *gorm.DB
	svc     *OrderService
	student entity.User
	owner   entity.User
	store   entity.Store
	meals   []entity.Meal
}

func newOrderFixture(t *testing.T, slots []entity.PickupSlot) *orderFixture {
	t.Helper()
	db := newTestDB(t)

	f := &orderFixture{db: db, svc: NewOrderService(db, t.TempDir())}

	f.student = entity.User{Email: "eat@x.com", Role: entity.RoleStudent}
	mustCreate(t, db, &f.student)
	f.owner = entity.User{Email: "cook@x.com", Role: entity.RoleStaff}
	mustCreate(t, db, &f.owner)

	f.store = entity.Store{Name: "Rice & Shine", OwnerID: f.owner.ID}
	if err := f.store.SetSlots(slots); err != nil {
		t.Fatalf("set slots: %v", err)
	}
	mustCreate(t, db, &f.store)

	f.meals = []entity.Meal{
		{Name: "Pad Krapow", Price: 6000, Available: true, StoreID: f.store.ID},
		{Name: "Khao Man Gai", Price: 5000, Available: true, StoreID: f.store.ID},
	}
	for i := range f.meals {
		mustCreate(t, db, &f.meals[i])
	}
	return f
}

func (f *orderFixture) place(t *testing.T, slot string) *CreateOrderOut {
	t.Helper()
	out, err := f.svc.Create(f.student.ID, &CreateOrderIn{
		StoreID:    f.store.ID,
		PickupSlot: slot,
		Items:      []OrderItemIn{{MealID: f.meals[0].ID, Qty: 1}},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return out
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	f := newOrderFixture(t, nil)

	out, err := f.svc.Create(f.student.ID, &CreateOrderIn{
		StoreID: f.store.ID,
		Items: []OrderItemIn{
			{MealID: f.meals[0].ID, Qty: 2, Note: "extra spicy"},
			{MealID: f.meals[1].ID, Qty: 1},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := int64(2*6000 + 5000); out.Total != want {
		t.Fatalf("total = %d, want %d", out.Total, want)
	}
	if out.Status != entity.StatusPendingPayment {
		t.Fatalf("status = %q, want pending_payment", out.Status)
	}
	if out.RoomID == 0 {
		t.Fatal("no chat room created with the order")
	}

	items, err := f.svc.Repo.GetItems(out.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("item count = %d, want 2", len(items))
	}

	// later price changes must not touch the snapshot
	if err := f.db.Model(&entity.Meal{}).Where("id = ?", f.meals[0].ID).
		Update("price", 9999).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}
	items, _ = f.svc.Repo.GetItems(out.ID)
	for _, it := range items {
		if it.MealID == f.meals[0].ID && it.UnitPrice != 6000 {
			t.Fatalf("snapshot price = %d, want 6000", it.UnitPrice)
		}
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t, nil)

	// empty cart
	if _, err := f.svc.Create(f.student.ID, &CreateOrderIn{StoreID: f.store.ID}); !IsBadInput(err) {
		t.Fatalf("empty cart: got %v, want bad-input", err)
	}

	// meal from another store
	other := entity.Store{Name: "Elsewhere", OwnerID: f.owner.ID}
	mustCreate(t, f.db, &other)
	foreign := entity.Meal{Name: "Imported", Price: 100, Available: true, StoreID: other.ID}
	mustCreate(t, f.db, &foreign)
	_, err := f.svc.Create(f.student.ID, &CreateOrderIn{
		StoreID: f.store.ID,
		Items:   []OrderItemIn{{MealID: foreign.ID, Qty: 1}},
	})
	if !IsBadInput(err) {
		t.Fatalf("foreign meal: got %v, want bad-input", err)
	}

	// sold-out meal
	if err := f.db.Model(&entity.Meal{}).Where("id = ?", f.meals[1].ID).
		Update("available", false).Error; err != nil {
		t.Fatalf("mark unavailable: %v", err)
	}
	_, err = f.svc.Create(f.student.ID, &CreateOrderIn{
		StoreID: f.store.ID,
		Items:   []OrderItemIn{{MealID: f.meals[1].ID, Qty: 1}},
	})
	if !IsBadInput(err) {
		t.Fatalf("unavailable meal: got %v, want bad-input", err)
	}
}

func TestPickupSlotCapacity(t *testing.T) {
	f := newOrderFixture(t, []entity.PickupSlot{
		{Slot: "11:30-12:00", Limit: 2},
		{Slot: "12:00-12:30", Limit: 5},
	})

	// a slot the store never configured
	_, err := f.svc.Create(f.student.ID, &CreateOrderIn{
		StoreID:    f.store.ID,
		PickupSlot: "23:00-23:30",
		Items:      []OrderItemIn{{MealID: f.meals[0].ID, Qty: 1}},
	})
	if err != ErrUnknownSlot {
		t.Fatalf("unknown slot: got %v, want ErrUnknownSlot", err)
	}

	first := f.place(t, "11:30-12:00")
	f.place(t, "11:30-12:00")

	// slot full
	_, err = f.svc.Create(f.student.ID, &CreateOrderIn{
		StoreID:    f.store.ID,
		PickupSlot: "11:30-12:00",
		Items:      []OrderItemIn{{MealID: f.meals[0].ID, Qty: 1}},
	})
	if err != ErrSlotFull {
		t.Fatalf("full slot: got %v, want ErrSlotFull", err)
	}

	// the other slot is unaffected
	f.place(t, "12:00-12:30")

	// cancelling frees capacity
	if err := f.svc.Cancel(f.student.ID, entity.RoleStudent, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	f.place(t, "11:30-12:00")
}

func TestPickupTimeDerivedFromSlot(t *testing.T) {
	f := newOrderFixture(t, []entity.PickupSlot{{Slot: "11:30-12:00", Limit: 5}})

	out := f.place(t, "11:30-12:00")
	o, err := f.svc.Repo.Get(out.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.PickupTime == nil {
		t.Fatal("pickup time not set from slot")
	}
	if o.PickupTime.Hour() != 11 || o.PickupTime.Minute() != 30 {
		t.Fatalf("pickup time = %v, want 11:30 today", o.PickupTime)
	}
	now := time.Now()
	if o.PickupTime.Day() != now.Day() {
		t.Fatalf("pickup time on wrong day: %v", o.PickupTime)
	}
}

func TestSubmitPaymentProofGuard(t *testing.T) {
	f := newOrderFixture(t, nil)
	slip := base64.StdEncoding.EncodeToString([]byte("slip-bytes"))

	out := f.place(t, "")
	o, err := f.svc.SubmitPaymentProof(f.student.ID, out.ID, slip)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.Status != entity.StatusPaymentSubmitted {
		t.Fatalf("status = %q, want payment_submitted", o.Status)
	}
	if o.PaymentProofURL == "" {
		t.Fatal("proof url not set")
	}

	// submitting twice is a conflict
	if _, err := f.svc.SubmitPaymentProof(f.student.ID, out.ID, slip); err != ErrInvalidTransition {
		t.Fatalf("second submit: got %v, want ErrInvalidTransition", err)
	}

	// a cancelled order refuses the proof and leaves no file behind
	out2 := f.place(t, "")
	if err := f.svc.Cancel(f.student.ID, entity.RoleStudent, out2.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.svc.SubmitPaymentProof(f.student.ID, out2.ID, slip); err != ErrInvalidTransition {
		t.Fatalf("submit on cancelled: got %v, want ErrInvalidTransition", err)
	}

	dir := filepath.Join(f.svc.UploadDir, "payment-proofs", fmt.Sprintf("%d", f.store.ID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read proof dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("proof files = %d, want only the accepted one", len(entries))
	}
}

func TestAdvanceWalksTheLinearFlow(t *testing.T) {
	f := newOrderFixture(t, nil)
	out := f.place(t, "")

	// skipping a step is refused
	err := f.svc.Advance(f.owner.ID, entity.RoleStaff, out.ID, entity.StatusConfirmed)
	if err != ErrInvalidTransition {
		t.Fatalf("skip: got %v, want ErrInvalidTransition", err)
	}

	for _, target := range []string{
		entity.StatusPaymentSubmitted,
		entity.StatusConfirmed,
		entity.StatusReady,
		entity.StatusClaimed,
	} {
		if err := f.svc.Advance(f.owner.ID, entity.RoleStaff, out.ID, target); err != nil {
			t.Fatalf("advance to %s: %v", target, err)
		}
	}

	// claimed is terminal
	err = f.svc.Advance(f.owner.ID, entity.RoleStaff, out.ID, entity.StatusClaimed)
	if err != ErrInvalidTransition {
		t.Fatalf("advance past claimed: got %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceChecksStoreAccess(t *testing.T) {
	f := newOrderFixture(t, nil)
	out := f.place(t, "")

	stranger := entity.User{Email: "stranger@x.com", Role: entity.RoleStaff}
	mustCreate(t, f.db, &stranger)

	err := f.svc.Advance(stranger.ID, entity.RoleStaff, out.ID, entity.StatusPaymentSubmitted)
	if err != ErrForbidden {
		t.Fatalf("foreign staff: got %v, want ErrForbidden", err)
	}

	// admin passes the same gate
	admin := entity.User{Email: "admin@x.com", Role: entity.RoleAdmin}
	mustCreate(t, f.db, &admin)
	if err := f.svc.Advance(admin.ID, entity.RoleAdmin, out.ID, entity.StatusPaymentSubmitted); err != nil {
		t.Fatalf("admin advance: %v", err)
	}
}

func TestCancelOnlyBeforeConfirm(t *testing.T) {
	f := newOrderFixture(t, nil)
	out := f.place(t, "")

	// move to confirmed
	for _, target := range []string{entity.StatusPaymentSubmitted, entity.StatusConfirmed} {
		if err := f.svc.Advance(f.owner.ID, entity.RoleStaff, out.ID, target); err != nil {
			t.Fatalf("advance to %s: %v", target, err)
		}
	}

	if err := f.svc.Cancel(f.student.ID, entity.RoleStudent, out.ID); err != ErrInvalidTransition {
		t.Fatalf("cancel confirmed: got %v, want ErrInvalidTransition", err)
	}

	// a fresh order cancels fine, and cancelled is terminal
	out2 := f.place(t, "")
	if err := f.svc.Cancel(f.student.ID, entity.RoleStudent, out2.ID); err != nil {
		t.Fatalf("cancel fresh: %v", err)
	}
	err := f.svc.Advance(f.owner.ID, entity.RoleStaff, out2.ID, entity.StatusPaymentSubmitted)
	if err != ErrInvalidTransition {
		t.Fatalf("advance cancelled: got %v, want ErrInvalidTransition", err)
	}
}

func TestCancelStaleSweep(t *testing.T) {
	f := newOrderFixture(t, nil)
	stale := f.place(t, "")
	fresh := f.place(t, "")

	// age the first order past the TTL
	old := time.Now().Add(-2 * time.Hour)
	if err := f.db.Model(&entity.Order{}).Where("id = ?", stale.ID).
		Update("created_at", old).Error; err != nil {
		t.Fatalf("age order: %v", err)
	}

	repo := repository.NewOrderRepository(f.db)
	n, err := repo.CancelStale(30 * time.Minute)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("swept %d orders, want 1", n)
	}

	got, _ := repo.Get(stale.ID)
	if got.Status != entity.StatusCancelled {
		t.Fatalf("stale order status = %q, want cancelled", got.Status)
	}
	got, _ = repo.Get(fresh.ID)
	if got.Status != entity.StatusPendingPayment {
		t.Fatalf("fresh order status = %q, want pending_payment", got.Status)
	}
}
