package services

import (
	"testing"

	"quickbite/entity"
)

func seedClaimedOrder(t *testing.T, f *orderFixture) *CreateOrderOut {
	t.Helper()
	out := f.place(t, "")
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
	return out
}

func TestRatingOncePerOrder(t *testing.T) {
	f := newOrderFixture(t, nil)
	ratings := NewRatingService(f.db, t.TempDir())
	out := seedClaimedOrder(t, f)

	rt, err := ratings.Create(f.student.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 4, Comment: "fast, still hot",
	})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rt.StoreID != f.store.ID {
		t.Fatalf("rating store = %d, want %d", rt.StoreID, f.store.ID)
	}

	if _, err := ratings.Create(f.student.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 1, Comment: "changed my mind",
	}); err != ErrDuplicateRating {
		t.Fatalf("second rating: got %v, want ErrDuplicateRating", err)
	}
}

func TestRatingRequiresClaimedOrder(t *testing.T) {
	f := newOrderFixture(t, nil)
	ratings := NewRatingService(f.db, t.TempDir())
	out := f.place(t, "")

	if _, err := ratings.Create(f.student.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 5,
	}); err != ErrNotClaimed {
		t.Fatalf("unclaimed order: got %v, want ErrNotClaimed", err)
	}
}

func TestRatingGuards(t *testing.T) {
	f := newOrderFixture(t, nil)
	ratings := NewRatingService(f.db, t.TempDir())
	out := seedClaimedOrder(t, f)

	// score out of range
	if _, err := ratings.Create(f.student.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 6,
	}); !IsBadInput(err) {
		t.Fatalf("score 6: got %v, want bad-input", err)
	}
	if _, err := ratings.Create(f.student.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 0,
	}); !IsBadInput(err) {
		t.Fatalf("score 0: got %v, want bad-input", err)
	}

	// only the order's student may rate it
	other := entity.User{Email: "other@x.com", Role: entity.RoleStudent}
	mustCreate(t, f.db, &other)
	if _, err := ratings.Create(other.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 3,
	}); err != ErrNotFound {
		t.Fatalf("foreign student: got %v, want ErrNotFound", err)
	}
}

func TestRatingListForStore(t *testing.T) {
	f := newOrderFixture(t, nil)
	ratings := NewRatingService(f.db, t.TempDir())
	out := seedClaimedOrder(t, f)

	if _, err := ratings.Create(f.student.ID, &CreateRatingIn{
		OrderID: out.ID, Rating: 5, Comment: "perfect",
	}); err != nil {
		t.Fatalf("rate: %v", err)
	}

	views, err := ratings.ListForStore(f.store.ID, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("view count = %d, want 1", len(views))
	}
	if views[0].Rating != 5 {
		t.Fatalf("rating = %d, want 5", views[0].Rating)
	}
}
