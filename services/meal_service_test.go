package services

import (
	"testing"

	"quickbite/entity"
)

func TestMealCRUDOwnership(t *testing.T) {
	f := newOrderFixture(t, nil)
	svc := NewMealService(f.db, t.TempDir())

	// a stranger cannot add to someone else's menu
	if _, err := svc.Create(f.store.ID, f.student.ID, entity.RoleStaff, &MealIn{
		Name: "Sneaky Soup", Price: 100,
	}); err != ErrForbidden {
		t.Fatalf("foreign create: got %v, want ErrForbidden", err)
	}

	m, err := svc.Create(f.store.ID, f.owner.ID, entity.RoleStaff, &MealIn{
		Name: "Tom Yum", Detail: "with prawns", Price: 8000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !m.Available {
		t.Fatal("new meal should default to available")
	}

	off := false
	m, err = svc.Update(m.ID, f.owner.ID, entity.RoleStaff, &MealIn{Available: &off})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if m.Available {
		t.Fatal("availability toggle ignored")
	}

	// owner listing still shows it, the public side does not
	meals, err := svc.ListForOwner(f.store.ID, f.owner.ID, entity.RoleStaff)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	found := false
	for _, mm := range meals {
		if mm.ID == m.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("owner listing hides unavailable meal")
	}

	if err := svc.Delete(m.ID, f.student.ID, entity.RoleStaff); err != ErrForbidden {
		t.Fatalf("foreign delete: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(m.ID, f.owner.ID, entity.RoleStaff); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(m.ID, f.owner.ID, entity.RoleStaff); err != ErrNotFound {
		t.Fatalf("double delete: got %v, want ErrNotFound", err)
	}
}
