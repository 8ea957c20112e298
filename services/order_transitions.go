// services/order_transitions.go
package services

import (
	"quickbite/entity"

	"gorm.io/gorm"
)

// Advance moves an order one step along the linear flow. Staff may only move
// orders of their own store; the target must be the exact successor of the
// current status; the write is a compare-and-set so concurrent actions lose
// cleanly instead of overwriting each other.
func (s *OrderService) Advance(userID uint, role string, orderID uint, target string) error {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.requireStoreAccess(o.StoreID, userID, role); err != nil {
		return err
	}

	next := entity.NextStatus(o.Status)
	if next == "" || next != target {
		return ErrInvalidTransition
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, target)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}

// Cancel is reachable by the order's student or the store side, but only
// before the store confirms. Cancelled is terminal.
func (s *OrderService) Cancel(userID uint, role string, orderID uint) error {
	o, err := s.Repo.Get(orderID)
	if err != nil {
		return ErrNotFound
	}

	if o.StudentID != userID {
		if err := s.requireStoreAccess(o.StoreID, userID, role); err != nil {
			return err
		}
	}

	if !entity.CanCancel(o.Status) {
		return ErrInvalidTransition
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, entity.StatusCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}
