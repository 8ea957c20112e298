package services

import "errors"

// Sentinel errors controllers map onto status codes.
var (
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrNotPending        = errors.New("application is not pending")
	ErrEmailTaken        = errors.New("email already in use")
	ErrNoStagedPassword  = errors.New("no staged password and none supplied")
	ErrStaffPending      = errors.New("staff_pending")
	ErrStaffRejected     = errors.New("staff_rejected")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidTransition = errors.New("invalid_or_conflict")
	ErrSlotFull          = errors.New("pickup slot is full")
	ErrUnknownSlot       = errors.New("unknown pickup slot")
	ErrDuplicateRating   = errors.New("order already rated")
	ErrNotClaimed        = errors.New("order not claimed yet")
)
