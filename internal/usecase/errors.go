package usecase

import "errors"

// Sentinel errors matched with errors.Is in the HTTP layer.
var (
	// ErrNotFound covers lookups of courts, sports, bookings, memberships.
	ErrNotFound = errors.New("not found")
	// ErrValidation is rejected before any lookup and never retried.
	ErrValidation = errors.New("validation failed")
	// ErrCourtUnavailable means the operator-set court status gates the
	// booking regardless of time-slot occupancy.
	ErrCourtUnavailable = errors.New("court unavailable")
	// ErrCapacityExceeded is user-correctable; the message carries the
	// available-units hint.
	ErrCapacityExceeded = errors.New("court capacity exceeded")
	// ErrConflict is the commit-time re-check failure. The caller must
	// re-probe and resubmit; the core never retries on its own.
	ErrConflict = errors.New("booking conflict")
	// ErrDuplicateLeave rejects re-granting an identical leave range.
	ErrDuplicateLeave = errors.New("leave already granted for this range")
	// ErrInvalidDiscount rejects negative discounts and discounts larger
	// than base plus accessories.
	ErrInvalidDiscount = errors.New("invalid discount")
	// ErrAlreadyOnLeave rejects attendance on a leave-covered date.
	ErrAlreadyOnLeave = errors.New("membership is on leave for this date")
)

// Clash reasons surfaced verbatim to the caller.
const (
	ReasonCourtUnavailable = "CourtUnavailable"
	ReasonCapacityExceeded = "CapacityExceeded"
)

// Extension conflict types.
const (
	ConflictTypeBookingExtension    = "booking_extension"
	ConflictTypeMembershipExtension = "membership_extension"
)
