package repository

import "errors"

// Sentinel errors surfaced by the transactional lifecycle methods. The
// checks they guard run inside the storage transaction, so callers cannot
// distinguish these cases from returned rows alone.
var (
	ErrPackageNotFound        = errors.New("package not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInsufficientSlots      = errors.New("insufficient available slots")
	ErrBookingNotPending      = errors.New("booking is not pending")
	ErrConfirmedBookingsExist = errors.New("package has confirmed bookings")
)
