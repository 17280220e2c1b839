package usecase

import "errors"

// User-facing error taxonomy. Handlers map these to HTTP statuses with
// errors.Is; anything else is logged and surfaced as a generic failure.
var (
	// ErrValidation wraps every malformed-input failure (bad field values,
	// unparseable ids and dates) so handlers can map the whole family to a
	// 400 without sniffing error text.
	ErrValidation = errors.New("validation failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrPackageNotFound    = errors.New("package not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	ErrNotBookingOwner    = errors.New("booking belongs to another user")
	ErrPastTravelDate     = errors.New("travel date cannot be in the past")
	ErrInsufficientSlots  = errors.New("not enough available slots")
	ErrBookingNotPending  = errors.New("booking is not in pending status")
	ErrPackageHasBookings = errors.New("package has confirmed bookings and cannot be deleted")
)
