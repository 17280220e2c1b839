package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	// Completed exists in the schema but no operation produces it yet.
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Booking struct {
	Base
	OrderID         string        `db:"order_id"`
	UserID          uuid.UUID     `db:"user_id"`
	PackageID       uuid.UUID     `db:"package_id"`
	TravelDate      time.Time     `db:"travel_date"`
	Travelers       int           `db:"number_of_travelers"`
	TotalAmount     float64       `db:"total_amount"`
	Status          BookingStatus `db:"status"`
	SpecialRequests *string       `db:"special_requests"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
}
