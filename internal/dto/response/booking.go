package response

import (
	"time"

	"travel-portal/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	OrderID         string               `json:"order_id"`
	UserID          string               `json:"user_id"`
	PackageID       string               `json:"package_id"`
	PackageName     string               `json:"package_name,omitempty"`
	Destination     string               `json:"destination,omitempty"`
	TravelDate      string               `json:"travel_date"`
	Travelers       int                  `json:"number_of_travelers"`
	TotalAmount     float64              `json:"total_amount"`
	Status          entity.BookingStatus `json:"status"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	PaymentStatus   entity.PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time            `json:"created_at"`
}

// BookingListResponse bundles a page of bookings with the dashboard counters.
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination PaginationMeta    `json:"pagination"`
	Stats      BookingStats      `json:"stats"`
}

type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
}

// Helper converter; pkg may be nil when the caller has no package loaded.
func BookingToResponse(booking *entity.Booking, pkg *entity.TourPackage) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID.String(),
		OrderID:         booking.OrderID,
		UserID:          booking.UserID.String(),
		PackageID:       booking.PackageID.String(),
		TravelDate:      booking.TravelDate.Format("2006-01-02"),
		Travelers:       booking.Travelers,
		TotalAmount:     booking.TotalAmount,
		Status:          booking.Status,
		SpecialRequests: booking.SpecialRequests,
		PaymentStatus:   booking.PaymentStatus,
		CreatedAt:       booking.CreatedAt,
	}

	if pkg != nil {
		resp.PackageName = pkg.Name
		resp.Destination = pkg.Destination
	}

	return resp
}
