package response

import (
	"time"

	"travel-portal/internal/data/entity"
)

type PackageResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Destination    string                 `json:"destination"`
	Description    string                 `json:"description"`
	DurationInDays int                    `json:"duration_in_days"`
	Price          float64                `json:"price"`
	ImageURL       *string                `json:"image_url,omitempty"`
	AvailableSlots int                    `json:"available_slots"`
	Category       entity.PackageCategory `json:"category"`
	Highlights     *string                `json:"highlights,omitempty"`
	Includes       *string                `json:"includes,omitempty"`
	Excludes       *string                `json:"excludes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type PackageDeleteResponse struct {
	PackageID       string `json:"package_id"`
	BookingsRemoved int64  `json:"bookings_removed"`
}

// Helper converter
func PackageToResponse(pkg *entity.TourPackage) PackageResponse {
	return PackageResponse{
		ID:             pkg.ID.String(),
		Name:           pkg.Name,
		Destination:    pkg.Destination,
		Description:    pkg.Description,
		DurationInDays: pkg.DurationInDays,
		Price:          pkg.Price,
		ImageURL:       pkg.ImageURL,
		AvailableSlots: pkg.AvailableSlots,
		Category:       pkg.Category,
		Highlights:     pkg.Highlights,
		Includes:       pkg.Includes,
		Excludes:       pkg.Excludes,
		CreatedAt:      pkg.CreatedAt,
	}
}
