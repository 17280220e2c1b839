package request

type CreateBookingRequest struct {
	PackageID       string  `json:"package_id" validate:"required,uuid4"`
	TravelDate      string  `json:"travel_date" validate:"required,datetime=2006-01-02"`
	Travelers       int     `json:"number_of_travelers" validate:"required,min=1,max=50"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=500"`
}
