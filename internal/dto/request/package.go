package request

type PackageRequest struct {
	Name           string  `json:"name" validate:"required,min=3,max=200"`
	Destination    string  `json:"destination" validate:"required,min=2,max=100"`
	Description    string  `json:"description" validate:"required,min=20,max=2000"`
	DurationInDays int     `json:"duration_in_days" validate:"required,min=1,max=365"`
	Price          float64 `json:"price" validate:"min=0"`
	AvailableSlots int     `json:"available_slots" validate:"min=0,max=1000"`
	Category       string  `json:"category" validate:"required,oneof=Adventure Beach Cultural Luxury Wildlife Pilgrimage 'Hill Station'"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Highlights     *string `json:"highlights,omitempty" validate:"omitempty,max=1000"`
	Includes       *string `json:"includes,omitempty" validate:"omitempty,max=1000"`
	Excludes       *string `json:"excludes,omitempty" validate:"omitempty,max=1000"`
}

type PackageSearchRequest struct {
	Keyword  string   `json:"keyword" validate:"omitempty,max=100"`
	Category string   `json:"category" validate:"omitempty,oneof=Adventure Beach Cultural Luxury Wildlife Pilgrimage 'Hill Station'"`
	MinPrice *float64 `json:"min_price" validate:"omitempty,min=0"`
	MaxPrice *float64 `json:"max_price" validate:"omitempty,min=0"`
	Duration string   `json:"duration" validate:"omitempty,oneof=1-3 4-7 8-14 15+"`
}
