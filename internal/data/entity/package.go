package entity

type PackageCategory string

const (
	CategoryAdventure   PackageCategory = "Adventure"
	CategoryBeach       PackageCategory = "Beach"
	CategoryCultural    PackageCategory = "Cultural"
	CategoryLuxury      PackageCategory = "Luxury"
	CategoryWildlife    PackageCategory = "Wildlife"
	CategoryPilgrimage  PackageCategory = "Pilgrimage"
	CategoryHillStation PackageCategory = "Hill Station"
)

type TourPackage struct {
	Base
	Name           string          `db:"name"`
	Destination    string          `db:"destination"`
	Description    string          `db:"description"`
	DurationInDays int             `db:"duration_in_days"`
	Price          float64         `db:"price"`
	ImageURL       *string         `db:"image_url"`
	AvailableSlots int             `db:"available_slots"`
	Category       PackageCategory `db:"category"`
	Highlights     *string         `db:"highlights"`
	Includes       *string         `db:"includes"`
	Excludes       *string         `db:"excludes"`
}
