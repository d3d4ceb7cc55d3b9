package accommodation

import (
	"fmt"
	"strings"

	accommodationModel "campusstay/models/accommodation"
)

// AccommodationRequest is the admin payload for creating or updating a listing.
type AccommodationRequest struct {
	Title            string   `json:"title" validate:"required,min=1,max=200"`
	Description      string   `json:"description"`
	Location         string   `json:"location" validate:"required,min=1,max=200"`
	RoomType         string   `json:"room_type" validate:"required,min=1,max=50"`
	PricePerMonth    float64  `json:"price_per_month" validate:"required,gt=0"`
	Capacity         int      `json:"capacity" validate:"required,min=1"`
	CurrentOccupancy int      `json:"current_occupancy" validate:"min=0"`
	Amenities        []string `json:"amenities"`
	ImageFilename    string   `json:"image_filename"`
}

func (a AccommodationRequest) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(a.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if strings.TrimSpace(a.RoomType) == "" {
		return fmt.Errorf("room type is required")
	}
	if a.PricePerMonth <= 0 {
		return fmt.Errorf("price per month must be positive")
	}
	if a.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	if a.CurrentOccupancy < 0 {
		return fmt.Errorf("current occupancy cannot be negative")
	}
	if a.CurrentOccupancy > a.Capacity {
		return fmt.Errorf("current occupancy cannot exceed capacity")
	}
	for _, tag := range a.Amenities {
		if !accommodationModel.IsKnownAmenity(tag) {
			return fmt.Errorf("unknown amenity: %s", tag)
		}
	}
	return nil
}

// SearchQuery holds the optional public listing filters.
type SearchQuery struct {
	Location string  `query:"location"`
	MinPrice float64 `query:"min_price"`
	MaxPrice float64 `query:"max_price"`
}
