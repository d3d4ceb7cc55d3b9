package review

import "fmt"

// ReviewCreateRequest represents the request payload for submitting a review
type ReviewCreateRequest struct {
	AccommodationID uint   `json:"accommodation_id" validate:"required"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	Comment         string `json:"comment" validate:"omitempty,max=2000"`
}

func (r ReviewCreateRequest) Validate() error {
	if r.AccommodationID == 0 {
		return fmt.Errorf("accommodation_id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
