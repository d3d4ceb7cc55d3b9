package booking

import (
	"fmt"

	bookingModel "campusstay/models/booking"
)

// BookingCreateRequest represents the request payload for creating a booking
type BookingCreateRequest struct {
	AccommodationID uint   `json:"accommodation_id" validate:"required"`
	Duration        string `json:"duration" validate:"required,oneof=semester annual"`
}

func (b BookingCreateRequest) Validate() error {
	if b.AccommodationID == 0 {
		return fmt.Errorf("accommodation_id is required")
	}
	if !bookingModel.Duration(b.Duration).IsValid() {
		return fmt.Errorf("duration must be semester or annual")
	}
	return nil
}

// BookingCreateResponse carries the hosted checkout redirect for the caller.
type BookingCreateResponse struct {
	BookingID   uint    `json:"booking_id"`
	TotalPrice  float64 `json:"total_price"`
	Months      int     `json:"months"`
	SessionID   string  `json:"session_id"`
	RedirectURL string  `json:"redirect_url"`
}
