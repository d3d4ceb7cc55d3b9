package booking

import (
	"time"

	"campusstay/models/accommodation"
	"campusstay/models/user"
)

// Booking represents a tenancy booking for an accommodation.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	// Foreign key for accommodation relationship
	AccommodationID uint                        `gorm:"not null;index" json:"accommodation_id"`
	Accommodation   accommodation.Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation"`

	Duration   Duration `gorm:"type:varchar(20);not null" json:"duration"`
	Months     int      `gorm:"not null" json:"months"`
	TotalPrice float64  `gorm:"not null" json:"total_price"`

	Status BookingStatus `gorm:"type:varchar(20);not null;default:'approved'" json:"status"`

	// Opaque identifier returned by the payment provider for the checkout attempt
	CheckoutSessionID *string `gorm:"type:varchar(100);index" json:"checkout_session_id,omitempty"`

	MoveInDate  time.Time `json:"move_in_date"`
	MoveOutDate time.Time `json:"move_out_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
