package review

import (
	"time"

	"campusstay/models/accommodation"
	"campusstay/models/user"
)

// Review is a rating and comment left by a user who paid for a stay.
// A user may review a given accommodation at most once.
type Review struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint      `gorm:"not null;uniqueIndex:idx_reviews_user_accommodation" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	AccommodationID uint                        `gorm:"not null;uniqueIndex:idx_reviews_user_accommodation" json:"accommodation_id"`
	Accommodation   accommodation.Accommodation `gorm:"foreignKey:AccommodationID" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
