package favorite

import (
	"time"

	"campusstay/models/accommodation"
	"campusstay/models/user"
)

// Favorite marks an accommodation saved by a user. Membership only,
// no ordering semantics.
type Favorite struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_accommodation" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"-"`

	AccommodationID uint                        `gorm:"not null;uniqueIndex:idx_favorites_user_accommodation" json:"accommodation_id"`
	Accommodation   accommodation.Accommodation `gorm:"foreignKey:AccommodationID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
