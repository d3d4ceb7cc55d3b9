package accommodation

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"campusstay/models/user"
)

// Accommodation represents a student housing listing.
type Accommodation struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title            string      `gorm:"type:varchar(200);not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	Location         string      `gorm:"type:varchar(200);not null" json:"location"`
	RoomType         string      `gorm:"type:varchar(50);not null" json:"room_type"`
	PricePerMonth    float64     `gorm:"not null" json:"price_per_month"`
	Capacity         int         `gorm:"not null" json:"capacity"`
	CurrentOccupancy int         `gorm:"default:0" json:"current_occupancy"`
	ImageFilename    *string     `gorm:"type:varchar(100)" json:"image_filename,omitempty"`
	Amenities        StringSlice `gorm:"type:json" json:"amenities"`
	IsActive         bool        `gorm:"default:true" json:"is_active"`

	// Foreign key for the admin who created the listing
	AdminID *uint      `gorm:"index" json:"admin_id,omitempty"`
	Admin   *user.User `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"admin,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AvailableSpots returns how many beds are still open.
func (a *Accommodation) AvailableSpots() int {
	return a.Capacity - a.CurrentOccupancy
}

// IsFull reports whether occupancy has reached capacity.
func (a *Accommodation) IsFull() bool {
	return a.CurrentOccupancy >= a.Capacity
}

// AmenityVocabulary lists the amenity tags a listing may carry.
var AmenityVocabulary = []string{
	"wifi",
	"parking",
	"laundry",
	"gym",
	"furnished",
	"security",
	"pool",
	"study_area",
}

// IsKnownAmenity reports whether tag belongs to the fixed amenity vocabulary.
func IsKnownAmenity(tag string) bool {
	for _, known := range AmenityVocabulary {
		if tag == known {
			return true
		}
	}
	return false
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Contains reports whether the slice holds the given tag.
func (ss StringSlice) Contains(tag string) bool {
	for _, s := range ss {
		if s == tag {
			return true
		}
	}
	return false
}
