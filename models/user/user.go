package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered student or administrator.
type User struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName      string `gorm:"type:varchar(100);not null" json:"full_name"`
	Email         string `gorm:"type:varchar(120);not null;unique" json:"email"`
	StudentNumber string `gorm:"type:varchar(8);not null;unique" json:"student_number"`
	IDNumber      string `gorm:"type:varchar(13);not null;unique" json:"id_number"`
	Phone         string `gorm:"type:varchar(10);not null;unique" json:"phone"`
	PasswordHash  string `gorm:"type:varchar(128)" json:"-"`
	IsAdmin       bool   `gorm:"type:bool;default:false" json:"is_admin"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// SetPassword hashes the plaintext password and stores the hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
