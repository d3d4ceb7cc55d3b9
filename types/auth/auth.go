package auth

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegisterRequest struct {
	FullName      string `json:"full_name" validate:"required,min=1,max=100"`
	Email         string `json:"email" validate:"required,email"`
	StudentNumber string `json:"student_number" validate:"required,len=8"`
	IDNumber      string `json:"id_number" validate:"required,len=13"`
	Phone         string `json:"phone" validate:"required,len=10"`
	Password      string `json:"password" validate:"required,min=8"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.StudentNumber) != 8 {
		return fmt.Errorf("student number must be 8 digits")
	}
	if len(r.IDNumber) != 13 {
		return fmt.Errorf("id number must be 13 digits")
	}
	if len(r.Phone) != 10 {
		return fmt.Errorf("phone must be 10 digits")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
