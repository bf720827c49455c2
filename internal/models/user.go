package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Password          string    `json:"-"`
	EducationLevel    string    `json:"education_level"`
	ExamSpecification string    `json:"exam_specification"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Username derives the display handle shown on the home screen
// (the part of the email before the @).
func (u User) Username() string {
	if i := strings.IndexByte(u.Email, '@'); i >= 0 {
		return u.Email[:i]
	}
	return u.Email
}

type RegisterRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	EducationLevel    string `json:"education_level"`
	ExamSpecification string `json:"exam_specification"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	EducationLevel    *string `json:"education_level,omitempty"`
	ExamSpecification *string `json:"exam_specification,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
