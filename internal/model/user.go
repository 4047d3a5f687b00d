package model

import "time"

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Whatsapp     string     `json:"whatsapp"`
	Instagram    *string    `json:"instagram,omitempty"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AuthClaims is the decoded claim set shared by both token kinds.
type AuthClaims struct {
	UserID string `json:"sub"`
	Type   string `json:"type"`
}

// Declared interest categories a registration may carry.
const (
	IntentLesson  = "lesson"
	IntentRental  = "rental"
	IntentStudent = "student"
)

func ValidIntent(intent string) bool {
	switch intent {
	case IntentLesson, IntentRental, IntentStudent:
		return true
	}
	return false
}
