package model

import "time"

type RegisterRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Whatsapp  string `json:"whatsapp"`
	Instagram string `json:"instagram,omitempty"`
	Intent    string `json:"intent"`
}

type RegisterResponse struct {
	UserID      string `json:"user_id"`
	Created     bool   `json:"created"`
	IntentAdded bool   `json:"intent_added"`
	Intent      string `json:"intent"`
	Email       string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CreateEventRequest struct {
	CourtID   string    `json:"court_id"`
	Kind      string    `json:"kind"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Notes     *string   `json:"notes,omitempty"`
	TeacherID *string   `json:"teacher_id,omitempty"`
	StudentID *string   `json:"student_id,omitempty"`
	Status    string    `json:"status,omitempty"`
}
