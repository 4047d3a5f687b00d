package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user inactive")

	// Token related errors
	ErrInvalidToken = errors.New("invalid token")

	// Booking related errors; the repository translates Postgres
	// constraint violations into exactly one of these.
	ErrEventNotFound    = errors.New("event not found")
	ErrCourtBusy        = errors.New("court already booked for this time range")
	ErrTeacherBusy      = errors.New("teacher already booked for this time range")
	ErrSlotUnavailable  = errors.New("time slot unavailable")
	ErrInvalidReference = errors.New("invalid reference: court, teacher or student does not exist")

	// Shorts related errors
	ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY is not configured")
)
