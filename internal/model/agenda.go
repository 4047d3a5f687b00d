package model

import "time"

// AgendaItem mirrors the row shape produced by fn_agenda_periodo.
type AgendaItem struct {
	EventID         string    `json:"event_id"`
	Kind            string    `json:"kind"`
	Status          string    `json:"status"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Notes           *string   `json:"notes"`
	CourtID         string    `json:"court_id"`
	CourtName       string    `json:"court_name"`
	TeacherID       *string   `json:"teacher_id"`
	TeacherName     *string   `json:"teacher_name"`
	StudentID       *string   `json:"student_id"`
	StudentName     *string   `json:"student_name"`
	CreatedByUserID *string   `json:"created_by_user_id"`
	CreatedByEmail  *string   `json:"created_by_email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AvailableCourt struct {
	CourtID   string `json:"court_id"`
	CourtName string `json:"court_name"`
}

type AvailableTeacher struct {
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}

// AgendaFilter carries the optional narrowing parameters of the agenda query.
type AgendaFilter struct {
	Status    *string
	Kind      *string
	CourtID   *string
	TeacherID *string
}
