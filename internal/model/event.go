package model

import "time"

// Event kinds and statuses keep the values the database enums use.
const (
	KindAulaRegular  = "aula_regular"
	KindPrimeiraAula = "primeira_aula"
	KindLocacao      = "locacao"
	KindBloqueio     = "bloqueio"

	StatusConfirmado = "confirmado"
	StatusCancelado  = "cancelado"
)

func ValidKind(kind string) bool {
	switch kind {
	case KindAulaRegular, KindPrimeiraAula, KindLocacao, KindBloqueio:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	return status == StatusConfirmado || status == StatusCancelado
}

// IsLessonKind reports whether the kind requires a teacher.
func IsLessonKind(kind string) bool {
	return kind == KindAulaRegular || kind == KindPrimeiraAula
}

type Event struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	TeacherID *string   `json:"teacher_id"`
	StudentID *string   `json:"student_id"`
	CreatedBy *string   `json:"created_by"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
