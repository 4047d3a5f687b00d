package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tennis-academy-api/internal/model"
)

// AgendaRepository is a pure read-through: all three queries delegate to
// SQL functions and pass rows back untouched.
type AgendaRepository struct {
	pool *pgxpool.Pool
}

func NewAgendaRepository(pool *pgxpool.Pool) *AgendaRepository {
	return &AgendaRepository{pool: pool}
}

func (r *AgendaRepository) ListPeriod(ctx context.Context, from time.Time, to time.Time, filter model.AgendaFilter) ([]model.AgendaItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM fn_agenda_periodo($1, $2, $3, $4, $5, $6)`,
		from, to, filter.Status, filter.Kind, filter.CourtID, filter.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}
	defer rows.Close()

	items := make([]model.AgendaItem, 0)
	for rows.Next() {
		var it model.AgendaItem
		if err := rows.Scan(&it.EventID, &it.Kind, &it.Status, &it.StartAt, &it.EndAt,
			&it.Notes, &it.CourtID, &it.CourtName, &it.TeacherID, &it.TeacherName,
			&it.StudentID, &it.StudentName, &it.CreatedByUserID, &it.CreatedByEmail,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan agenda row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *AgendaRepository) AvailableCourts(ctx context.Context, from time.Time, to time.Time) ([]model.AvailableCourt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM fn_quadras_disponiveis($1, $2)`, from, to)
	if err != nil {
		return nil, fmt.Errorf("available courts: %w", err)
	}
	defer rows.Close()

	courts := make([]model.AvailableCourt, 0)
	for rows.Next() {
		var c model.AvailableCourt
		if err := rows.Scan(&c.CourtID, &c.CourtName); err != nil {
			return nil, fmt.Errorf("scan court row: %w", err)
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

func (r *AgendaRepository) AvailableTeachers(ctx context.Context, from time.Time, to time.Time) ([]model.AvailableTeacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM fn_professores_disponiveis($1, $2)`, from, to)
	if err != nil {
		return nil, fmt.Errorf("available teachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]model.AvailableTeacher, 0)
	for rows.Next() {
		var t model.AvailableTeacher
		if err := rows.Scan(&t.TeacherID, &t.TeacherName); err != nil {
			return nil, fmt.Errorf("scan teacher row: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}
