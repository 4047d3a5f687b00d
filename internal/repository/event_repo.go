package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tennis-academy-api/internal/model"
)

// Postgres error codes the insert can surface.
const (
	pgExclusionViolation  = "23P01"
	pgForeignKeyViolation = "23503"
)

// Constraint names from the events table DDL.
const (
	courtOverlapConstraint   = "ex_events_no_overlap_court"
	teacherOverlapConstraint = "ex_events_no_overlap_teacher"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

type NewEvent struct {
	CourtID   string
	TeacherID *string
	StudentID *string
	CreatedBy string
	Kind      string
	Status    string
	StartAt   time.Time
	EndAt     time.Time
	Notes     *string
}

// Insert persists a booking. Overlap detection is not done here: the
// events table carries exclusion constraints per court and per teacher,
// so concurrent conflicting inserts are serialized by the database and
// exactly one of them fails. The resulting driver error is classified
// by translateInsertError.
func (r *EventRepository) Insert(ctx context.Context, ev NewEvent) (model.Event, error) {
	var out model.Event
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (
		    court_id, teacher_id, student_id, created_by,
		    kind, status, start_at, end_at, notes
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING
		    id, court_id, teacher_id, student_id, created_by,
		    kind, status, start_at, end_at, notes, created_at, updated_at`,
		ev.CourtID, ev.TeacherID, ev.StudentID, ev.CreatedBy,
		ev.Kind, ev.Status, ev.StartAt, ev.EndAt, ev.Notes).
		Scan(&out.ID, &out.CourtID, &out.TeacherID, &out.StudentID, &out.CreatedBy,
			&out.Kind, &out.Status, &out.StartAt, &out.EndAt, &out.Notes,
			&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return model.Event{}, translateInsertError(err)
	}

	return out, nil
}

// translateInsertError maps constraint violations to the closed set of
// booking errors the service layer understands. Anything unrecognized is
// wrapped and passed through.
func translateInsertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("insert event: %w", err)
	}

	switch pgErr.Code {
	case pgExclusionViolation:
		switch pgErr.ConstraintName {
		case courtOverlapConstraint:
			return model.ErrCourtBusy
		case teacherOverlapConstraint:
			return model.ErrTeacherBusy
		}
		return model.ErrSlotUnavailable
	case pgForeignKeyViolation:
		return model.ErrInvalidReference
	}

	return fmt.Errorf("insert event: %w", err)
}

// Cancel flips the event status to cancelado, releasing its hold on the
// overlap constraints, and returns the updated row.
func (r *EventRepository) Cancel(ctx context.Context, eventID string) (model.Event, error) {
	var out model.Event
	err := r.pool.QueryRow(ctx,
		`UPDATE events
		 SET status = 'cancelado'
		 WHERE id = $1
		 RETURNING
		    id, court_id, teacher_id, student_id, created_by,
		    kind, status, start_at, end_at, notes, created_at, updated_at`,
		eventID).
		Scan(&out.ID, &out.CourtID, &out.TeacherID, &out.StudentID, &out.CreatedBy,
			&out.Kind, &out.Status, &out.StartAt, &out.EndAt, &out.Notes,
			&out.CreatedAt, &out.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Event{}, model.ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("cancel event: %w", err)
	}

	return out, nil
}
