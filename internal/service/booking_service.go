package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/repository"
	"tennis-academy-api/pkg/apierror"
)

type eventStore interface {
	Insert(ctx context.Context, ev repository.NewEvent) (model.Event, error)
	Cancel(ctx context.Context, eventID string) (model.Event, error)
}

// BookingService validates booking payloads and delegates overlap
// detection to the database exclusion constraints. It never checks for
// conflicts itself: doing that here would race concurrent writers.
type BookingService struct {
	events eventStore
}

func NewBookingService(events eventStore) *BookingService {
	return &BookingService{events: events}
}

func (s *BookingService) Create(ctx context.Context, req model.CreateEventRequest, createdBy string) (model.Event, error) {
	status := req.Status
	if status == "" {
		status = model.StatusConfirmado
	}

	if !req.EndAt.After(req.StartAt) {
		return model.Event{}, apierror.Validation("end_at must be after start_at", "")
	}

	if model.IsLessonKind(req.Kind) && req.TeacherID == nil {
		return model.Event{}, apierror.Validation("teacher_id is required for lessons", "teacher_id")
	}

	if !model.ValidKind(req.Kind) {
		return model.Event{}, apierror.Validation("invalid kind", req.Kind)
	}

	if !model.ValidStatus(status) {
		return model.Event{}, apierror.Validation("invalid status", status)
	}

	if err := validateEventReferences(req); err != nil {
		return model.Event{}, err
	}

	event, err := s.events.Insert(ctx, repository.NewEvent{
		CourtID:   req.CourtID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		CreatedBy: createdBy,
		Kind:      req.Kind,
		Status:    status,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Notes:     req.Notes,
	})
	if err != nil {
		if isBookingError(err) {
			return model.Event{}, err
		}
		// Unrecognized persistence failures surface as 400 with the
		// driver message, matching the error contract of the API.
		return model.Event{}, apierror.New("SAVE_FAILED", "failed to save event", err.Error(), http.StatusBadRequest)
	}

	return event, nil
}

func (s *BookingService) Cancel(ctx context.Context, eventID string) (model.Event, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return model.Event{}, apierror.Validation("invalid event id", eventID)
	}

	return s.events.Cancel(ctx, eventID)
}

func validateEventReferences(req model.CreateEventRequest) error {
	if _, err := uuid.Parse(req.CourtID); err != nil {
		return apierror.Validation("invalid court_id", "court_id")
	}
	if req.TeacherID != nil {
		if _, err := uuid.Parse(*req.TeacherID); err != nil {
			return apierror.Validation("invalid teacher_id", "teacher_id")
		}
	}
	if req.StudentID != nil {
		if _, err := uuid.Parse(*req.StudentID); err != nil {
			return apierror.Validation("invalid student_id", "student_id")
		}
	}
	return nil
}

func isBookingError(err error) bool {
	return errors.Is(err, model.ErrCourtBusy) ||
		errors.Is(err, model.ErrTeacherBusy) ||
		errors.Is(err, model.ErrSlotUnavailable) ||
		errors.Is(err, model.ErrInvalidReference)
}
