package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/repository"
	"tennis-academy-api/pkg/apierror"
)

type fakeEventStore struct {
	insertErr error
	cancelErr error
	inserted  []repository.NewEvent
}

func (f *fakeEventStore) Insert(_ context.Context, ev repository.NewEvent) (model.Event, error) {
	if f.insertErr != nil {
		return model.Event{}, f.insertErr
	}
	f.inserted = append(f.inserted, ev)
	return model.Event{
		ID:      "7d9a4f6e-0000-4000-8000-000000000001",
		CourtID: ev.CourtID,
		Kind:    ev.Kind,
		Status:  ev.Status,
		StartAt: ev.StartAt,
		EndAt:   ev.EndAt,
	}, nil
}

func (f *fakeEventStore) Cancel(_ context.Context, eventID string) (model.Event, error) {
	if f.cancelErr != nil {
		return model.Event{}, f.cancelErr
	}
	return model.Event{ID: eventID, Status: model.StatusCancelado}, nil
}

const (
	testCourtID   = "0b4c1de2-9a31-4b58-b7a4-111111111111"
	testTeacherID = "0b4c1de2-9a31-4b58-b7a4-222222222222"
	testUserID    = "0b4c1de2-9a31-4b58-b7a4-333333333333"
)

func validEventRequest() model.CreateEventRequest {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	teacherID := testTeacherID
	return model.CreateEventRequest{
		CourtID:   testCourtID,
		Kind:      model.KindAulaRegular,
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		TeacherID: &teacherID,
	}
}

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.HTTPStatus)
}

func TestBookingCreateValidation(t *testing.T) {
	t.Parallel()

	t.Run("rejects end_at before start_at", func(t *testing.T) {
		store := &fakeEventStore{}
		s := NewBookingService(store)

		req := validEventRequest()
		req.EndAt = req.StartAt.Add(-time.Minute)

		_, err := s.Create(context.Background(), req, testUserID)
		requireValidationError(t, err)
		require.Empty(t, store.inserted)
	})

	t.Run("rejects end_at equal to start_at", func(t *testing.T) {
		store := &fakeEventStore{}
		s := NewBookingService(store)

		req := validEventRequest()
		req.EndAt = req.StartAt

		_, err := s.Create(context.Background(), req, testUserID)
		requireValidationError(t, err)
	})

	t.Run("rejects lesson without teacher", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{})

		req := validEventRequest()
		req.TeacherID = nil

		_, err := s.Create(context.Background(), req, testUserID)
		requireValidationError(t, err)
	})

	t.Run("rental without teacher is fine", func(t *testing.T) {
		store := &fakeEventStore{}
		s := NewBookingService(store)

		req := validEventRequest()
		req.Kind = model.KindLocacao
		req.TeacherID = nil

		_, err := s.Create(context.Background(), req, testUserID)
		require.NoError(t, err)
		require.Len(t, store.inserted, 1)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{})

		req := validEventRequest()
		req.Kind = "torneio"

		_, err := s.Create(context.Background(), req, testUserID)
		requireValidationError(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{})

		req := validEventRequest()
		req.Status = "pendente"

		_, err := s.Create(context.Background(), req, testUserID)
		requireValidationError(t, err)
	})

	t.Run("rejects malformed court uuid", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{})

		req := validEventRequest()
		req.CourtID = "quadra-1"

		_, err := s.Create(context.Background(), req, testUserID)
		requireValidationError(t, err)
	})

	t.Run("defaults status to confirmado", func(t *testing.T) {
		store := &fakeEventStore{}
		s := NewBookingService(store)

		_, err := s.Create(context.Background(), validEventRequest(), testUserID)
		require.NoError(t, err)
		require.Equal(t, model.StatusConfirmado, store.inserted[0].Status)
	})
}

func TestBookingCreateConflicts(t *testing.T) {
	t.Parallel()

	t.Run("court conflict passes through", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{insertErr: model.ErrCourtBusy})

		_, err := s.Create(context.Background(), validEventRequest(), testUserID)
		require.ErrorIs(t, err, model.ErrCourtBusy)
	})

	t.Run("teacher conflict passes through", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{insertErr: model.ErrTeacherBusy})

		_, err := s.Create(context.Background(), validEventRequest(), testUserID)
		require.ErrorIs(t, err, model.ErrTeacherBusy)
	})

	t.Run("dangling reference passes through", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{insertErr: model.ErrInvalidReference})

		_, err := s.Create(context.Background(), validEventRequest(), testUserID)
		require.ErrorIs(t, err, model.ErrInvalidReference)
	})

	t.Run("unknown persistence failure becomes 400 with the driver message", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{insertErr: errors.New("connection reset")})

		_, err := s.Create(context.Background(), validEventRequest(), testUserID)

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
		require.Contains(t, apiErr.Details, "connection reset")
	})
}

func TestBookingCancel(t *testing.T) {
	t.Parallel()

	t.Run("flips status to cancelado", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{})

		event, err := s.Cancel(context.Background(), testCourtID)
		require.NoError(t, err)
		require.Equal(t, model.StatusCancelado, event.Status)
	})

	t.Run("missing event is not found", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{cancelErr: model.ErrEventNotFound})

		_, err := s.Cancel(context.Background(), testCourtID)
		require.ErrorIs(t, err, model.ErrEventNotFound)
	})

	t.Run("malformed id is a validation error", func(t *testing.T) {
		s := NewBookingService(&fakeEventStore{})

		_, err := s.Cancel(context.Background(), "not-a-uuid")
		requireValidationError(t, err)
	})
}
