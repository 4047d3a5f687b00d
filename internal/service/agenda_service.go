package service

import (
	"context"
	"time"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/pkg/apierror"
)

const maxAgendaWindowDays = 31

type agendaStore interface {
	ListPeriod(ctx context.Context, from time.Time, to time.Time, filter model.AgendaFilter) ([]model.AgendaItem, error)
	AvailableCourts(ctx context.Context, from time.Time, to time.Time) ([]model.AvailableCourt, error)
	AvailableTeachers(ctx context.Context, from time.Time, to time.Time) ([]model.AvailableTeacher, error)
}

// AgendaService only validates the time window; filtering and joining
// happen inside the database functions.
type AgendaService struct {
	store agendaStore
}

func NewAgendaService(store agendaStore) *AgendaService {
	return &AgendaService{store: store}
}

func validateWindow(from time.Time, to time.Time) error {
	if !from.Before(to) {
		return apierror.Validation("'from' must be before 'to'", "")
	}
	return nil
}

func (s *AgendaService) List(ctx context.Context, from time.Time, to time.Time, filter model.AgendaFilter) ([]model.AgendaItem, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}

	// Whole days only: a window of 31 days plus a few hours still passes.
	if int(to.Sub(from).Hours())/24 > maxAgendaWindowDays {
		return nil, apierror.Validation("window too large: maximum is 31 days", "")
	}

	return s.store.ListPeriod(ctx, from, to, filter)
}

func (s *AgendaService) AvailableCourts(ctx context.Context, from time.Time, to time.Time) ([]model.AvailableCourt, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}

	return s.store.AvailableCourts(ctx, from, to)
}

func (s *AgendaService) AvailableTeachers(ctx context.Context, from time.Time, to time.Time) ([]model.AvailableTeacher, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}

	return s.store.AvailableTeachers(ctx, from, to)
}
