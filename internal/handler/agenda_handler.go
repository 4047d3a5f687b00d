package handler

import (
	"net/http"
	"time"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/service"
	"tennis-academy-api/pkg/apierror"
)

type AgendaHandler struct {
	service *service.AgendaService
}

func NewAgendaHandler(service *service.AgendaService) *AgendaHandler {
	return &AgendaHandler{service: service}
}

func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, apierror.Validation("'from' must be an RFC3339 timestamp", "from")
	}

	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, apierror.Validation("'to' must be an RFC3339 timestamp", "to")
	}

	return from, to, nil
}

func (h *AgendaHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	filter := model.AgendaFilter{
		Status:    optionalQueryParam(query.Get("status")),
		Kind:      optionalQueryParam(query.Get("kind")),
		CourtID:   optionalQueryParam(query.Get("court_id")),
		TeacherID: optionalQueryParam(query.Get("teacher_id")),
	}

	items, err := h.service.List(r.Context(), from, to, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *AgendaHandler) AvailableCourts(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}

	courts, err := h.service.AvailableCourts(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, courts)
}

func (h *AgendaHandler) AvailableTeachers(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}

	teachers, err := h.service.AvailableTeachers(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, teachers)
}
