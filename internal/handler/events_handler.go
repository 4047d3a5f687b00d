package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tennis-academy-api/internal/middleware"
	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/service"
	"tennis-academy-api/pkg/apierror"
)

type EventsHandler struct {
	service *service.BookingService
}

func NewEventsHandler(service *service.BookingService) *EventsHandler {
	return &EventsHandler{service: service}
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	event, err := h.service.Create(r.Context(), payload, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")

	event, err := h.service.Cancel(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}
