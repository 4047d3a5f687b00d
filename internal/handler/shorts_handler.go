package handler

import (
	"net/http"
	"strings"

	"tennis-academy-api/internal/service"
)

type ShortsHandler struct {
	service *service.ShortsService
}

func NewShortsHandler(service *service.ShortsService) *ShortsHandler {
	return &ShortsHandler{service: service}
}

func (h *ShortsHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := parseIntOrDefault(query.Get("limit"), 8)
	keyword := strings.TrimSpace(query.Get("keyword"))

	feed, err := h.service.GetShorts(r.Context(), keyword, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
