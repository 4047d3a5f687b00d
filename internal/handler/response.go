package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError translates service and repository failures into the error
// envelope. Sentinel errors carry the domain outcome; *APIError carries
// its own status.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	} else if errors.Is(err, model.ErrUserInactive) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "User is inactive"
	} else if errors.Is(err, model.ErrInvalidToken) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid or expired token"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "User already registered"
	} else if errors.Is(err, model.ErrEventNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Event not found"
	} else if errors.Is(err, model.ErrCourtBusy) {
		status = http.StatusConflict
		body.Code = "COURT_BUSY"
		body.Message = "The court is already booked for this time range"
	} else if errors.Is(err, model.ErrTeacherBusy) {
		status = http.StatusConflict
		body.Code = "TEACHER_BUSY"
		body.Message = "The teacher is already booked for this time range"
	} else if errors.Is(err, model.ErrSlotUnavailable) {
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "Time slot unavailable"
	} else if errors.Is(err, model.ErrInvalidReference) {
		status = http.StatusUnprocessableEntity
		body.Code = "UNPROCESSABLE"
		body.Message = "Invalid reference: court, teacher or student does not exist"
	} else if errors.Is(err, model.ErrMissingAPIKey) {
		status = http.StatusInternalServerError
		body.Code = "CONFIG_ERROR"
		body.Message = "YouTube API key is not configured"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.ErrorResponse{Success: false, Error: body})
}

func parseIntOrDefault(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func optionalQueryParam(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
