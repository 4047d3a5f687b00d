package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"tennis-academy-api/internal/config"
	"tennis-academy-api/internal/middleware"
	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/service"
	"tennis-academy-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
	cfg     *config.Config
}

func NewAuthHandler(service *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	tokens, refreshToken, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)
	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cfg.RefreshCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		writeError(w, apierror.Unauthorized("refresh token missing"))
		return
	}

	tokens, refreshToken, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)
	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "ok"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"user_id": userID})
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.RefreshCookieName,
		Value:    token,
		Path:     h.cfg.RefreshCookiePath,
		Domain:   h.cfg.RefreshCookieDomain,
		MaxAge:   int(h.service.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.RefreshCookieSecure,
		SameSite: cookieSameSite(h.cfg.RefreshCookieSameSite),
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.RefreshCookieName,
		Value:    "",
		Path:     h.cfg.RefreshCookiePath,
		Domain:   h.cfg.RefreshCookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.RefreshCookieSecure,
		SameSite: cookieSameSite(h.cfg.RefreshCookieSameSite),
	})
}

func cookieSameSite(mode string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
