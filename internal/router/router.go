package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tennis-academy-api/internal/config"
	"tennis-academy-api/internal/handler"
	"tennis-academy-api/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Events *handler.EventsHandler
	Agenda *handler.AgendaHandler
	Shorts *handler.ShortsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	health := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}

	r.Get("/health", health)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": cfg.AppName + " online",
			"env":     cfg.Env,
			"health":  "/api/v1/health",
		})
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Get("/health", health)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.With(authMiddleware.RequireAuth).Get("/agenda", h.Agenda.List)
		api.With(authMiddleware.RequireAuth).Get("/disponibilidade/quadras", h.Agenda.AvailableCourts)
		api.With(authMiddleware.RequireAuth).Get("/disponibilidade/professores", h.Agenda.AvailableTeachers)

		api.With(authMiddleware.RequireAuth).Post("/events", h.Events.Create)
		api.With(authMiddleware.RequireAuth).Patch("/events/{event_id}/cancel", h.Events.Cancel)

		api.Get("/shorts", h.Shorts.Get)
	})

	return r
}
