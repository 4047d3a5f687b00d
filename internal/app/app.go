package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tennis-academy-api/internal/config"
	"tennis-academy-api/internal/database"
	"tennis-academy-api/internal/handler"
	"tennis-academy-api/internal/middleware"
	"tennis-academy-api/internal/repository"
	"tennis-academy-api/internal/router"
	"tennis-academy-api/internal/service"
	"tennis-academy-api/internal/youtube"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	intentRepo := repository.NewIntentRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	agendaRepo := repository.NewAgendaRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(userRepo, intentRepo,
		cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService, cfg)

	bookingService := service.NewBookingService(eventRepo)
	eventsHandler := handler.NewEventsHandler(bookingService)

	agendaService := service.NewAgendaService(agendaRepo)
	agendaHandler := handler.NewAgendaHandler(agendaService)

	// Without an API key the shorts feed stays up but answers 500,
	// instead of pretending the feed is empty.
	var videoSource *youtube.Client
	if cfg.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY not set; /shorts will return configuration errors")
	} else {
		videoSource = youtube.NewClient(cfg.YouTubeAPIKey, cfg.ShortsRegionCode, cfg.ShortsLanguage, cfg.ShortsHTTPTimeout)
	}
	shortsService := newShortsService(videoSource, cfg)
	shortsHandler := handler.NewShortsHandler(shortsService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   authHandler,
		Events: eventsHandler,
		Agenda: agendaHandler,
		Shorts: shortsHandler,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

// newShortsService keeps the nil-interface subtlety in one place: a nil
// *youtube.Client must become a nil videoSource, not a non-nil interface
// wrapping a nil pointer.
func newShortsService(client *youtube.Client, cfg *config.Config) *service.ShortsService {
	if client == nil {
		return service.NewShortsService(nil, cfg.ShortsCacheSize, cfg.ShortsCacheTTL)
	}
	return service.NewShortsService(client, cfg.ShortsCacheSize, cfg.ShortsCacheTTL)
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()

	slog.Info("server stopped")
	return nil
}
