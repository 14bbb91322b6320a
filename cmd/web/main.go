// Package main is the entrypoint for the Inkwell web server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/handler"
	"github.com/inkwell/inkwell/internal/middleware"
	"github.com/inkwell/inkwell/internal/repository"
	"github.com/inkwell/inkwell/internal/server"
	"github.com/inkwell/inkwell/internal/service"
	"github.com/inkwell/inkwell/internal/session"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Session cookie manager; cookies are Secure outside development.
	sessions := session.NewManager(
		[]byte(cfg.SessionSecret),
		cfg.SessionCookieName,
		cfg.SessionMaxAge,
		cfg.IsProduction(),
	)

	// Initialize services
	authService := service.NewAuthService(repo)
	postService := service.NewPostService(repo)

	// Initialize handlers
	renderer, err := handler.NewRenderer(sessions, logger)
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	authHandler := handler.NewAuthHandler(authService, sessions, renderer, logger)
	postHandler := handler.NewPostHandler(postService, renderer, logger)
	healthHandler := handler.NewHealthHandler(repo)

	// Setup router
	r := setupRouter(authHandler, postHandler, healthHandler, sessions, repo, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	healthHandler *handler.HealthHandler,
	sessions *session.Manager,
	repo *repository.Repository,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	// Resolve the session token to an identity once per request,
	// before any handler runs.
	r.Use(middleware.Identity(sessions, repo, logger))

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Auth gate
	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", authHandler.RegisterForm)
		r.Post("/register", authHandler.Register)
		r.Get("/login", authHandler.LoginForm)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
	})

	// Public pages
	r.Get("/", postHandler.Index)
	r.Get("/{id:[0-9]+}", postHandler.Show)

	// Protected pages
	guard := middleware.RequireUser()
	r.With(guard).Get("/create", postHandler.CreateForm)
	r.With(guard).Post("/create", postHandler.Create)
	r.With(guard).Get("/{id:[0-9]+}/update", postHandler.UpdateForm)
	r.With(guard).Post("/{id:[0-9]+}/update", postHandler.Update)
	r.With(guard).Post("/{id:[0-9]+}/delete", postHandler.Delete)

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return msg
}
