package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/familyhub/internal/inference"
	"github.com/iudanet/familyhub/internal/server/handlers"
	"github.com/iudanet/familyhub/internal/server/middleware"
	"github.com/iudanet/familyhub/internal/server/storage/sqlite"
	"github.com/iudanet/familyhub/internal/server/watch"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
	loginCodeTTL    = 10 * time.Minute

	// Лимит на auth-эндпоинты против перебора кодов входа
	authRateLimit  = 10
	authRateWindow = time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "familyhub.db", "Path to SQLite database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger, *addr, *dbPath); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtSecret := os.Getenv("FAMILYHUB_JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("FAMILYHUB_JWT_SECRET environment variable is required")
	}

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  accessTokenTTL,
		RefreshTokenTTL: refreshTokenTTL,
	}

	hub := watch.NewHub(logger)

	// AI-ассистент опционален: без ключа сервер работает,
	// но /assist эндпоинты не регистрируются
	var assistService inference.Service
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		genAI, err := inference.NewGenAI(ctx, apiKey, os.Getenv("FAMILYHUB_GEMINI_MODEL"))
		if err != nil {
			return fmt.Errorf("failed to create inference client: %w", err)
		}
		assistService = genAI
	} else {
		logger.Warn("GEMINI_API_KEY is not set, assistant endpoints are disabled")
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig, loginCodeTTL)
	familyHandler := handlers.NewFamilyHandler(logger, store, store)
	docsHandler := handlers.NewDocsHandler(logger, store, store, store, hub)
	watchHandler := handlers.NewWatchHandler(logger, store, store, hub)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	authMw := middleware.AuthMiddleware(logger, jwtConfig)
	rateMw := middleware.RateLimitMiddleware(authRateLimit, authRateWindow, logger)

	protected := func(h http.HandlerFunc) http.Handler {
		return authMw(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	// Аутентификация по magic-link коду
	mux.Handle("POST /api/v1/auth/magiclink", rateMw(http.HandlerFunc(authHandler.MagicLink)))
	mux.Handle("POST /api/v1/auth/verify", rateMw(http.HandlerFunc(authHandler.Verify)))
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.Handle("POST /api/v1/auth/logout", protected(authHandler.Logout))
	mux.Handle("/api/v1/me", protected(authHandler.Me))

	// Семья и приглашения
	mux.Handle("POST /api/v1/families", protected(familyHandler.Create))
	mux.Handle("POST /api/v1/families/join", protected(familyHandler.Join))
	mux.Handle("GET /api/v1/families/{id}", protected(familyHandler.Get))
	mux.Handle("POST /api/v1/families/{id}/invites", protected(familyHandler.Invite))
	mux.Handle("GET /api/v1/families/{id}/members", protected(familyHandler.Members))

	// Документы и live-обновления
	mux.Handle("/api/v1/families/{id}/documents", protected(docsHandler.Collection))
	mux.Handle("/api/v1/families/{id}/documents/{docID}", protected(docsHandler.Document))
	mux.Handle("GET /api/v1/families/{id}/watch", protected(watchHandler.Watch))

	if assistService != nil {
		assistHandler := handlers.NewAssistHandler(logger, assistService)
		mux.Handle("POST /api/v1/assist/groceries", protected(assistHandler.SuggestGroceries))
		mux.Handle("POST /api/v1/assist/nutrition", protected(assistHandler.Nutrition))
		mux.Handle("POST /api/v1/assist/chat", protected(assistHandler.Chat))
	}

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", Version))
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("FamilyHub Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
