package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense-tracker/internal/auth"
	"expense-tracker/internal/config"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/logging"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/session"
	"expense-tracker/internal/storage"
	"expense-tracker/web"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
	logger.Info("Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := bootstrapAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		return err
	}

	scheduler, err := scheduleSessionCleanup(db, cfg.SessionCleanup, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	sessions := session.NewManager(db, cfg.SessionTTL, cfg.SecureCookie)
	h := handlers.NewHandlers(db, sessions, web.TemplatesFS, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(h, logger, web.StaticFS),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(logrus.Fields{"addr": srv.Addr, "db": cfg.DBPath}).Info("Starting expense tracker")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func setupRouter(h *handlers.Handlers, logger logrus.FieldLogger, static fs.FS) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", middleware.StaticCache(3600)(
		http.StripPrefix("/static/", http.FileServerFS(static)),
	))
	h.Mount(mux)

	return logging.Middleware(logger)(middleware.Headers(middleware.DefaultHeadersConfig())(mux))
}

// bootstrapAdmin creates the configured account when the user table is
// empty, so a fresh deployment can be logged into.
func bootstrapAdmin(ctx context.Context, db *storage.DB, email, password string, logger logrus.FieldLogger) error {
	if email == "" || password == "" {
		return nil
	}
	count, err := db.UserCount(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := db.CreateUser(ctx, email, hash); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	logger.WithField("email", email).Info("Created admin user")
	return nil
}

func scheduleSessionCleanup(db *storage.DB, schedule string, logger logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		removed, err := db.CleanExpiredSessions(context.Background())
		if err != nil {
			logger.WithError(err).Error("Failed to clean expired sessions")
			return
		}
		logger.WithField("removed", removed).Debug("Cleaned expired sessions")
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session cleanup: %w", err)
	}
	return c, nil
}
