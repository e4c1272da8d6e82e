package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aisolutions/internal/config"
	"aisolutions/internal/database"
	"aisolutions/internal/domain"
	"aisolutions/internal/logger"
	"aisolutions/internal/server"
	"aisolutions/internal/services"
	"aisolutions/internal/util"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.App.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.App.Debug),
		zap.String("addr", cfg.App.Addr()))
	if cfg.Auth.WeakSecret() {
		log.Warn("SECRET_KEY is shorter than 32 bytes; use a longer secret in production")
	}

	db, err := database.Open(cfg.Database, log.Named("db"))
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing database connections")
		if err := database.Close(db); err != nil {
			log.Warn("error closing database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	email := services.NewEmailService(cfg.Email, log.Named("email"))
	svc := server.Services{
		Auth: services.NewAuthService(cfg.Auth, cfg.App.DashboardURL,
			util.NewTokenManager(cfg.Auth.SecretKey), log.Named("auth")),
		Inquiries: services.NewInquiryService(
			database.NewStore[domain.Inquiry](db, "inquiries"), email, log.Named("inquiry")),
		Reviews: services.NewReviewService(
			database.NewStore[domain.Review](db, "reviews"), log.Named("review")),
		Newsletters: services.NewNewsletterService(
			database.NewStore[domain.Newsletter](db, "newsletters"), log.Named("newsletter")),
		Health: services.NewHealthService(db, cfg.App.Name, log.Named("health")),
	}
	srv := server.New(cfg, svc, log.Named("http"))

	httpServer := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     zap.NewStdLog(log.Named("net/http")),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		log.Info("starting graceful shutdown", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			_ = httpServer.Close()
		}
	}

	if err := svc.Inquiries.WaitNotifications(ctx); err != nil {
		log.Warn("pending inquiry notifications abandoned", zap.Error(err))
	}

	log.Info("server shutdown complete")
	return nil
}
