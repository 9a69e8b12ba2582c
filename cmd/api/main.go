package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/logger"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment == config.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	srv, err := server.New(context.Background(), cfg, logr)
	if err != nil {
		logr.Fatal("failed to initialize server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logr.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logr.Info("received signal", zap.String("signal", sig.String()))
	}

	logr.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("server shutdown error", zap.Error(err))
		return
	}
	logr.Info("server stopped")
}
