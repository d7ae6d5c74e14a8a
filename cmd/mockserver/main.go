package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/mockapi"
	"evrental-staff-core/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV Rental dev settlement service...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetMockAddress(), "upload_dir", cfg.Mock.UploadDir)

	if cfg.Mock.JWTSecret == "" {
		log.Fatalf("mock.jwt_secret (or MOCK_JWT_SECRET) is required")
	}

	// Initialize image storage (local filesystem)
	baseURL := cfg.Mock.BaseURL
	if baseURL == "" {
		baseURL = "http://" + cfg.GetMockAddress()
	}
	images, err := storage.NewLocalStore(baseURL, cfg.Mock.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	srv, err := mockapi.New(mockapi.Options{
		JWTSecret: cfg.Mock.JWTSecret,
		Images:    images,
	})
	if err != nil {
		log.Fatalf("Failed to initialize settlement service: %v", err)
	}
	logger.Info("Seeded staff accounts", "usernames", []string{"staff01", "staff02"}, "password", mockapi.SeedPassword)

	httpServer := &http.Server{
		Addr:              cfg.GetMockAddress(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}
