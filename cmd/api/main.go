package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davey/lotvoice/internal/api"
	"github.com/davey/lotvoice/internal/assets"
	"github.com/davey/lotvoice/internal/config"
	"github.com/davey/lotvoice/internal/logger"
	"github.com/davey/lotvoice/internal/service"
	"github.com/davey/lotvoice/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize asset store
	store, err := assets.NewStore(cfg.Assets.Root)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize asset store")
	}

	// Initialize upstream adapters
	timeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	scriptWriter := service.NewScriptWriter(&service.ScriptWriterConfig{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Text.Model,
		Temperature: cfg.OpenAI.Text.Temperature,
		Timeout:     timeout,
	})
	synthesizer := service.NewSpeechSynthesizer(&service.SpeechConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Speech.Model,
		Voice:   cfg.OpenAI.Speech.Voice,
		Speed:   cfg.OpenAI.Speech.Speed,
		Format:  cfg.OpenAI.Speech.Format,
		Timeout: timeout,
	})

	// Initialize optional object storage mirror
	var mirror storage.ObjectStorage
	if cfg.Mirror.Enabled {
		s3Store, err := storage.NewS3Storage(&storage.S3Config{
			Endpoint:  cfg.Mirror.Endpoint,
			AccessKey: cfg.Mirror.AccessKey,
			SecretKey: cfg.Mirror.SecretKey,
			UseSSL:    cfg.Mirror.UseSSL,
			Bucket:    cfg.Mirror.Bucket,
			Region:    cfg.Mirror.Region,
			PublicURL: cfg.Mirror.PublicURL,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage mirror")
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure mirror bucket")
		}
		mirror = s3Store
	}

	// Initialize services
	generator := service.NewGenerator(
		scriptWriter,
		synthesizer,
		store,
		mirror,
		cfg.Assets.BaseURL,
		appLogger,
	)
	archiver := service.NewArchiver(store, appLogger)

	// Setup router
	router := api.SetupRouter(generator, archiver, store.Root(), cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).
			WithField("mode", cfg.Server.Mode).
			Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
