package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/internal/api/v1/router"
	"learnhub/internal/config"
	"learnhub/internal/logger"
	"learnhub/internal/service"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// @title LearnHub Course API
// @version 1.0
// @description Course management and catalog API
// @host localhost:8080
// @BasePath /v1
// @Schemes http https

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 2. Resolve the JWT secret
	jwtSecret := cfg.JWTSecret
	if cfg.JWTSecretName != "" {
		var opts []option.ClientOption
		if cfg.GCPCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
		}
		secrets, err := service.NewSecretManagerResolver(ctx, cfg.GCPProjectID, opts...)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create secret resolver")
		}
		jwtSecret, err = secrets.AccessSecret(ctx, cfg.JWTSecretName)
		secrets.Close()
		if err != nil {
			logger.Fatal().Err(err).Str("secret", cfg.JWTSecretName).Msg("Failed to read JWT secret")
		}
	}

	// 3. Build router (and get DB connection)
	app, err := router.New(ctx, cfg, jwtSecret, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to build router: %v", err)
	}
	defer app.Close()

	// 4. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Start server in a goroutine
	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Msgf("Listen: %s\n", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Msgf("Server forced to shutdown: %v", err)
	}
	logger.Info().Msg("Server shut down gracefully")
}
