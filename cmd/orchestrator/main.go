package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/logger"
	"learnhub/internal/orchestrator/repair"
	"learnhub/internal/pgmq"
	"learnhub/internal/repository"

	"github.com/joho/godotenv"
)

// repairVisibilitySec keeps a message hidden for longer than a full retry cycle.
const repairVisibilitySec = 300

func main() {
	// Parse mode flag
	mode := flag.String("mode", "", "Orchestrator mode: repair")
	flag.Parse()

	// Initialize logger
	logger := logger.New()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	// Set up context with graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize DB connection
	db, err := repository.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	logger.Info().Msg("Database connection established")

	// Initialize PGMQ client
	pgmqClient := pgmq.New(db)

	// Dispatch to the selected orchestrator
	var runErr error
	switch *mode {
	case "repair":
		worker := repair.NewWorker(
			pgmqClient,
			repository.NewCourseRepo(db, logger),
			repository.NewUserRepo(db),
			repository.NewCategoryRepo(db),
			repair.Options{
				Queue:           cfg.RepairQueueName,
				DeadLetterQueue: cfg.RepairDeadLetterQueueName,
				VisibilitySec:   repairVisibilitySec,
				PollTimeoutSec:  cfg.RepairPollTimeoutSec,
				PollMaxMsg:      cfg.RepairPollMaxMsg,
				MaxRetries:      cfg.RepairMaxRetries,
				BackoffInitial:  time.Duration(cfg.RepairBackoffInitialSec) * time.Second,
				BackoffMax:      time.Duration(cfg.RepairBackoffMaxSec) * time.Second,
			},
			logger,
		)
		runErr = worker.Run(ctx)
	default:
		logger.Fatal().Msgf("Invalid mode: %s", *mode)
	}

	if runErr != nil {
		logger.Fatal().Msgf("%s orchestrator failed: %v", *mode, runErr)
	}

	logger.Info().Msgf("%s orchestrator stopped gracefully", *mode)
}
