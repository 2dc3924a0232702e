package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/logger"
	coursepubsub "learnhub/internal/pubsub"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

const (
	topicRetention   = 24 * time.Hour
	subAckDeadline   = 30 * time.Second
	maxDeliveryTries = 5
)

func main() {
	reset := flag.Bool("reset", true, "delete every topic and subscription on the emulator first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system environment variables.")
	}

	logger := logger.New()
	logger.Info().Msg("Starting Pub/Sub setup for the local environment.")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" || cfg.PubSubCourseEventTopic == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID and PUBSUB_COURSE_EVENT_TOPIC must be set.")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set for local environment.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Msgf("Failed to close pubsub client: %v", err)
		}
	}()

	if *reset {
		if err := coursepubsub.ResetEmulator(ctx, client, logger); err != nil {
			logger.Fatal().Err(err).Msg("Failed to reset emulator")
		}
	}

	topicID := cfg.PubSubCourseEventTopic
	dlqID := topicID + "-dlq"

	dlq, err := coursepubsub.EnsureTopic(ctx, client, dlqID, 7*topicRetention, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("topic", dlqID).Msg("Failed to ensure DLQ topic")
	}
	topic, err := coursepubsub.EnsureTopic(ctx, client, topicID, topicRetention, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("topic", topicID).Msg("Failed to ensure topic")
	}

	err = coursepubsub.EnsureSubscription(ctx, client, dlqID+"-sub", pubsub.SubscriptionConfig{
		Topic:       dlq,
		AckDeadline: subAckDeadline,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure DLQ subscription")
	}

	err = coursepubsub.EnsureSubscription(ctx, client, topicID+"-sub", pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: subAckDeadline,
		RetryPolicy: &pubsub.RetryPolicy{
			MinimumBackoff: 10 * time.Second,
			MaximumBackoff: 600 * time.Second,
		},
		DeadLetterPolicy: &pubsub.DeadLetterPolicy{
			DeadLetterTopic:     dlq.String(),
			MaxDeliveryAttempts: maxDeliveryTries,
		},
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure course event subscription")
	}

	logger.Info().Str("topic", topicID).Str("dlq", dlqID).Msg("Local Pub/Sub setup complete")
}
