package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

// EnsureTopic creates topicID when missing. An existing topic with a different
// retention is reported but left unchanged.
func EnsureTopic(ctx context.Context, client *pubsub.Client, topicID string, retention time.Duration, logger zerolog.Logger) (*pubsub.Topic, error) {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check topic %s: %w", topicID, err)
	}
	if !exists {
		logger.Info().Str("topic", topicID).Dur("retention", retention).Msg("Creating topic")
		return client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{RetentionDuration: retention})
	}

	cfg, err := topic.Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get config for topic %s: %w", topicID, err)
	}
	if cfg.RetentionDuration != retention {
		logger.Warn().Str("topic", topicID).
			Interface("expected", retention).
			Interface("found", cfg.RetentionDuration).
			Msg("Mismatched topic retention; update it manually")
	}
	return topic, nil
}

// EnsureSubscription creates subID when missing and otherwise brings its ack
// deadline and retry policy in line with cfg.
func EnsureSubscription(ctx context.Context, client *pubsub.Client, subID string, cfg pubsub.SubscriptionConfig, logger zerolog.Logger) error {
	sub := client.Subscription(subID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check subscription %s: %w", subID, err)
	}
	if !exists {
		logger.Info().Str("subscription", subID).Msg("Creating subscription")
		if _, err := client.CreateSubscription(ctx, subID, cfg); err != nil {
			return fmt.Errorf("failed to create subscription %s: %w", subID, err)
		}
		return nil
	}

	existing, err := sub.Config(ctx)
	if err != nil {
		return fmt.Errorf("failed to get config for subscription %s: %w", subID, err)
	}
	if existing.AckDeadline == cfg.AckDeadline && sameRetryPolicy(existing.RetryPolicy, cfg.RetryPolicy) {
		logger.Info().Str("subscription", subID).Msg("Subscription is up to date")
		return nil
	}

	logger.Info().Str("subscription", subID).Msg("Updating subscription")
	_, err = sub.Update(ctx, pubsub.SubscriptionConfigToUpdate{
		AckDeadline: cfg.AckDeadline,
		RetryPolicy: cfg.RetryPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", subID, err)
	}
	return nil
}

func sameRetryPolicy(a, b *pubsub.RetryPolicy) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.MinimumBackoff == b.MinimumBackoff && a.MaximumBackoff == b.MaximumBackoff
}

// ResetEmulator deletes every subscription and topic. Only use it against the
// local emulator.
func ResetEmulator(ctx context.Context, client *pubsub.Client, logger zerolog.Logger) error {
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list subscriptions: %w", err)
		}
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("subscription", sub.ID()).Msg("Failed to delete subscription")
		}
	}

	topics := client.Topics(ctx)
	for {
		topic, err := topics.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list topics: %w", err)
		}
		if err := topic.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("topic", topic.ID()).Msg("Failed to delete topic")
		}
	}
	return nil
}
