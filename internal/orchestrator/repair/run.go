package repair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnhub/internal/model"
	"learnhub/internal/pgmq"
	"learnhub/internal/repository"

	"github.com/rs/zerolog"
)

// Queue is the part of the pgmq client the orchestrator uses.
type Queue interface {
	ReadWithPoll(ctx context.Context, queue string, visibilitySec, maxMessages, pollSec int) ([]*pgmq.Message, error)
	Send(ctx context.Context, queue string, payload []byte) error
	Delete(ctx context.Context, queue string, msgID int64) error
}

// Options configures the repair loop.
type Options struct {
	Queue           string
	DeadLetterQueue string
	VisibilitySec   int
	PollTimeoutSec  int
	PollMaxMsg      int
	MaxRetries      int
	BackoffInitial  time.Duration
	BackoffMax      time.Duration
}

// Worker replays course repair jobs against the store.
type Worker struct {
	queue      Queue
	courses    repository.CourseRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	opts       Options
	logger     zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

func NewWorker(
	queue Queue,
	courses repository.CourseRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	opts Options,
	logger zerolog.Logger,
) *Worker {
	return &Worker{
		queue:      queue,
		courses:    courses,
		users:      users,
		categories: categories,
		opts:       opts,
		logger:     logger.With().Str("orchestrator", "repair").Logger(),
		sleep:      sleepContext,
	}
}

// Run polls the repair queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Str("queue", w.opts.Queue).Str("dlq", w.opts.DeadLetterQueue).Msg("Starting repair orchestrator")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Shutting down repair orchestrator")
			return nil
		default:
		}

		msgs, err := w.queue.ReadWithPoll(ctx, w.opts.Queue, w.opts.VisibilitySec, w.opts.PollMaxMsg, w.opts.PollTimeoutSec)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error().Err(err).Msg("Error reading repair queue")
			w.sleep(ctx, time.Second)
			continue
		}
		for _, msg := range msgs {
			w.Handle(ctx, msg)
		}
	}
}

// Handle processes one queue message. The message is always acknowledged: on
// success, after dead-lettering, or when the payload cannot be decoded.
func (w *Worker) Handle(ctx context.Context, msg *pgmq.Message) {
	log := w.logger.With().Int64("msg_id", msg.ID).Logger()

	var job model.CourseRepairJob
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal repair job; deleting message")
		w.ack(ctx, msg)
		return
	}
	log = log.With().Str("course_id", job.CourseID).Str("action", job.Action).Logger()

	backoff := w.opts.BackoffInitial
	var lastErr error
	for attempt := 1; attempt <= w.opts.MaxRetries; attempt++ {
		lastErr = w.apply(ctx, job)
		if lastErr == nil {
			log.Info().Int("attempt", attempt).Msg("Course repair applied")
			w.ack(ctx, msg)
			return
		}
		if isPermanent(lastErr) {
			break
		}
		log.Error().Err(lastErr).Int("attempt", attempt).Msg("Course repair failed, retrying")
		if attempt == w.opts.MaxRetries {
			break
		}
		if err := w.sleep(ctx, backoff); err != nil {
			// Shutdown; the message becomes visible again after its timeout.
			return
		}
		backoff *= 2
		if backoff > w.opts.BackoffMax {
			backoff = w.opts.BackoffMax
		}
	}

	if err := w.queue.Send(ctx, w.opts.DeadLetterQueue, msg.Data); err != nil {
		log.Error().Err(err).Str("dlq", w.opts.DeadLetterQueue).Msg("Failed to send repair job to dead-letter queue")
		return
	}
	w.ack(ctx, msg)
	log.Warn().Err(lastErr).Int("attempts", w.opts.MaxRetries).Msg("Exhausted course repair retries; moving job to DLQ")
}

type permanentError struct{ error }

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// apply performs the job. Every step is idempotent so a job may be replayed.
func (w *Worker) apply(ctx context.Context, job model.CourseRepairJob) error {
	switch job.Action {
	case model.RepairActionRollbackCreate:
		if job.InstructorID != "" {
			if err := w.users.RemoveCourse(ctx, job.InstructorID, job.CourseID); err != nil {
				return fmt.Errorf("unlink instructor: %w", err)
			}
		}
		if job.CategoryID != "" {
			if err := w.categories.RemoveCourse(ctx, job.CategoryID, job.CourseID); err != nil {
				return fmt.Errorf("unlink category: %w", err)
			}
		}
		if err := w.courses.DeleteCourse(ctx, job.CourseID); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	case model.RepairActionRelinkCategory:
		if job.PreviousCategoryID != "" {
			if err := w.categories.RemoveCourse(ctx, job.PreviousCategoryID, job.CourseID); err != nil {
				return fmt.Errorf("unlink previous category: %w", err)
			}
		}
		if err := w.categories.AddCourse(ctx, job.CategoryID, job.CourseID); err != nil {
			return fmt.Errorf("link category: %w", err)
		}
		return nil
	default:
		return permanentError{fmt.Errorf("unknown repair action %q", job.Action)}
	}
}

func (w *Worker) ack(ctx context.Context, msg *pgmq.Message) {
	if err := w.queue.Delete(context.WithoutCancel(ctx), w.opts.Queue, msg.ID); err != nil {
		w.logger.Error().Err(err).Int64("msg_id", msg.ID).Msg("Error deleting repair message")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
