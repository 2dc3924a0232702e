package service

import (
	"context"
	"encoding/json"
	"fmt"

	"learnhub/internal/model"
)

// RepairScheduler queues back-reference repairs that could not be finished on
// the request path.
type RepairScheduler interface {
	Schedule(ctx context.Context, job model.CourseRepairJob) error
}

// QueueSender is the part of the pgmq client used to schedule repairs.
type QueueSender interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

type queueRepairScheduler struct {
	sender QueueSender
	queue  string
}

// NewRepairScheduler schedules repair jobs on a pgmq queue.
func NewRepairScheduler(sender QueueSender, queue string) RepairScheduler {
	return &queueRepairScheduler{sender: sender, queue: queue}
}

func (s *queueRepairScheduler) Schedule(ctx context.Context, job model.CourseRepairJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal repair job: %w", err)
	}
	return s.sender.Send(ctx, s.queue, payload)
}
