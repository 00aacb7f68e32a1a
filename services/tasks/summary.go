package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeSummaryGenerate = "summary:generate"

// SummaryPayload carries the session reference into the worker.
type SummaryPayload struct {
	SessionID string `json:"session_id"`
}

// NewSummaryTask builds the summary-generation task for a session.
func NewSummaryTask(sessionID string) (*asynq.Task, error) {
	b, err := json.Marshal(SummaryPayload{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSummaryGenerate, b), nil
}

// AsynqSummaryDispatcher submits summary jobs to the Redis-backed queue.
// It satisfies the session service's SummaryDispatcher boundary.
type AsynqSummaryDispatcher struct {
	Client   *asynq.Client
	MaxRetry int
}

// EnqueueSummary submits a summary-generation job. Delivery is at least
// once; the worker retries transient failures up to MaxRetry and gives up
// permanently after that, leaving the summary empty.
func (d *AsynqSummaryDispatcher) EnqueueSummary(ctx context.Context, sessionID string) error {
	task, err := NewSummaryTask(sessionID)
	if err != nil {
		return fmt.Errorf("failed to build summary task: %w", err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task, asynq.MaxRetry(d.MaxRetry), asynq.Queue("default")); err != nil {
		return fmt.Errorf("failed to enqueue summary task: %w", err)
	}
	return nil
}
