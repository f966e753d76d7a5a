// Package notify schedules post-submission notifications. Delivery is
// asynchronous and best-effort: the submit path only enqueues.
package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/config"
)

// Payload is the queued notification job.
type Payload struct {
	SubmissionID int64 `json:"submission_id"`
	Attempts     int   `json:"attempts,omitempty"`
}

// QueueNotifier enqueues notification jobs onto a Redis list consumed by
// the notification worker.
type QueueNotifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewQueueNotifier creates a new QueueNotifier.
func NewQueueNotifier(rdb *redis.Client, log zerolog.Logger) *QueueNotifier {
	return &QueueNotifier{
		rdb: rdb,
		log: log.With().Str("component", "notifier").Logger(),
	}
}

// SubmissionCreated enqueues a notification for the submission.
func (n *QueueNotifier) SubmissionCreated(ctx context.Context, submissionID int64) error {
	raw, err := json.Marshal(Payload{SubmissionID: submissionID})
	if err != nil {
		return err
	}
	return n.rdb.RPush(ctx, config.WorkerKey.SubmissionNotifyQueue, raw).Err()
}
