package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/notify"
)

const (
	NotifyPollTimeout = 1 * time.Second
	NotifyMaxAttempts = 2
)

// NotificationWorker consumes the submission notification queue and
// delivers result summaries. Delivery failures never reach the submit
// path; a transient failure requeues the job once.
type NotificationWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("NotificationWorker stopped")
			return
		default:
			item, err := w.rdb.BLPop(ctx, NotifyPollTimeout, config.WorkerKey.SubmissionNotifyQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p notify.Payload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			w.deliverSafe(ctx, &p)
		}
	}
}

func (w *NotificationWorker) deliverSafe(ctx context.Context, p *notify.Payload) {
	err := w.deliver(ctx, p.SubmissionID)
	if err == nil {
		return
	}

	if errors.Is(err, pgx.ErrNoRows) {
		// Submission vanished (cascade delete). Nothing to deliver.
		w.log.Warn().Int64("submission_id", p.SubmissionID).Msg("Submission not found, dropping notification")
		return
	}

	p.Attempts++
	if p.Attempts >= NotifyMaxAttempts {
		w.log.Error().Err(err).Int64("submission_id", p.SubmissionID).Msg("Notification failed, giving up")
		return
	}

	w.log.Warn().Err(err).Int64("submission_id", p.SubmissionID).Msg("Notification failed, requeueing")
	raw, _ := json.Marshal(p)
	w.rdb.RPush(ctx, config.WorkerKey.SubmissionNotifyQueue, raw)
}

// deliver loads the submission result and hands it to the delivery
// channel. Delivery here is a structured log record; a mail or queue
// integration slots in behind the same query.
func (w *NotificationWorker) deliver(ctx context.Context, submissionID int64) error {
	var (
		userID        int64
		quizTitle     string
		passingScore  int
		score         float64
		totalMarks    int
		obtainedMarks int
	)
	err := w.pool.QueryRow(ctx,
		`SELECT s.user_id, q.title, q.passing_score, s.score, s.total_marks, s.obtained_marks
		 FROM submissions s
		 JOIN quizzes q ON q.id = s.quiz_id
		 WHERE s.id = $1`, submissionID,
	).Scan(&userID, &quizTitle, &passingScore, &score, &totalMarks, &obtainedMarks)
	if err != nil {
		return err
	}

	status := "Failed"
	if score >= float64(passingScore) {
		status = "Passed"
	}

	w.log.Info().
		Int64("submission_id", submissionID).
		Int64("user_id", userID).
		Str("quiz", quizTitle).
		Float64("score", score).
		Int("obtained_marks", obtainedMarks).
		Int("total_marks", totalMarks).
		Str("status", status).
		Msg("Submission notification delivered")

	return nil
}
