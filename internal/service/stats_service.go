package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/cache"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/scoring"
)

// StatsService computes per-quiz aggregate statistics on demand. Results
// are cached with a longer TTL than content; the empty result for a quiz
// with no traffic is cached too, so cold quizzes don't hammer the store.
type StatsService struct {
	quizzes     QuizStore
	submissions SubmissionStore
	store       cache.Store
	log         zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(quizzes QuizStore, submissions SubmissionStore, store cache.Store, log zerolog.Logger) *StatsService {
	return &StatsService{
		quizzes:     quizzes,
		submissions: submissions,
		store:       store,
		log:         log.With().Str("component", "stats_service").Logger(),
	}
}

// QuizStats returns the aggregate over all submissions of the quiz.
func (s *StatsService) QuizStats(ctx context.Context, quizID int64) (*model.QuizStats, error) {
	key := config.CacheKey.QuizStatsKey(quizID)
	if raw, err := s.store.Get(ctx, key); err == nil {
		stats := &model.QuizStats{}
		if err := json.Unmarshal(raw, stats); err == nil {
			return stats, nil
		}
		s.log.Warn().Str("key", key).Msg("Corrupt cache entry, re-deriving")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	}

	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quiz %d not found", quizID)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	row, err := s.submissions.AggregateByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("aggregate submissions: %w", err)
	}

	stats := &model.QuizStats{
		QuizID:        quizID,
		QuizTitle:     quiz.Title,
		TotalAttempts: row.TotalAttempts,
	}
	if row.TotalAttempts == 0 {
		stats.Message = "No submissions found"
	} else {
		stats.UniqueUsers = row.UniqueUsers
		stats.AverageScore = scoring.Round2(row.AverageScore)
		stats.HighestScore = row.HighestScore
		stats.LowestScore = row.LowestScore
		stats.PassedCount = row.PassedCount
		stats.FailedCount = row.TotalAttempts - row.PassedCount
		stats.PassRate = scoring.Round2(float64(row.PassedCount) / float64(row.TotalAttempts) * 100)
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.store.Set(ctx, key, raw, cache.TTLQuizStats); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return stats, nil
}
