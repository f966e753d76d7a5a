package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/cache"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
)

func newStatsFixture(row *repository.StatsRow) (*StatsService, *fakeSubmissionStore) {
	quizzes := newFakeQuizStore(&model.Quiz{ID: 1, Title: "Go Basics", PassingScore: 60, IsActive: true})
	submissions := newFakeSubmissionStore()
	submissions.statsRow = row
	svc := NewStatsService(quizzes, submissions, cache.NewMemory(), zerolog.Nop())
	return svc, submissions
}

func TestQuizStatsAggregates(t *testing.T) {
	svc, _ := newStatsFixture(&repository.StatsRow{
		TotalAttempts: 3,
		UniqueUsers:   2,
		AverageScore:  66.666666,
		HighestScore:  100,
		LowestScore:   33.33,
		PassedCount:   2,
	})

	stats, err := svc.QuizStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("QuizStats: %v", err)
	}

	if stats.QuizTitle != "Go Basics" {
		t.Errorf("QuizTitle = %q", stats.QuizTitle)
	}
	if stats.TotalAttempts != 3 || stats.UniqueUsers != 2 {
		t.Errorf("attempts/users = %d/%d, want 3/2", stats.TotalAttempts, stats.UniqueUsers)
	}
	if stats.AverageScore != 66.67 {
		t.Errorf("AverageScore = %v, want 66.67", stats.AverageScore)
	}
	if stats.PassedCount != 2 || stats.FailedCount != 1 {
		t.Errorf("passed/failed = %d/%d, want 2/1", stats.PassedCount, stats.FailedCount)
	}
	if stats.PassRate != 66.67 {
		t.Errorf("PassRate = %v, want 66.67", stats.PassRate)
	}
	if stats.Message != "" {
		t.Errorf("Message = %q, want empty", stats.Message)
	}
}

func TestQuizStatsNoSubmissions(t *testing.T) {
	svc, _ := newStatsFixture(nil)

	stats, err := svc.QuizStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("QuizStats: %v", err)
	}
	if stats.TotalAttempts != 0 {
		t.Errorf("TotalAttempts = %d, want 0", stats.TotalAttempts)
	}
	if stats.Message != "No submissions found" {
		t.Errorf("Message = %q, want %q", stats.Message, "No submissions found")
	}
}

// The empty aggregate is cached too: a second call must not hit the store.
func TestQuizStatsCachesEmptyResult(t *testing.T) {
	svc, submissions := newStatsFixture(nil)
	ctx := context.Background()

	if _, err := svc.QuizStats(ctx, 1); err != nil {
		t.Fatalf("first QuizStats: %v", err)
	}
	if _, err := svc.QuizStats(ctx, 1); err != nil {
		t.Fatalf("second QuizStats: %v", err)
	}
	if submissions.aggregateCalls != 1 {
		t.Errorf("AggregateByQuiz calls = %d, want 1", submissions.aggregateCalls)
	}
}

func TestQuizStatsUnknownQuiz(t *testing.T) {
	svc, _ := newStatsFixture(nil)

	_, err := svc.QuizStats(context.Background(), 404)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestQuizStatsSurvivesCacheOutage(t *testing.T) {
	quizzes := newFakeQuizStore(&model.Quiz{ID: 1, Title: "Go Basics", IsActive: true})
	submissions := newFakeSubmissionStore()
	svc := NewStatsService(quizzes, submissions, brokenStore{}, zerolog.Nop())

	if _, err := svc.QuizStats(context.Background(), 1); err != nil {
		t.Fatalf("QuizStats with cache down: %v", err)
	}
}
