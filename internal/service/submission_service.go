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
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/quizforge/quizforge-backend/internal/scoring"
)

// SubmissionService owns the submit path: validation, scoring, atomic
// persistence, cache invalidation and notification scheduling.
type SubmissionService struct {
	quizzes     QuizStore
	questions   QuestionStore
	submissions SubmissionStore
	store       cache.Store
	notifier    Notifier
	log         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	quizzes QuizStore,
	questions QuestionStore,
	submissions SubmissionStore,
	store cache.Store,
	notifier Notifier,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		quizzes:     quizzes,
		questions:   questions,
		submissions: submissions,
		store:       store,
		notifier:    notifier,
		log:         log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit scores and persists one quiz submission for the user.
//
// Precondition order: malformed input is rejected first, then a missing
// or inactive quiz, then a quiz without active questions, then questions
// the user already answered in any prior submission. Persistence is one
// transaction; the unique (user, question) index arbitrates concurrent
// duplicates that slip past the pre-check. Cache invalidation and the
// notification are best-effort and run only after the commit.
func (s *SubmissionService) Submit(ctx context.Context, userID int64, req model.SubmitQuizRequest) (*model.SubmissionDetail, error) {
	if len(req.Answers) == 0 {
		return nil, apperr.InvalidInput("answers list must not be empty")
	}

	questionIDs := make([]int64, 0, len(req.Answers))
	seen := make(map[int64]bool, len(req.Answers))
	var dupes []int64
	for _, a := range req.Answers {
		if !model.AnswerLetter(a.SelectedAnswer).Valid() {
			return nil, apperr.InvalidInput(fmt.Sprintf("selected_answer %q for question %d is not one of A, B, C, D", a.SelectedAnswer, a.QuestionID))
		}
		if seen[a.QuestionID] {
			dupes = append(dupes, a.QuestionID)
			continue
		}
		seen[a.QuestionID] = true
		questionIDs = append(questionIDs, a.QuestionID)
	}
	if len(dupes) > 0 {
		return nil, apperr.InvalidInput("request answers the same question more than once", dupes...)
	}

	quiz, err := s.quizzes.GetActiveByID(ctx, req.QuizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quiz %d not found or inactive", req.QuizID)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	questions, err := s.questions.ListActiveByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, apperr.InvalidState("quiz %d has no active questions", quiz.ID)
	}

	// Pre-check for answered questions. Fast path only: the database
	// constraint is the authority under concurrency.
	answered, err := s.submissions.FindAnsweredQuestionIDs(ctx, userID, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("find answered questions: %w", err)
	}
	if len(answered) > 0 {
		return nil, apperr.Conflict("questions already answered in a prior submission", answered...)
	}

	result := scoring.Score(questions, req.Answers)

	sub := &model.Submission{
		UserID:        userID,
		QuizID:        quiz.ID,
		Score:         result.Score,
		TotalMarks:    result.TotalMarks,
		ObtainedMarks: result.ObtainedMarks,
	}
	answers := make([]model.Answer, len(result.Details))
	for i, d := range result.Details {
		answers[i] = model.Answer{
			QuestionID:     d.QuestionID,
			UserID:         userID,
			SelectedAnswer: d.SelectedAnswer,
			IsCorrect:      d.IsCorrect,
			MarksObtained:  d.MarksObtained,
		}
	}

	if err := s.submissions.CreateWithAnswers(ctx, sub, answers); err != nil {
		if errors.Is(err, repository.ErrDuplicateAnswer) {
			// A concurrent submission won the race. Name the conflicting
			// questions the same way the pre-check would have.
			conflicting, lookupErr := s.submissions.FindAnsweredQuestionIDs(ctx, userID, questionIDs)
			if lookupErr != nil || len(conflicting) == 0 {
				return nil, apperr.Conflict("questions already answered in a prior submission")
			}
			return nil, apperr.Conflict("questions already answered in a prior submission", conflicting...)
		}
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	for i := range answers {
		answers[i].SubmissionID = sub.ID
	}

	s.invalidateAfterSubmit(ctx, userID, quiz.ID)

	if err := s.notifier.SubmissionCreated(ctx, sub.ID); err != nil {
		s.log.Warn().Err(err).Int64("submission_id", sub.ID).Msg("Notification scheduling failed")
	}

	s.log.Info().
		Int64("submission_id", sub.ID).
		Int64("quiz_id", quiz.ID).
		Int64("user_id", userID).
		Float64("score", sub.Score).
		Msg("Submission created")

	return &model.SubmissionDetail{Submission: *sub, Answers: answers}, nil
}

// ListForUser returns the user's submissions through the cache.
func (s *SubmissionService) ListForUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	key := config.CacheKey.UserSubmissionsKey(userID)
	if raw, err := s.store.Get(ctx, key); err == nil {
		var subs []model.Submission
		if err := json.Unmarshal(raw, &subs); err == nil {
			return subs, nil
		}
		s.log.Warn().Str("key", key).Msg("Corrupt cache entry, re-deriving")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	}

	subs, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if subs == nil {
		subs = []model.Submission{}
	}

	if raw, err := json.Marshal(subs); err == nil {
		if err := s.store.Set(ctx, key, raw, cache.TTLUserSubmissions); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return subs, nil
}

// ListAll returns every submission, limit/offset paginated. Admin view
// only; it bypasses the cache.
func (s *SubmissionService) ListAll(ctx context.Context, limit, offset int) ([]model.Submission, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.submissions.ListAll(ctx, limit, offset)
}

// Get returns one submission with answers. Non-admin principals can only
// see their own; anything else reads as not found.
func (s *SubmissionService) Get(ctx context.Context, id int64, principal model.Principal) (*model.SubmissionDetail, error) {
	detail, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("submission %d not found", id)
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !principal.IsAdmin && detail.UserID != principal.ID {
		return nil, apperr.NotFound("submission %d not found", id)
	}
	return detail, nil
}

// invalidateAfterSubmit drops the derived views a new submission makes
// stale: the submitter's list and the quiz's statistics.
func (s *SubmissionService) invalidateAfterSubmit(ctx context.Context, userID, quizID int64) {
	keys := []string{
		config.CacheKey.UserSubmissionsKey(userID),
		config.CacheKey.QuizStatsKey(quizID),
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Int64("quiz_id", quizID).Msg("Cache invalidation failed")
	}
}
