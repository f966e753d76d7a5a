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
)

// QuizService handles quiz reads and content management. Public reads
// flow through the cache; every mutation deletes the affected keys after
// the write commits.
type QuizService struct {
	quizzes    QuizStore
	questions  QuestionStore
	categories CategoryStore
	store      cache.Store
	log        zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes QuizStore, questions QuestionStore, categories CategoryStore, store cache.Store, log zerolog.Logger) *QuizService {
	return &QuizService{
		quizzes:    quizzes,
		questions:  questions,
		categories: categories,
		store:      store,
		log:        log.With().Str("component", "quiz_service").Logger(),
	}
}

// List returns quizzes for the given view. The public view serves active
// quizzes through the cache.
func (s *QuizService) List(ctx context.Context, view model.View) ([]model.QuizListItem, error) {
	if view == model.ViewAdmin {
		return s.quizzes.ListAll(ctx)
	}

	key := config.CacheKey.ActiveQuizListKey()
	if raw, err := s.store.Get(ctx, key); err == nil {
		var items []model.QuizListItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		s.log.Warn().Str("key", key).Msg("Corrupt cache entry, re-deriving")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	}

	items, err := s.quizzes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if items == nil {
		items = []model.QuizListItem{}
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := s.store.Set(ctx, key, raw, cache.TTLQuizList); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return items, nil
}

// GetDetail returns a quiz with its questions. The public view serves an
// active quiz with active questions through the cache, stripped of
// answer keys. The admin view reads the database directly and includes
// inactive questions and correct answers.
func (s *QuizService) GetDetail(ctx context.Context, id int64, view model.View) (any, error) {
	if view == model.ViewAdmin {
		quiz, err := s.quizzes.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.NotFound("quiz %d not found", id)
			}
			return nil, fmt.Errorf("get quiz: %w", err)
		}
		questions, err := s.questions.ListByQuiz(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		return &model.QuizDetail{Quiz: *quiz, Questions: questions}, nil
	}

	detail, err := s.getCachedDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return detail.PublicView(), nil
}

// getCachedDetail is the read-through path for quiz:<id>. The cached
// value keeps correct answers so the scoring-independent read path and
// the cache share one representation; PublicView strips them on the way
// out.
func (s *QuizService) getCachedDetail(ctx context.Context, id int64) (*model.QuizDetail, error) {
	key := config.CacheKey.QuizKey(id)
	if raw, err := s.store.Get(ctx, key); err == nil {
		detail := &model.QuizDetail{}
		if err := json.Unmarshal(raw, detail); err == nil {
			return detail, nil
		}
		s.log.Warn().Str("key", key).Msg("Corrupt cache entry, re-deriving")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	}

	quiz, err := s.quizzes.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quiz %d not found or inactive", id)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	questions, err := s.questions.ListActiveByQuiz(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if questions == nil {
		questions = []model.Question{}
	}

	detail := &model.QuizDetail{Quiz: *quiz, Questions: questions}
	if raw, err := json.Marshal(detail); err == nil {
		if err := s.store.Set(ctx, key, raw, cache.TTLQuiz); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return detail, nil
}

// Create inserts a quiz under an existing category.
func (s *QuizService) Create(ctx context.Context, principal model.Principal, req model.CreateQuizRequest) (*model.Quiz, error) {
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("category %d not found", req.CategoryID)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	quiz := &model.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		TimeLimit:    req.TimeLimit,
		PassingScore: req.PassingScore,
		IsActive:     true,
		CreatedBy:    &principal.ID,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.invalidate(ctx, quiz.ID)
	return quiz, nil
}

// Update applies the non-nil request fields and invalidates the quiz caches.
func (s *QuizService) Update(ctx context.Context, id int64, req model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quiz %d not found", id)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.NotFound("category %d not found", *req.CategoryID)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
		quiz.CategoryID = *req.CategoryID
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}

	s.invalidate(ctx, id)
	return quiz, nil
}

// Delete removes a quiz; questions and submissions cascade in the database.
func (s *QuizService) Delete(ctx context.Context, id int64) error {
	if _, err := s.quizzes.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("quiz %d not found", id)
		}
		return fmt.Errorf("get quiz: %w", err)
	}

	if err := s.quizzes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

// invalidate drops the quiz detail and public listing keys after a
// committed write.
func (s *QuizService) invalidate(ctx context.Context, quizID int64) {
	keys := []string{
		config.CacheKey.QuizKey(quizID),
		config.CacheKey.ActiveQuizListKey(),
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Int64("quiz_id", quizID).Msg("Cache invalidation failed")
	}
}
