package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/cache"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuestionService handles question bank management. Question mutations
// invalidate the owning quiz's cached detail and the public listing,
// since question counts and totals change with them.
type QuestionService struct {
	questions QuestionStore
	quizzes   QuizStore
	store     cache.Store
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, quizzes QuizStore, store cache.Store, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		quizzes:   quizzes,
		store:     store,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// Create adds a question to an existing quiz.
func (s *QuestionService) Create(ctx context.Context, quizID int64, req model.CreateQuestionRequest) (*model.Question, error) {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quiz %d not found", quizID)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	question := &model.Question{
		QuizID:        quizID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: model.AnswerLetter(req.CorrectAnswer),
		Marks:         req.Marks,
		IsActive:      true,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.invalidate(ctx, quizID)
	return question, nil
}

// Update applies the non-nil request fields and invalidates the quiz caches.
func (s *QuestionService) Update(ctx context.Context, id int64, req model.UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("question %d not found", id)
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	if req.QuestionText != "" {
		question.QuestionText = req.QuestionText
	}
	if req.OptionA != nil {
		question.OptionA = *req.OptionA
	}
	if req.OptionB != nil {
		question.OptionB = *req.OptionB
	}
	if req.OptionC != nil {
		question.OptionC = *req.OptionC
	}
	if req.OptionD != nil {
		question.OptionD = *req.OptionD
	}
	if req.CorrectAnswer != "" {
		question.CorrectAnswer = model.AnswerLetter(req.CorrectAnswer)
	}
	if req.Marks != nil {
		question.Marks = *req.Marks
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	s.invalidate(ctx, question.QuizID)
	return question, nil
}

// Delete removes a question and invalidates the quiz caches.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("question %d not found", id)
		}
		return fmt.Errorf("get question: %w", err)
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	s.invalidate(ctx, question.QuizID)
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context, quizID int64) {
	keys := []string{
		config.CacheKey.QuizKey(quizID),
		config.CacheKey.ActiveQuizListKey(),
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Int64("quiz_id", quizID).Msg("Cache invalidation failed")
	}
}
