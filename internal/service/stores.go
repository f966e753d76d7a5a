package service

import (
	"context"

	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
)

// Store interfaces consumed by the services. The pgx repositories
// satisfy them; tests substitute hand-written fakes.

// CategoryStore is the category persistence surface.
type CategoryStore interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	ListActive(ctx context.Context) ([]model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error
}

// QuizStore is the quiz persistence surface.
type QuizStore interface {
	GetByID(ctx context.Context, id int64) (*model.Quiz, error)
	GetActiveByID(ctx context.Context, id int64) (*model.Quiz, error)
	ListActive(ctx context.Context) ([]model.QuizListItem, error)
	ListAll(ctx context.Context) ([]model.QuizListItem, error)
	Create(ctx context.Context, q *model.Quiz) error
	Update(ctx context.Context, q *model.Quiz) error
	Delete(ctx context.Context, id int64) error
}

// QuestionStore is the question-bank persistence surface.
type QuestionStore interface {
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	ListActiveByQuiz(ctx context.Context, quizID int64) ([]model.Question, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]model.Question, error)
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id int64) error
}

// SubmissionStore is the submission persistence surface.
type SubmissionStore interface {
	FindAnsweredQuestionIDs(ctx context.Context, userID int64, questionIDs []int64) ([]int64, error)
	CreateWithAnswers(ctx context.Context, sub *model.Submission, answers []model.Answer) error
	GetByID(ctx context.Context, id int64) (*model.SubmissionDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Submission, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Submission, error)
	AggregateByQuiz(ctx context.Context, quizID int64) (*repository.StatsRow, error)
}

// Notifier schedules a best-effort post-submission notification. It must
// never block the submission response; failures are logged by the caller.
type Notifier interface {
	SubmissionCreated(ctx context.Context, submissionID int64) error
}
