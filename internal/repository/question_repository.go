package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, marks, is_active, created_at, updated_at`

func scanQuestion(row interface{ Scan(dest ...any) error }, q *model.Question) error {
	return row.Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC,
		&q.OptionD, &q.CorrectAnswer, &q.Marks, &q.IsActive, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	q := &model.Question{}
	row := r.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	if err := scanQuestion(row, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListActiveByQuiz retrieves the active question bank of a quiz. This is
// the set scoring totals are computed over.
func (r *QuestionRepository) ListActiveByQuiz(ctx context.Context, quizID int64) ([]model.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE quiz_id = $1 AND is_active = TRUE
		 ORDER BY id`, quizID)
}

// ListByQuiz retrieves all questions of a quiz, inactive ones included.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]model.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE quiz_id = $1
		 ORDER BY id`, quizID)
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...any) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, marks, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		q.QuizID, q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.Marks, q.IsActive,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update persists mutable question fields.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET question_text = $1, option_a = $2, option_b = $3, option_c = $4, option_d = $5,
		     correct_answer = $6, marks = $7, is_active = $8, updated_at = NOW()
		 WHERE id = $9`,
		q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		q.CorrectAnswer, q.Marks, q.IsActive, q.ID)
	return err
}

// Delete removes a question; its answers cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
