package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, title, description, category_id, time_limit, passing_score, is_active, created_by, created_at, updated_at`

func scanQuiz(row interface{ Scan(dest ...any) error }, q *model.Quiz) error {
	return row.Scan(&q.ID, &q.Title, &q.Description, &q.CategoryID, &q.TimeLimit,
		&q.PassingScore, &q.IsActive, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a quiz regardless of active state.
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*model.Quiz, error) {
	q := &model.Quiz{}
	row := r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id)
	if err := scanQuiz(row, q); err != nil {
		return nil, err
	}
	return q, nil
}

// GetActiveByID retrieves a quiz only if it is active.
func (r *QuizRepository) GetActiveByID(ctx context.Context, id int64) (*model.Quiz, error) {
	q := &model.Quiz{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1 AND is_active = TRUE`, id)
	if err := scanQuiz(row, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListActive retrieves active quizzes newest first, with category names
// and active question counts for the public listing.
func (r *QuizRepository) ListActive(ctx context.Context) ([]model.QuizListItem, error) {
	return r.listItems(ctx,
		`SELECT q.id, q.title, q.category_id, c.name, q.time_limit, q.passing_score,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id AND is_active = TRUE),
		        q.is_active, q.created_at
		 FROM quizzes q
		 JOIN categories c ON c.id = q.category_id
		 WHERE q.is_active = TRUE
		 ORDER BY q.created_at DESC`)
}

// ListAll retrieves every quiz newest first.
func (r *QuizRepository) ListAll(ctx context.Context) ([]model.QuizListItem, error) {
	return r.listItems(ctx,
		`SELECT q.id, q.title, q.category_id, c.name, q.time_limit, q.passing_score,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id AND is_active = TRUE),
		        q.is_active, q.created_at
		 FROM quizzes q
		 JOIN categories c ON c.id = q.category_id
		 ORDER BY q.created_at DESC`)
}

func (r *QuizRepository) listItems(ctx context.Context, query string) ([]model.QuizListItem, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.QuizListItem
	for rows.Next() {
		var it model.QuizListItem
		if err := rows.Scan(&it.ID, &it.Title, &it.CategoryID, &it.CategoryName, &it.TimeLimit,
			&it.PassingScore, &it.QuestionCount, &it.IsActive, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, description, category_id, time_limit, passing_score, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		q.Title, q.Description, q.CategoryID, q.TimeLimit, q.PassingScore, q.IsActive, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update persists mutable quiz fields.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $1, description = $2, category_id = $3, time_limit = $4,
		     passing_score = $5, is_active = $6, updated_at = NOW()
		 WHERE id = $7`,
		q.Title, q.Description, q.CategoryID, q.TimeLimit, q.PassingScore, q.IsActive, q.ID)
	return err
}

// Delete removes a quiz; its questions and submissions cascade.
func (r *QuizRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}
