package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// ErrDuplicateAnswer reports that the unique (user, question) constraint
// on answers rejected the write. Under concurrent submissions this, not
// the application pre-check, is the authoritative signal.
var ErrDuplicateAnswer = errors.New("duplicate answer for user and question")

const uniqueViolationCode = "23505"

// SubmissionRepository handles submission and answer data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// FindAnsweredQuestionIDs returns which of the given question ids the
// user has already answered in any prior submission.
func (r *SubmissionRepository) FindAnsweredQuestionIDs(ctx context.Context, userID int64, questionIDs []int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id FROM answers
		 WHERE user_id = $1 AND question_id = ANY($2)
		 ORDER BY question_id`, userID, questionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateWithAnswers persists a submission and its answers as one
// transaction. A failure anywhere leaves nothing behind. The bulk answer
// insert uses UNNEST so the unique (user_id, question_id) index rejects
// a concurrent duplicate atomically; that case surfaces as
// ErrDuplicateAnswer.
func (r *SubmissionRepository) CreateWithAnswers(ctx context.Context, sub *model.Submission, answers []model.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO submissions (user_id, quiz_id, score, total_marks, obtained_marks)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, submitted_at`,
		sub.UserID, sub.QuizID, sub.Score, sub.TotalMarks, sub.ObtainedMarks,
	).Scan(&sub.ID, &sub.SubmittedAt)
	if err != nil {
		return err
	}

	if len(answers) > 0 {
		n := len(answers)
		questionIDs := make([]int64, n)
		selected := make([]string, n)
		correct := make([]bool, n)
		marks := make([]int, n)
		for i, a := range answers {
			questionIDs[i] = a.QuestionID
			selected[i] = string(a.SelectedAnswer)
			correct[i] = a.IsCorrect
			marks[i] = a.MarksObtained
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO answers (submission_id, question_id, user_id, selected_answer, is_correct, marks_obtained)
			 SELECT $1, u.question_id, $2, u.selected_answer, u.is_correct, u.marks_obtained
			 FROM UNNEST($3::bigint[], $4::text[], $5::boolean[], $6::int[])
			      AS u (question_id, selected_answer, is_correct, marks_obtained)`,
			sub.ID, sub.UserID, questionIDs, selected, correct, marks)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return ErrDuplicateAnswer
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a submission with its answers.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*model.SubmissionDetail, error) {
	d := &model.SubmissionDetail{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, quiz_id, submitted_at, score, total_marks, obtained_marks
		 FROM submissions WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.QuizID, &d.SubmittedAt, &d.Score, &d.TotalMarks, &d.ObtainedMarks)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, submission_id, question_id, user_id, selected_answer, is_correct, marks_obtained
		 FROM answers WHERE submission_id = $1
		 ORDER BY question_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.SubmissionID, &a.QuestionID, &a.UserID,
			&a.SelectedAnswer, &a.IsCorrect, &a.MarksObtained); err != nil {
			return nil, err
		}
		d.Answers = append(d.Answers, a)
	}
	return d, rows.Err()
}

// ListByUser retrieves a user's submissions newest first.
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	return r.list(ctx,
		`SELECT id, user_id, quiz_id, submitted_at, score, total_marks, obtained_marks
		 FROM submissions WHERE user_id = $1
		 ORDER BY submitted_at DESC`, userID)
}

// ListAll retrieves every submission newest first, limit/offset paginated.
func (r *SubmissionRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Submission, error) {
	return r.list(ctx,
		`SELECT id, user_id, quiz_id, submitted_at, score, total_marks, obtained_marks
		 FROM submissions
		 ORDER BY submitted_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *SubmissionRepository) list(ctx context.Context, query string, args ...any) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.QuizID, &s.SubmittedAt,
			&s.Score, &s.TotalMarks, &s.ObtainedMarks); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// StatsRow is the raw aggregate over one quiz's submissions.
type StatsRow struct {
	TotalAttempts int
	UniqueUsers   int
	AverageScore  float64
	HighestScore  float64
	LowestScore   float64
	PassedCount   int
}

// AggregateByQuiz computes the submission aggregate for one quiz in a
// single query. Passed means score >= the quiz's passing_score.
func (r *SubmissionRepository) AggregateByQuiz(ctx context.Context, quizID int64) (*StatsRow, error) {
	row := &StatsRow{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(DISTINCT s.user_id),
		        COALESCE(AVG(s.score), 0),
		        COALESCE(MAX(s.score), 0),
		        COALESCE(MIN(s.score), 0),
		        COUNT(*) FILTER (WHERE s.score >= q.passing_score)
		 FROM submissions s
		 JOIN quizzes q ON q.id = s.quiz_id
		 WHERE s.quiz_id = $1`, quizID,
	).Scan(&row.TotalAttempts, &row.UniqueUsers, &row.AverageScore,
		&row.HighestScore, &row.LowestScore, &row.PassedCount)
	if err != nil {
		return nil, err
	}
	return row, nil
}
