package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
)

// Hand-written fakes for the store interfaces. Missing records read as
// pgx.ErrNoRows, matching the real repositories.

type fakeQuizStore struct {
	quizzes map[int64]*model.Quiz
	items   []model.QuizListItem

	listActiveCalls int
	getActiveCalls  int
}

func newFakeQuizStore(quizzes ...*model.Quiz) *fakeQuizStore {
	s := &fakeQuizStore{quizzes: make(map[int64]*model.Quiz)}
	for _, q := range quizzes {
		s.quizzes[q.ID] = q
	}
	return s
}

func (s *fakeQuizStore) GetByID(_ context.Context, id int64) (*model.Quiz, error) {
	q, ok := s.quizzes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (s *fakeQuizStore) GetActiveByID(_ context.Context, id int64) (*model.Quiz, error) {
	s.getActiveCalls++
	q, ok := s.quizzes[id]
	if !ok || !q.IsActive {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (s *fakeQuizStore) ListActive(_ context.Context) ([]model.QuizListItem, error) {
	s.listActiveCalls++
	var out []model.QuizListItem
	for _, it := range s.items {
		if it.IsActive {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeQuizStore) ListAll(_ context.Context) ([]model.QuizListItem, error) {
	return s.items, nil
}

func (s *fakeQuizStore) Create(_ context.Context, q *model.Quiz) error {
	q.ID = int64(len(s.quizzes) + 1)
	q.CreatedAt = time.Now()
	s.quizzes[q.ID] = q
	return nil
}

func (s *fakeQuizStore) Update(_ context.Context, q *model.Quiz) error {
	if _, ok := s.quizzes[q.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.quizzes[q.ID] = q
	return nil
}

func (s *fakeQuizStore) Delete(_ context.Context, id int64) error {
	delete(s.quizzes, id)
	return nil
}

type fakeQuestionStore struct {
	byQuiz map[int64][]model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{byQuiz: make(map[int64][]model.Question)}
}

func (s *fakeQuestionStore) GetByID(_ context.Context, id int64) (*model.Question, error) {
	for _, qs := range s.byQuiz {
		for _, q := range qs {
			if q.ID == id {
				cp := q
				return &cp, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeQuestionStore) ListActiveByQuiz(_ context.Context, quizID int64) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.byQuiz[quizID] {
		if q.IsActive {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) ListByQuiz(_ context.Context, quizID int64) ([]model.Question, error) {
	return s.byQuiz[quizID], nil
}

func (s *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	q.ID = int64(len(s.byQuiz[q.QuizID]) + 1)
	s.byQuiz[q.QuizID] = append(s.byQuiz[q.QuizID], *q)
	return nil
}

func (s *fakeQuestionStore) Update(_ context.Context, q *model.Question) error {
	qs := s.byQuiz[q.QuizID]
	for i := range qs {
		if qs[i].ID == q.ID {
			qs[i] = *q
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *fakeQuestionStore) Delete(_ context.Context, id int64) error {
	for quizID, qs := range s.byQuiz {
		for i := range qs {
			if qs[i].ID == id {
				s.byQuiz[quizID] = append(qs[:i], qs[i+1:]...)
				return nil
			}
		}
	}
	return pgx.ErrNoRows
}

type fakeSubmissionStore struct {
	answered    map[int64]bool // question ids the user already answered
	createErr   error          // returned once by CreateWithAnswers
	created     []*model.Submission
	submissions map[int64]*model.SubmissionDetail
	byUser      map[int64][]model.Submission
	statsRow    *repository.StatsRow

	listByUserCalls int
	aggregateCalls  int
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{
		answered:    make(map[int64]bool),
		submissions: make(map[int64]*model.SubmissionDetail),
		byUser:      make(map[int64][]model.Submission),
	}
}

func (s *fakeSubmissionStore) FindAnsweredQuestionIDs(_ context.Context, _ int64, questionIDs []int64) ([]int64, error) {
	var out []int64
	for _, id := range questionIDs {
		if s.answered[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeSubmissionStore) CreateWithAnswers(_ context.Context, sub *model.Submission, answers []model.Answer) error {
	if s.createErr != nil {
		err := s.createErr
		s.createErr = nil
		return err
	}
	sub.ID = int64(len(s.created) + 1)
	sub.SubmittedAt = time.Now()
	s.created = append(s.created, sub)
	for _, a := range answers {
		s.answered[a.QuestionID] = true
	}
	return nil
}

func (s *fakeSubmissionStore) GetByID(_ context.Context, id int64) (*model.SubmissionDetail, error) {
	d, ok := s.submissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (s *fakeSubmissionStore) ListByUser(_ context.Context, userID int64) ([]model.Submission, error) {
	s.listByUserCalls++
	return s.byUser[userID], nil
}

func (s *fakeSubmissionStore) ListAll(_ context.Context, limit, offset int) ([]model.Submission, error) {
	var all []model.Submission
	for _, subs := range s.byUser {
		all = append(all, subs...)
	}
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeSubmissionStore) AggregateByQuiz(_ context.Context, _ int64) (*repository.StatsRow, error) {
	s.aggregateCalls++
	if s.statsRow == nil {
		return &repository.StatsRow{}, nil
	}
	return s.statsRow, nil
}

type fakeCategoryStore struct {
	categories map[int64]*model.Category
}

func newFakeCategoryStore(categories ...*model.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{categories: make(map[int64]*model.Category)}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id int64) (*model.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) ListActive(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCategoryStore) ListAll(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCategoryStore) Create(_ context.Context, c *model.Category) error {
	c.ID = int64(len(s.categories) + 1)
	s.categories[c.ID] = c
	return nil
}

func (s *fakeCategoryStore) Update(_ context.Context, c *model.Category) error {
	if _, ok := s.categories[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.categories[c.ID] = c
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	delete(s.categories, id)
	return nil
}

type fakeNotifier struct {
	notified []int64
	err      error
}

func (n *fakeNotifier) SubmissionCreated(_ context.Context, submissionID int64) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, submissionID)
	return nil
}

// brokenStore fails every cache operation, simulating an unreachable
// backend. Services must keep serving from the repositories.
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errStoreDown
}
func (brokenStore) Delete(context.Context, ...string) error { return errStoreDown }
