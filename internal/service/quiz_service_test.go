package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/cache"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
)

type quizFixture struct {
	quizzes    *fakeQuizStore
	questions  *fakeQuestionStore
	categories *fakeCategoryStore
	store      *cache.Memory
	svc        *QuizService
}

func newQuizFixture() *quizFixture {
	f := &quizFixture{
		quizzes:    newFakeQuizStore(&model.Quiz{ID: 1, Title: "Go Basics", CategoryID: 1, IsActive: true}),
		questions:  newFakeQuestionStore(),
		categories: newFakeCategoryStore(&model.Category{ID: 1, Name: "Programming", IsActive: true}),
		store:      cache.NewMemory(),
	}
	f.questions.byQuiz[1] = []model.Question{
		{ID: 10, QuizID: 1, QuestionText: "q1", CorrectAnswer: model.AnswerA, Marks: 1, IsActive: true},
		{ID: 11, QuizID: 1, QuestionText: "q2", CorrectAnswer: model.AnswerB, Marks: 2, IsActive: false},
	}
	f.svc = NewQuizService(f.quizzes, f.questions, f.categories, f.store, zerolog.Nop())
	return f
}

func TestGetDetailPublicStripsAnswerKeys(t *testing.T) {
	f := newQuizFixture()

	got, err := f.svc.GetDetail(context.Background(), 1, model.ViewPublic)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	detail, ok := got.(*model.QuizDetailPublic)
	if !ok {
		t.Fatalf("GetDetail returned %T, want *model.QuizDetailPublic", got)
	}
	if len(detail.Questions) != 1 {
		t.Fatalf("Questions len = %d, want 1 (inactive excluded)", len(detail.Questions))
	}
	if detail.Questions[0].ID != 10 {
		t.Errorf("Questions[0].ID = %d, want 10", detail.Questions[0].ID)
	}
}

func TestGetDetailAdminIncludesEverything(t *testing.T) {
	f := newQuizFixture()

	got, err := f.svc.GetDetail(context.Background(), 1, model.ViewAdmin)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	detail, ok := got.(*model.QuizDetail)
	if !ok {
		t.Fatalf("GetDetail returned %T, want *model.QuizDetail", got)
	}
	if len(detail.Questions) != 2 {
		t.Fatalf("Questions len = %d, want 2 (inactive included)", len(detail.Questions))
	}
	if detail.Questions[0].CorrectAnswer != model.AnswerA {
		t.Errorf("CorrectAnswer = %q, want A", detail.Questions[0].CorrectAnswer)
	}
}

func TestGetDetailPublicReadThrough(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()

	if _, err := f.svc.GetDetail(ctx, 1, model.ViewPublic); err != nil {
		t.Fatalf("first GetDetail: %v", err)
	}
	if _, err := f.store.Get(ctx, config.CacheKey.QuizKey(1)); err != nil {
		t.Errorf("quiz key not cached after read: %v", err)
	}

	if _, err := f.svc.GetDetail(ctx, 1, model.ViewPublic); err != nil {
		t.Fatalf("second GetDetail: %v", err)
	}
	if f.quizzes.getActiveCalls != 1 {
		t.Errorf("GetActiveByID calls = %d, want 1 (second read from cache)", f.quizzes.getActiveCalls)
	}
}

func TestGetDetailInactiveQuizPublic(t *testing.T) {
	f := newQuizFixture()
	f.quizzes.quizzes[1].IsActive = false

	if _, err := f.svc.GetDetail(context.Background(), 1, model.ViewPublic); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("public err = %v, want NotFound", err)
	}
	// The admin view still sees it.
	if _, err := f.svc.GetDetail(context.Background(), 1, model.ViewAdmin); err != nil {
		t.Errorf("admin err = %v, want nil", err)
	}
}

func TestListPublicReadThrough(t *testing.T) {
	f := newQuizFixture()
	f.quizzes.items = []model.QuizListItem{
		{ID: 1, Title: "Go Basics", IsActive: true},
		{ID: 2, Title: "Draft", IsActive: false},
	}
	ctx := context.Background()

	items, err := f.svc.List(ctx, model.ViewPublic)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1 (inactive excluded)", len(items))
	}

	if _, err := f.svc.List(ctx, model.ViewPublic); err != nil {
		t.Fatalf("second List: %v", err)
	}
	if f.quizzes.listActiveCalls != 1 {
		t.Errorf("ListActive calls = %d, want 1 (second read from cache)", f.quizzes.listActiveCalls)
	}

	all, err := f.svc.List(ctx, model.ViewAdmin)
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin len = %d, want 2", len(all))
	}
}

func TestQuizMutationsInvalidate(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()

	// Warm the keys a mutation must drop.
	seed := func() {
		_ = f.store.Set(ctx, config.CacheKey.QuizKey(1), []byte("stale"), 0)
		_ = f.store.Set(ctx, config.CacheKey.ActiveQuizListKey(), []byte("stale"), 0)
	}
	assertDropped := func(t *testing.T, op string) {
		t.Helper()
		if _, err := f.store.Get(ctx, config.CacheKey.QuizKey(1)); err == nil {
			t.Errorf("%s left quiz key in cache", op)
		}
		if _, err := f.store.Get(ctx, config.CacheKey.ActiveQuizListKey()); err == nil {
			t.Errorf("%s left quiz list key in cache", op)
		}
	}

	seed()
	title := "Go Basics v2"
	if _, err := f.svc.Update(ctx, 1, model.UpdateQuizRequest{Title: title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	assertDropped(t, "Update")

	seed()
	if err := f.svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	assertDropped(t, "Delete")
}

func TestCreateQuizUnknownCategory(t *testing.T) {
	f := newQuizFixture()

	_, err := f.svc.Create(context.Background(), model.Principal{ID: 1, IsAdmin: true}, model.CreateQuizRequest{
		Title:      "New",
		CategoryID: 404,
		TimeLimit:  30,
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
