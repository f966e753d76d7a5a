package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/cache"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
)

func TestCategoryListViews(t *testing.T) {
	categories := newFakeCategoryStore(
		&model.Category{ID: 1, Name: "Programming", IsActive: true},
		&model.Category{ID: 2, Name: "Retired", IsActive: false},
	)
	svc := NewCategoryService(categories, cache.NewMemory(), zerolog.Nop())
	ctx := context.Background()

	public, err := svc.List(ctx, model.ViewPublic)
	if err != nil {
		t.Fatalf("List public: %v", err)
	}
	if len(public) != 1 {
		t.Errorf("public len = %d, want 1", len(public))
	}

	all, err := svc.List(ctx, model.ViewAdmin)
	if err != nil {
		t.Fatalf("List admin: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin len = %d, want 2", len(all))
	}
}

func TestCategoryMutationsInvalidateListing(t *testing.T) {
	categories := newFakeCategoryStore(&model.Category{ID: 1, Name: "Programming", IsActive: true})
	store := cache.NewMemory()
	svc := NewCategoryService(categories, store, zerolog.Nop())
	ctx := context.Background()
	key := config.CacheKey.ActiveCategoriesKey()

	_ = store.Set(ctx, key, []byte("stale"), 0)
	name := "Programming II"
	if _, err := svc.Update(ctx, 1, model.UpdateCategoryRequest{Name: name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("listing key survived update, err = %v", err)
	}

	_ = store.Set(ctx, key, []byte("stale"), 0)
	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("listing key survived delete, err = %v", err)
	}
}

func TestCategoryUpdateUnknown(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore(), cache.NewMemory(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), 404, model.UpdateCategoryRequest{}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
