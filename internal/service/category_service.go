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

// CategoryService handles category reads and content management.
type CategoryService struct {
	categories CategoryStore
	store      cache.Store
	log        zerolog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories CategoryStore, store cache.Store, log zerolog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		store:      store,
		log:        log.With().Str("component", "category_service").Logger(),
	}
}

// List returns categories for the given view. The public view serves
// active categories through the cache; the admin view always reads the
// database and includes inactive records.
func (s *CategoryService) List(ctx context.Context, view model.View) ([]model.Category, error) {
	if view == model.ViewAdmin {
		return s.categories.ListAll(ctx)
	}

	key := config.CacheKey.ActiveCategoriesKey()
	if raw, err := s.store.Get(ctx, key); err == nil {
		var categories []model.Category
		if err := json.Unmarshal(raw, &categories); err == nil {
			return categories, nil
		}
		s.log.Warn().Str("key", key).Msg("Corrupt cache entry, re-deriving")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	}

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}

	if raw, err := json.Marshal(categories); err == nil {
		if err := s.store.Set(ctx, key, raw, cache.TTLCategories); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return categories, nil
}

// Create inserts a category and invalidates the public listing.
func (s *CategoryService) Create(ctx context.Context, principal model.Principal, req model.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   &principal.ID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

// Update applies the non-nil request fields and invalidates the public listing.
func (s *CategoryService) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("category %d not found", id)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

// Delete removes a category and invalidates the public listing.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("category %d not found", id)
		}
		return fmt.Errorf("get category: %w", err)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

// invalidate drops the derived category views after a committed write.
func (s *CategoryService) invalidate(ctx context.Context) {
	key := config.CacheKey.ActiveCategoriesKey()
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}
