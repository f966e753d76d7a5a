package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// CategoryRepository handles category data access.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// GetByID retrieves a category regardless of active state.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	c := &model.Category{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, is_active, created_by, created_at, updated_at
		 FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListActive retrieves active categories ordered by name.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx,
		`SELECT id, name, description, is_active, created_by, created_at, updated_at
		 FROM categories WHERE is_active = TRUE ORDER BY name`)
}

// ListAll retrieves every category ordered by name.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx,
		`SELECT id, name, description, is_active, created_by, created_at, updated_at
		 FROM categories ORDER BY name`)
}

func (r *CategoryRepository) list(ctx context.Context, query string) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, description, is_active, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.IsActive, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update persists mutable category fields.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE categories
		 SET name = $1, description = $2, is_active = $3, updated_at = NOW()
		 WHERE id = $4`,
		c.Name, c.Description, c.IsActive, c.ID)
	return err
}

// Delete removes a category; its quizzes cascade at the database level.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
