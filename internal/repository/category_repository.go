package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/komi-attractions/internal/model"
)

const categoryColumns = "id, name, name_ru, slug, published, created_at, updated_at"

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListPublished returns every published category ordered by English name.
func (r *CategoryRepo) ListPublished(ctx context.Context) ([]model.Category, error) {
	out := []model.Category{}
	q := "SELECT " + categoryColumns + " FROM categories WHERE published = 1 ORDER BY name, id"
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPublishedBySlug looks a category up by its slug.  Unknown and
// unpublished slugs both yield ErrCategoryNotFound.
func (r *CategoryRepo) GetPublishedBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	q := "SELECT " + categoryColumns + " FROM categories WHERE slug = ? AND published = 1"
	if err := r.db.GetContext(ctx, &c, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create validates and inserts a category.  A duplicate name or slug
// yields ErrConflict.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	if fe := c.Validate(); !fe.Empty() {
		return fe
	}
	const qInsert = "INSERT INTO categories (name, name_ru, slug, published) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, c.Name, c.NameRu, c.Slug, c.Published)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowxContext(ctx, "SELECT created_at, updated_at FROM categories WHERE id = ?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

// DeleteBySlug removes a category.  Places referencing it survive with a
// NULL category (ON DELETE SET NULL).
func (r *CategoryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE slug = ?", slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
