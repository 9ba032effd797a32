package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/komi-attractions/internal/model"
)

const reviewColumns = "id, place_id, author, rating, comment, date, published, created_at, updated_at"

// ReviewQuery narrows the published reviews.  A nil PlaceID lists reviews
// of every place.
type ReviewQuery struct {
	PlaceID  *uint64
	Ordering string // comma-separated among date, rating, created_at
	Page     Page
}

var reviewOrdering = orderSpec{
	columns: map[string]string{
		"date":       "date",
		"rating":     "rating",
		"created_at": "created_at",
	},
	defaults: []string{"-date"},
	tiebreak: "id",
}

// ReviewRepo encapsulates all database queries related to reviews.
type ReviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sqlx.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// List returns one page of published reviews and the total match count.
func (r *ReviewRepo) List(ctx context.Context, q ReviewQuery) ([]model.Review, int64, error) {
	cond := "published = 1"
	var args []any
	if q.PlaceID != nil {
		cond += " AND place_id = ?"
		args = append(args, *q.PlaceID)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reviews WHERE "+cond, args...); err != nil {
		return nil, 0, err
	}
	if err := checkPage(q.Page, total); err != nil {
		return nil, total, err
	}

	dataSQL := "SELECT " + reviewColumns + " FROM reviews WHERE " + cond +
		" ORDER BY " + reviewOrdering.orderBy(q.Ordering) + " LIMIT ? OFFSET ?"
	out := []model.Review{}
	if err := r.db.SelectContext(ctx, &out, dataSQL, append(args, q.Page.Size, q.Page.offset())...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetPublished fetches a published review by id.
func (r *ReviewRepo) GetPublished(ctx context.Context, id uint64) (*model.Review, error) {
	return r.get(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = ? AND published = 1", id)
}

// GetByID fetches a review regardless of its published flag.  Moderation
// uses it to edit hidden reviews.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	return r.get(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id)
}

func (r *ReviewRepo) get(ctx context.Context, q string, id uint64) (*model.Review, error) {
	var rv model.Review
	if err := r.db.GetContext(ctx, &rv, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// Create validates and inserts a review, then reads back the timestamps
// the server assigned.  A place id without a matching row yields
// ErrInvalidReference.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	if fe := rv.Validate(); !fe.Empty() {
		return fe
	}
	const qInsert = `INSERT INTO reviews (place_id, author, rating, comment, date, published)
	                 VALUES (:place_id, :author, :rating, :comment, :date, :published)`
	res, err := r.db.NamedExecContext(ctx, qInsert, rv)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return r.db.QueryRowxContext(ctx, "SELECT created_at, updated_at FROM reviews WHERE id = ?", rv.ID).
		Scan(&rv.CreatedAt, &rv.UpdatedAt)
}

// Update overwrites every editable column of an existing review.
func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review) error {
	if fe := rv.Validate(); !fe.Empty() {
		return fe
	}
	const q = `UPDATE reviews
	           SET place_id = :place_id, author = :author, rating = :rating, comment = :comment,
	               date = :date, published = :published, updated_at = CURRENT_TIMESTAMP
	           WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, q, rv); err != nil {
		return mapError(err)
	}
	// MySQL reports 0 affected rows for a no-op update, so existence is
	// checked by re-reading the row.
	fresh, err := r.GetByID(ctx, rv.ID)
	if err != nil {
		return err
	}
	*rv = *fresh
	return nil
}

// Delete removes a review.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
