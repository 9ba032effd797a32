package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/komi-attractions/internal/model"
)

// placeColumns lists the places columns plus the two values denormalized
// from the category for list rendering.  The category join only matches
// published categories, so a hidden category never leaks through a place.
const placeColumns = `p.id, p.name, p.name_ru, p.description, p.description_ru, p.category_id,
	p.rating, p.image, p.address, p.address_ru, p.opening_hours, p.opening_hours_ru,
	p.entry_fee, p.entry_fee_ru, p.latitude, p.longitude, p.amenities, p.is_open,
	p.published, p.created_at, p.updated_at,
	c.slug AS category_slug, c.name_ru AS category_name_ru`

const placeFrom = `FROM places p
	LEFT JOIN categories c ON c.id = p.category_id AND c.published = 1`

// PlaceRepo encapsulates all database queries related to places and their
// gallery images.
type PlaceRepo struct {
	db *sqlx.DB
}

// NewPlaceRepo constructs a PlaceRepo with the provided DB handle.
func NewPlaceRepo(db *sqlx.DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

// List returns one page of published places matching q together with the
// total number of matches.
func (r *PlaceRepo) List(ctx context.Context, q PlaceQuery) ([]model.Place, int64, error) {
	cond, args := placeWhere(q.PlaceFilter)

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+placeFrom+" WHERE "+cond, args...); err != nil {
		return nil, 0, err
	}
	if err := checkPage(q.Page, total); err != nil {
		return nil, total, err
	}

	dataSQL := "SELECT " + placeColumns + " " + placeFrom +
		" WHERE " + cond +
		" ORDER BY " + placeOrdering.orderBy(q.Ordering) +
		" LIMIT ? OFFSET ?"
	out := []model.Place{}
	if err := r.db.SelectContext(ctx, &out, dataSQL, append(args, q.Page.Size, q.Page.offset())...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Featured returns the top-rated published places matching f, at most limit.
func (r *PlaceRepo) Featured(ctx context.Context, f PlaceFilter, limit int) ([]model.Place, error) {
	out := []model.Place{}
	if limit <= 0 {
		return out, nil
	}
	cond, args := placeWhere(f)
	q := "SELECT " + placeColumns + " " + placeFrom +
		" WHERE " + cond +
		" ORDER BY " + placeOrdering.orderBy("-rating,name_ru") +
		" LIMIT ?"
	if err := r.db.SelectContext(ctx, &out, q, append(args, limit)...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPublished returns a published place with its category and gallery.
// ErrPlaceNotFound is returned for unknown and unpublished ids alike.
func (r *PlaceRepo) GetPublished(ctx context.Context, id uint64) (*model.PlaceDetail, error) {
	var d model.PlaceDetail
	q := "SELECT " + placeColumns + " " + placeFrom + " WHERE p.id = ? AND p.published = 1"
	if err := r.db.GetContext(ctx, &d.Place, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	if d.CategorySlug.Valid {
		var cat model.Category
		const qc = `SELECT id, name, name_ru, slug, published, created_at, updated_at
		            FROM categories WHERE id = ? AND published = 1`
		switch err := r.db.GetContext(ctx, &cat, qc, d.CategoryID.Int64); {
		case err == nil:
			d.Category = &cat
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}

	images, err := r.Images(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Images = images
	return &d, nil
}

// ExistsPublished reports whether a published place with the id exists.
func (r *PlaceRepo) ExistsPublished(ctx context.Context, id uint64) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM places WHERE id = ? AND published = 1", id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create validates and inserts a place.  After the insert a SELECT
// populates the server-assigned timestamps.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place) error {
	if fe := p.Validate(); !fe.Empty() {
		return fe
	}
	if p.Amenities == nil {
		p.Amenities = model.StringList{}
	}
	const qInsert = `INSERT INTO places (name, name_ru, description, description_ru, category_id,
		rating, image, address, address_ru, opening_hours, opening_hours_ru, entry_fee,
		entry_fee_ru, latitude, longitude, amenities, is_open, published)
		VALUES (:name, :name_ru, :description, :description_ru, :category_id,
		:rating, :image, :address, :address_ru, :opening_hours, :opening_hours_ru, :entry_fee,
		:entry_fee_ru, :latitude, :longitude, :amenities, :is_open, :published)`
	res, err := r.db.NamedExecContext(ctx, qInsert, p)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM places WHERE id = ?"
	return r.db.QueryRowxContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Delete removes a place.  Its gallery images and reviews go with it
// through ON DELETE CASCADE.
func (r *PlaceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaceNotFound
	}
	return nil
}

// Images returns the gallery of a place in display order.
func (r *PlaceRepo) Images(ctx context.Context, placeID uint64) ([]model.PlaceImage, error) {
	const q = `SELECT id, place_id, image, caption, sort_order, created_at
	           FROM place_images WHERE place_id = ?
	           ORDER BY sort_order ASC, created_at ASC, id ASC`
	out := []model.PlaceImage{}
	if err := r.db.SelectContext(ctx, &out, q, placeID); err != nil {
		return nil, err
	}
	return out, nil
}

// AddImage attaches a gallery image to an existing place.
func (r *PlaceRepo) AddImage(ctx context.Context, img *model.PlaceImage) error {
	if fe := img.Validate(); !fe.Empty() {
		return fe
	}
	const qInsert = "INSERT INTO place_images (place_id, image, caption, sort_order) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, img.PlaceID, img.Image, img.Caption, img.Order)
	if err != nil {
		if err = mapError(err); errors.Is(err, ErrInvalidReference) {
			return ErrPlaceNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	img.ID = uint64(id)
	return r.db.QueryRowxContext(ctx, "SELECT created_at FROM place_images WHERE id = ?", img.ID).Scan(&img.CreatedAt)
}
