package handler

import (
	"context"

	"github.com/iliyamo/komi-attractions/internal/model"
	"github.com/iliyamo/komi-attractions/internal/queue"
	"github.com/iliyamo/komi-attractions/internal/repository"
)

// The handlers depend on these narrow views of the repositories so they can
// be exercised without a database.  *repository.CategoryRepo,
// *repository.PlaceRepo and *repository.ReviewRepo satisfy them.

type CategoryStore interface {
	ListPublished(ctx context.Context) ([]model.Category, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type PlaceStore interface {
	List(ctx context.Context, q repository.PlaceQuery) ([]model.Place, int64, error)
	Featured(ctx context.Context, f repository.PlaceFilter, limit int) ([]model.Place, error)
	GetPublished(ctx context.Context, id uint64) (*model.PlaceDetail, error)
	ExistsPublished(ctx context.Context, id uint64) (bool, error)
	Create(ctx context.Context, p *model.Place) error
	Delete(ctx context.Context, id uint64) error
	AddImage(ctx context.Context, img *model.PlaceImage) error
}

type ReviewStore interface {
	List(ctx context.Context, q repository.ReviewQuery) ([]model.Review, int64, error)
	GetPublished(ctx context.Context, id uint64) (*model.Review, error)
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	Create(ctx context.Context, rv *model.Review) error
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id uint64) error
}

// ReviewEvents receives review.created notifications.  Implemented by
// service.ReviewPublisher.
type ReviewEvents interface {
	PublishReviewCreated(ctx context.Context, ev queue.ReviewCreatedEvent) error
}

var (
	_ CategoryStore = (*repository.CategoryRepo)(nil)
	_ PlaceStore    = (*repository.PlaceRepo)(nil)
	_ ReviewStore   = (*repository.ReviewRepo)(nil)
)
