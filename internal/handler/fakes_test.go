package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/komi-attractions/internal/model"
	"github.com/iliyamo/komi-attractions/internal/queue"
	"github.com/iliyamo/komi-attractions/internal/repository"
)

var errBoom = errors.New("boom")

type fakeCategories struct {
	cats    []model.Category
	created []model.Category
	deleted []string
}

func (f *fakeCategories) ListPublished(context.Context) ([]model.Category, error) {
	out := []model.Category{}
	for _, c := range f.cats {
		if c.Published {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) GetPublishedBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range f.cats {
		if c.Slug == slug && c.Published {
			c := c
			return &c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (f *fakeCategories) Create(_ context.Context, c *model.Category) error {
	if fe := c.Validate(); !fe.Empty() {
		return fe
	}
	for _, existing := range f.cats {
		if existing.Slug == c.Slug {
			return repository.ErrConflict
		}
	}
	c.ID = uint64(len(f.cats) + 1)
	f.cats = append(f.cats, *c)
	f.created = append(f.created, *c)
	return nil
}

func (f *fakeCategories) DeleteBySlug(_ context.Context, slug string) error {
	for i, c := range f.cats {
		if c.Slug == slug {
			f.cats = append(f.cats[:i], f.cats[i+1:]...)
			f.deleted = append(f.deleted, slug)
			return nil
		}
	}
	return repository.ErrCategoryNotFound
}

type fakePlaces struct {
	places    []model.Place
	details   map[uint64]*model.PlaceDetail
	total     int64
	listErr   error
	lastQuery repository.PlaceQuery
	lastLimit int
	lastFeat  repository.PlaceFilter
	images    []model.PlaceImage
	deleted   []uint64
}

func (f *fakePlaces) List(_ context.Context, q repository.PlaceQuery) ([]model.Place, int64, error) {
	f.lastQuery = q
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.places, f.total, nil
}

func (f *fakePlaces) Featured(_ context.Context, flt repository.PlaceFilter, limit int) ([]model.Place, error) {
	f.lastFeat = flt
	f.lastLimit = limit
	if limit < len(f.places) {
		return f.places[:limit], nil
	}
	return f.places, nil
}

func (f *fakePlaces) GetPublished(_ context.Context, id uint64) (*model.PlaceDetail, error) {
	if d, ok := f.details[id]; ok && d.Published {
		return d, nil
	}
	return nil, repository.ErrPlaceNotFound
}

func (f *fakePlaces) ExistsPublished(_ context.Context, id uint64) (bool, error) {
	d, ok := f.details[id]
	return ok && d.Published, nil
}

func (f *fakePlaces) Create(_ context.Context, p *model.Place) error {
	if fe := p.Validate(); !fe.Empty() {
		return fe
	}
	p.ID = uint64(100 + len(f.details))
	p.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	if f.details == nil {
		f.details = map[uint64]*model.PlaceDetail{}
	}
	f.details[p.ID] = &model.PlaceDetail{Place: *p}
	return nil
}

func (f *fakePlaces) Delete(_ context.Context, id uint64) error {
	if _, ok := f.details[id]; !ok {
		return repository.ErrPlaceNotFound
	}
	delete(f.details, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePlaces) AddImage(_ context.Context, img *model.PlaceImage) error {
	if fe := img.Validate(); !fe.Empty() {
		return fe
	}
	if _, ok := f.details[img.PlaceID]; !ok {
		return repository.ErrPlaceNotFound
	}
	img.ID = uint64(len(f.images) + 1)
	f.images = append(f.images, *img)
	return nil
}

type fakeReviews struct {
	rows      map[uint64]*model.Review
	lastQuery repository.ReviewQuery
	total     int64
	nextID    uint64
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{rows: map[uint64]*model.Review{}, nextID: 1}
}

func (f *fakeReviews) List(_ context.Context, q repository.ReviewQuery) ([]model.Review, int64, error) {
	f.lastQuery = q
	out := []model.Review{}
	for _, r := range f.rows {
		if r.Published && (q.PlaceID == nil || *q.PlaceID == r.PlaceID) {
			out = append(out, *r)
		}
	}
	if f.total > 0 {
		return out, f.total, nil
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviews) GetPublished(_ context.Context, id uint64) (*model.Review, error) {
	if r, ok := f.rows[id]; ok && r.Published {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrReviewNotFound
}

func (f *fakeReviews) GetByID(_ context.Context, id uint64) (*model.Review, error) {
	if r, ok := f.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrReviewNotFound
}

func (f *fakeReviews) Create(_ context.Context, rv *model.Review) error {
	if fe := rv.Validate(); !fe.Empty() {
		return fe
	}
	rv.ID = f.nextID
	f.nextID++
	rv.CreatedAt = time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)
	rv.UpdatedAt = rv.CreatedAt
	cp := *rv
	f.rows[rv.ID] = &cp
	return nil
}

func (f *fakeReviews) Update(_ context.Context, rv *model.Review) error {
	if _, ok := f.rows[rv.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	rv.UpdatedAt = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	cp := *rv
	f.rows[rv.ID] = &cp
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []queue.ReviewCreatedEvent
	// deadline is set when the last publish ran under a deadline.
	deadline bool
	err      error
}

func (f *fakeEvents) PublishReviewCreated(ctx context.Context, ev queue.ReviewCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	_, f.deadline = ctx.Deadline()
	return f.err
}

// do runs one request through a bare Echo instance with the handler mounted
// at route.
func do(t *testing.T, method, route, target, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Add(method, route, h)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
