package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/komi-attractions/internal/model"
	"github.com/iliyamo/komi-attractions/internal/queue"
	"github.com/iliyamo/komi-attractions/internal/repository"
	"github.com/iliyamo/komi-attractions/internal/serializer"
)

// publishTimeout bounds the review.created publish after a review is stored.
const publishTimeout = 3 * time.Second

const msgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD, YYYY-MM-DDThh:mm[:ss][+HH:MM|-HH:MM|Z]."

// PlaceChecker is the part of PlaceStore review submission needs.
type PlaceChecker interface {
	ExistsPublished(ctx context.Context, id uint64) (bool, error)
}

// ReviewHandler serves the review endpoints.  Events may be nil, in which
// case no review.created message is sent.
type ReviewHandler struct {
	Reviews ReviewStore
	Places  PlaceChecker
	Events  ReviewEvents
	Paging  Paging
}

func NewReviewHandler(r ReviewStore, p PlaceChecker, ev ReviewEvents, pg Paging) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Places: p, Events: ev, Paging: pg}
}

// reviewReq keeps every field raw so that a value of the wrong JSON type
// is reported against its field.  Absent fields stay nil.  Published is
// only honored on moderation updates.
type reviewReq struct {
	Place     json.RawMessage `json:"place"`
	Author    json.RawMessage `json:"author"`
	Rating    json.RawMessage `json:"rating"`
	Comment   json.RawMessage `json:"comment"`
	Date      json.RawMessage `json:"date"`
	Published json.RawMessage `json:"published"`
}

// apply copies the submitted fields onto rv.  Unless partial is set every
// field is required.  The returned errors cover missing and mistyped
// fields; range checks are left to model validation.
func (req reviewReq) apply(rv *model.Review, partial bool) model.FieldErrors {
	fe := model.FieldErrors{}
	field := func(name string, raw json.RawMessage, set func(json.RawMessage) string) {
		if raw == nil {
			if !partial {
				fe.Add(name, model.MsgRequired)
			}
			return
		}
		if msg := set(raw); msg != "" {
			fe.Add(name, msg)
		}
	}
	field("place", req.Place, func(raw json.RawMessage) string {
		id, msg := pkField(raw)
		rv.PlaceID = id
		return msg
	})
	field("author", req.Author, func(raw json.RawMessage) string {
		s, msg := textField(raw)
		rv.Author = strings.TrimSpace(s)
		return msg
	})
	field("rating", req.Rating, func(raw json.RawMessage) string {
		n, msg := intField(raw)
		rv.Rating = n
		return msg
	})
	field("comment", req.Comment, func(raw json.RawMessage) string {
		s, msg := textField(raw)
		rv.Comment = strings.TrimSpace(s)
		return msg
	})
	field("date", req.Date, func(raw json.RawMessage) string {
		s, ok := jsonValue(raw).(string)
		if !ok {
			if jsonValue(raw) == nil {
				return msgNull
			}
			return msgDateFormat
		}
		d, err := parseReviewDate(s)
		if err != nil {
			return msgDateFormat
		}
		rv.Date = d
		return ""
	})
	// Always partial: PUT leaves the flag alone when it is omitted.
	if req.Published != nil {
		if pub, msg := boolField(req.Published); msg != "" {
			fe.Add("published", msg)
		} else {
			rv.Published = pub
		}
	}
	return fe
}

// parseReviewDate accepts RFC 3339 timestamps and plain dates, the latter
// taken as midnight UTC.
func parseReviewDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

// validate merges model validation into fe without repeating a field that
// already failed while parsing, then checks the place reference.
func (h *ReviewHandler) validate(ctx context.Context, rv *model.Review, fe model.FieldErrors, checkPlace bool) (model.FieldErrors, error) {
	for field, msgs := range rv.Validate() {
		if _, seen := fe[field]; !seen {
			fe[field] = msgs
		}
	}
	if _, bad := fe["place"]; checkPlace && !bad {
		ok, err := h.Places.ExistsPublished(ctx, rv.PlaceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			fe.Add("place", `Invalid pk "`+strconv.FormatUint(rv.PlaceID, 10)+`" - object does not exist.`)
		}
	}
	return fe, nil
}

// List returns a page of published reviews.
//
// Query: place (place id), ordering (date, rating, created_at; "-" for
// descending), page, page_size.
func (h *ReviewHandler) List(c echo.Context) error {
	page, err := h.Paging.parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	q := repository.ReviewQuery{Ordering: c.QueryParam("ordering"), Page: page}
	if raw := strings.TrimSpace(c.QueryParam("place")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place"})
		}
		q.PlaceID = &id
	}
	reviews, total, err := h.Reviews.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, page, total, serializer.NewReviews(reviews))
}

// Get returns one published review.
func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rv, err := h.Reviews.GetPublished(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.NewReview(*rv))
}

// Create stores a visitor review for a published place.  The id and
// timestamps are assigned by the server; the review is published at once.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := writeCtx(c)
	defer cancel()

	req.Published = nil
	rv := model.Review{Published: true}
	fe, err := h.validate(ctx, &rv, req.apply(&rv, false), true)
	if err != nil {
		return respondError(c, err)
	}
	if !fe.Empty() {
		return validationFailed(c, fe)
	}
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		return respondError(c, err)
	}

	if h.Events != nil {
		// The review is already stored; a broker outage only costs the event.
		pctx, pcancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err := h.Events.PublishReviewCreated(pctx, queue.NewReviewCreatedEvent(rv))
		pcancel()
		if err != nil {
			c.Logger().Warnf("review %d: publish review.created: %v", rv.ID, err)
		}
	}
	return c.JSON(http.StatusCreated, serializer.NewReview(rv))
}

// Update edits a review for moderation.  PUT replaces every field, PATCH
// only the submitted ones.  Hidden reviews can be edited and re-published.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := writeCtx(c)
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	prevPlace := rv.PlaceID
	fe := req.apply(rv, c.Request().Method == http.MethodPatch)
	fe, err = h.validate(ctx, rv, fe, rv.PlaceID != prevPlace)
	if err != nil {
		return respondError(c, err)
	}
	if !fe.Empty() {
		return validationFailed(c, fe)
	}
	if err := h.Reviews.Update(ctx, rv); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.NewModeratedReview(*rv))
}

// Delete removes a review for moderation.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := writeCtx(c)
	defer cancel()
	if err := h.Reviews.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
