package serializer

import (
	"time"

	"github.com/iliyamo/komi-attractions/internal/model"
)

// Review is the public representation of a review.  Place carries the id of
// the reviewed place.
type Review struct {
	ID        uint64    `json:"id"`
	Place     uint64    `json:"place"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReview(r model.Review) Review {
	return Review{
		ID:        r.ID,
		Place:     r.PlaceID,
		Author:    r.Author,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

func NewReviews(rs []model.Review) []Review {
	out := make([]Review, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewReview(r))
	}
	return out
}

// ModeratedReview adds the moderation fields hidden from the public shape.
type ModeratedReview struct {
	Review
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewModeratedReview(r model.Review) ModeratedReview {
	return ModeratedReview{Review: NewReview(r), Published: r.Published, UpdatedAt: r.UpdatedAt}
}
