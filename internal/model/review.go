package model

import "time"

// Review is a visitor's rating of a place.  Author is a free-text display
// name, not an account reference.  Date is when the visit happened and is
// distinct from CreatedAt, the time the row was written.
type Review struct {
	ID        uint64    `db:"id"`
	PlaceID   uint64    `db:"place_id"`
	Author    string    `db:"author"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	Date      time.Time `db:"date"`
	Published bool      `db:"published"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Review rating bounds, inclusive.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// ValidRating reports whether r is an accepted review rating.
func ValidRating(r int) bool {
	return r >= MinReviewRating && r <= MaxReviewRating
}

// Validate re-checks the rating range explicitly instead of relying on the
// CHECK constraint so that callers get a field-level message.
func (r *Review) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.PlaceID == 0 {
		fe.Add("place", MsgRequired)
	}
	requireText(fe, "author", r.Author)
	maxLen(fe, "author", r.Author, 100)
	if !ValidRating(r.Rating) {
		fe.Add("rating", "Rating must be between 1 and 5")
	}
	requireText(fe, "comment", r.Comment)
	if r.Date.IsZero() {
		fe.Add("date", MsgRequired)
	}
	return fe
}
