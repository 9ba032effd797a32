package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReview() Review {
	return Review{
		PlaceID: 1,
		Author:  "Ivan",
		Rating:  4,
		Comment: "Great views",
		Date:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestReviewRatingBounds(t *testing.T) {
	for _, tc := range []struct {
		rating int
		ok     bool
	}{
		{0, false}, {1, true}, {3, true}, {5, true}, {6, false}, {-1, false},
	} {
		r := validReview()
		r.Rating = tc.rating
		fe := r.Validate()
		if tc.ok {
			assert.True(t, fe.Empty(), "rating %d should be accepted: %v", tc.rating, fe)
		} else {
			assert.Equal(t, []string{"Rating must be between 1 and 5"}, fe["rating"], "rating %d", tc.rating)
		}
	}
}

func TestReviewRequiredFields(t *testing.T) {
	fe := (&Review{Rating: 3}).Validate()
	for _, f := range []string{"place", "author", "comment", "date"} {
		assert.Contains(t, fe, f)
	}
	assert.NotContains(t, fe, "rating")
}

func TestReviewAuthorLength(t *testing.T) {
	r := validReview()
	r.Author = strings.Repeat("я", 101)
	assert.Contains(t, r.Validate(), "author")
	r.Author = strings.Repeat("я", 100)
	assert.True(t, r.Validate().Empty())
}

func TestPlaceRatingRange(t *testing.T) {
	p := Place{Name: "Manpupuner", NameRu: "Маньпупунёр", Description: "Rocks", Address: "Komi"}
	for _, tc := range []struct {
		rating string
		ok     bool
	}{
		{"0", true}, {"5", true}, {"4.9", true}, {"5.1", false}, {"-0.1", false}, {"4.55", false},
	} {
		p.Rating = decimal.RequireFromString(tc.rating)
		_, bad := p.Validate()["rating"]
		assert.Equal(t, !tc.ok, bad, "rating %s", tc.rating)
	}
}

func TestPlaceCoordinates(t *testing.T) {
	p := Place{Name: "a", NameRu: "b", Description: "c", Address: "d", Rating: decimal.NewFromInt(3)}
	p.Latitude = decimal.NewNullDecimal(decimal.RequireFromString("62.254200"))
	p.Longitude = decimal.NewNullDecimal(decimal.RequireFromString("59.4542"))
	assert.True(t, p.Validate().Empty())

	p.Latitude = decimal.NewNullDecimal(decimal.RequireFromString("91"))
	p.Longitude = decimal.NewNullDecimal(decimal.RequireFromString("1.1234567"))
	fe := p.Validate()
	assert.Contains(t, fe, "latitude")
	assert.Contains(t, fe, "longitude")
}

func TestCategorySlug(t *testing.T) {
	c := Category{Name: "Nature", NameRu: "Природа", Slug: "cultural-sites"}
	assert.True(t, c.Validate().Empty())
	c.Slug = "bad slug!"
	assert.Contains(t, c.Validate(), "slug")
}

func TestStringListScanAndValue(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["hiking","photography"]`)))
	assert.Equal(t, StringList{"hiking", "photography"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, l.Scan(42))
}

func TestFieldErrorsError(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("rating", "bad")
	fe.Add("author", "missing")
	assert.Equal(t, "validation failed: author: missing, rating: bad", fe.Error())
}
