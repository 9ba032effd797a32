package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

var (
	minPlaceRating = decimal.Zero
	maxPlaceRating = decimal.NewFromInt(5)
	maxLatitude    = decimal.NewFromInt(90)
	maxLongitude   = decimal.NewFromInt(180)
)

// Place is a tourist attraction.  Text fields come in English/Russian
// pairs; opening hours and entry fee are display strings, not typed values.
// The category reference is nullable: removing the category clears it
// instead of removing the place.  Gallery images and reviews belong to the
// place and are removed together with it.
type Place struct {
	ID             uint64              `db:"id"`
	Name           string              `db:"name"`
	NameRu         string              `db:"name_ru"`
	Description    string              `db:"description"`
	DescriptionRu  string              `db:"description_ru"`
	CategoryID     sql.NullInt64       `db:"category_id"`
	Rating         decimal.Decimal     `db:"rating"` // DECIMAL(3,1), 0.0..5.0
	Image          sql.NullString      `db:"image"`  // blob store path, e.g. places/images/x.jpg
	Address        string              `db:"address"`
	AddressRu      string              `db:"address_ru"`
	OpeningHours   string              `db:"opening_hours"`
	OpeningHoursRu string              `db:"opening_hours_ru"`
	EntryFee       string              `db:"entry_fee"`
	EntryFeeRu     string              `db:"entry_fee_ru"`
	Latitude       decimal.NullDecimal `db:"latitude"`  // DECIMAL(9,6)
	Longitude      decimal.NullDecimal `db:"longitude"` // DECIMAL(9,6)
	Amenities      StringList          `db:"amenities"`
	IsOpen         bool                `db:"is_open"`
	Published      bool                `db:"published"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`

	// Denormalized from the joined category for list rendering.  Both are
	// NULL when the place has no (published) category.
	CategorySlug   sql.NullString `db:"category_slug"`
	CategoryNameRu sql.NullString `db:"category_name_ru"`
}

// PlaceDetail is a place together with its related rows, loaded for the
// single-place endpoint.
type PlaceDetail struct {
	Place
	Category *Category
	Images   []PlaceImage
}

// Validate enforces the rating range and coordinate precision before a
// write reaches the database.
func (p *Place) Validate() FieldErrors {
	fe := FieldErrors{}
	requireText(fe, "name", p.Name)
	maxLen(fe, "name", p.Name, 200)
	requireText(fe, "name_ru", p.NameRu)
	maxLen(fe, "name_ru", p.NameRu, 200)
	requireText(fe, "description", p.Description)
	requireText(fe, "address", p.Address)
	maxLen(fe, "address", p.Address, 300)
	maxLen(fe, "address_ru", p.AddressRu, 300)
	maxLen(fe, "opening_hours", p.OpeningHours, 200)
	maxLen(fe, "opening_hours_ru", p.OpeningHoursRu, 200)
	maxLen(fe, "entry_fee", p.EntryFee, 100)
	maxLen(fe, "entry_fee_ru", p.EntryFeeRu, 100)

	if p.Rating.LessThan(minPlaceRating) || p.Rating.GreaterThan(maxPlaceRating) {
		fe.Add("rating", "Rating must be between 0 and 5")
	} else if !p.Rating.Equal(p.Rating.Round(1)) {
		fe.Add("rating", "Ensure that there are no more than 1 decimal places.")
	}
	checkCoordinate(fe, "latitude", p.Latitude, maxLatitude)
	checkCoordinate(fe, "longitude", p.Longitude, maxLongitude)
	return fe
}

func checkCoordinate(fe FieldErrors, field string, v decimal.NullDecimal, limit decimal.Decimal) {
	if !v.Valid {
		return
	}
	if v.Decimal.Abs().GreaterThan(limit) {
		fe.Add(field, "Ensure this value is between -"+limit.String()+" and "+limit.String()+".")
		return
	}
	if !v.Decimal.Equal(v.Decimal.Round(6)) {
		fe.Add(field, "Ensure that there are no more than 6 decimal places.")
	}
}
