package serializer

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/komi-attractions/internal/model"
)

// Category is the public representation of a category.
type Category struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	NameRu string `json:"name_ru"`
	Slug   string `json:"slug"`
}

// PlaceImage is one gallery entry of a place detail.
type PlaceImage struct {
	ID      uint64  `json:"id"`
	URL     *string `json:"url"`
	Caption string  `json:"caption"`
	Order   uint32  `json:"order"`
}

// PlaceListItem is the compact shape used by list and featured responses.
// The category slug and Russian name are denormalized for list rendering.
type PlaceListItem struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	NameRu         string  `json:"name_ru"`
	Description    string  `json:"description"`
	DescriptionRu  string  `json:"description_ru"`
	CategorySlug   *string `json:"category_slug"`
	CategoryNameRu *string `json:"category_name_ru"`
	Rating         string  `json:"rating"`
	ImageURL       *string `json:"image_url"`
	Address        string  `json:"address"`
	AddressRu      string  `json:"address_ru"`
	Latitude       *string `json:"latitude"`
	Longitude      *string `json:"longitude"`
}

// PlaceDetail is the full shape returned for a single place.
type PlaceDetail struct {
	ID             uint64       `json:"id"`
	Name           string       `json:"name"`
	NameRu         string       `json:"name_ru"`
	Description    string       `json:"description"`
	DescriptionRu  string       `json:"description_ru"`
	Category       *Category    `json:"category"`
	Rating         string       `json:"rating"`
	ImageURL       *string      `json:"image_url"`
	Images         []PlaceImage `json:"images"`
	Address        string       `json:"address"`
	AddressRu      string       `json:"address_ru"`
	OpeningHours   string       `json:"opening_hours"`
	OpeningHoursRu string       `json:"opening_hours_ru"`
	EntryFee       string       `json:"entry_fee"`
	EntryFeeRu     string       `json:"entry_fee_ru"`
	Latitude       *string      `json:"latitude"`
	Longitude      *string      `json:"longitude"`
	Amenities      []string     `json:"amenities"`
	IsOpen         bool         `json:"is_open"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Decimal places kept when rendering DECIMAL(3,1) ratings and DECIMAL(9,6)
// coordinates.
const (
	ratingPlaces     = 1
	coordinatePlaces = 6
)

func NewCategory(c model.Category) Category {
	return Category{ID: c.ID, Name: c.Name, NameRu: c.NameRu, Slug: c.Slug}
}

func NewCategories(cs []model.Category) []Category {
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCategory(c))
	}
	return out
}

func NewPlaceListItem(p model.Place, m Media) PlaceListItem {
	return PlaceListItem{
		ID:             p.ID,
		Name:           p.Name,
		NameRu:         p.NameRu,
		Description:    p.Description,
		DescriptionRu:  p.DescriptionRu,
		CategorySlug:   nullString(p.CategorySlug),
		CategoryNameRu: nullString(p.CategoryNameRu),
		Rating:         p.Rating.StringFixed(ratingPlaces),
		ImageURL:       m.URL(p.Image.String),
		Address:        p.Address,
		AddressRu:      p.AddressRu,
		Latitude:       coordinate(p.Latitude),
		Longitude:      coordinate(p.Longitude),
	}
}

func NewPlaceList(ps []model.Place, m Media) []PlaceListItem {
	out := make([]PlaceListItem, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPlaceListItem(p, m))
	}
	return out
}

func NewPlaceDetail(d model.PlaceDetail, m Media) PlaceDetail {
	out := PlaceDetail{
		ID:             d.ID,
		Name:           d.Name,
		NameRu:         d.NameRu,
		Description:    d.Description,
		DescriptionRu:  d.DescriptionRu,
		Rating:         d.Rating.StringFixed(ratingPlaces),
		ImageURL:       m.URL(d.Image.String),
		Images:         make([]PlaceImage, 0, len(d.Images)),
		Address:        d.Address,
		AddressRu:      d.AddressRu,
		OpeningHours:   d.OpeningHours,
		OpeningHoursRu: d.OpeningHoursRu,
		EntryFee:       d.EntryFee,
		EntryFeeRu:     d.EntryFeeRu,
		Latitude:       coordinate(d.Latitude),
		Longitude:      coordinate(d.Longitude),
		Amenities:      []string(d.Amenities),
		IsOpen:         d.IsOpen,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	if d.Category != nil {
		c := NewCategory(*d.Category)
		out.Category = &c
	}
	for _, img := range d.Images {
		out.Images = append(out.Images, NewPlaceImage(img, m))
	}
	return out
}

func NewPlaceImage(img model.PlaceImage, m Media) PlaceImage {
	return PlaceImage{ID: img.ID, URL: m.URL(img.Image), Caption: img.Caption, Order: img.Order}
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func coordinate(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.StringFixed(coordinatePlaces)
	return &v
}
