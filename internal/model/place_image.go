package model

import "time"

// PlaceImage is one picture of a place's gallery.  Images are displayed by
// Order ascending, then by creation time.
type PlaceImage struct {
	ID        uint64    `db:"id"`         // place_images.id
	PlaceID   uint64    `db:"place_id"`   // place_images.place_id
	Image     string    `db:"image"`      // place_images.image
	Caption   string    `db:"caption"`    // place_images.caption
	Order     uint32    `db:"sort_order"` // place_images.sort_order
	CreatedAt time.Time `db:"created_at"` // place_images.created_at
}

// Validate checks an image before it is attached to a place.
func (pi *PlaceImage) Validate() FieldErrors {
	fe := FieldErrors{}
	requireText(fe, "image", pi.Image)
	maxLen(fe, "caption", pi.Caption, 200)
	return fe
}
