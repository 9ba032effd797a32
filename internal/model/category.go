package model

import (
	"regexp"
	"time"
)

// Category groups places for browsing (nature, museums, ...).  A category
// is never hard-deleted in normal operation; setting Published to false
// hides it from every public read path.  This struct corresponds to a row
// in the `categories` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – English display name, unique.
//  NameRu    – Russian display name.
//  Slug      – unique URL-safe key used by the public API instead of the id.
//  Published – soft-visibility flag.
type Category struct {
	ID        uint64    `db:"id"`         // categories.id
	Name      string    `db:"name"`       // categories.name
	NameRu    string    `db:"name_ru"`    // categories.name_ru
	Slug      string    `db:"slug"`       // categories.slug
	Published bool      `db:"published"`  // categories.published
	CreatedAt time.Time `db:"created_at"` // categories.created_at
	UpdatedAt time.Time `db:"updated_at"` // categories.updated_at
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Validate checks the fields an administrator must supply.
func (c *Category) Validate() FieldErrors {
	fe := FieldErrors{}
	requireText(fe, "name", c.Name)
	maxLen(fe, "name", c.Name, 100)
	requireText(fe, "name_ru", c.NameRu)
	maxLen(fe, "name_ru", c.NameRu, 100)
	if !slugPattern.MatchString(c.Slug) {
		fe.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}
	maxLen(fe, "slug", c.Slug, 100)
	return fe
}
