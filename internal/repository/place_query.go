package repository

import "strings"

// AllCategories is the category value meaning "do not filter by category".
const AllCategories = "all"

// PlaceFilter holds the optional, request-driven refinements applied to the
// published places.  Category and Search are independent and AND'd.
type PlaceFilter struct {
	Category string // category slug; "" or "all" disables the filter
	Search   string // free text; "" disables the filter
}

// PlaceQuery is a PlaceFilter plus ordering and paging for list requests.
type PlaceQuery struct {
	PlaceFilter
	Ordering string // comma-separated, e.g. "-rating,name_ru"
	Page     Page
}

// placeSearchColumns are matched by the search parameter as a whole.
var placeSearchColumns = []string{"p.name", "p.name_ru", "p.description", "p.description_ru"}

// placeTermColumns are matched term-by-term by the generic search layer.
var placeTermColumns = []string{
	"p.name", "p.name_ru", "p.description", "p.description_ru", "p.address", "p.address_ru",
}

var placeOrdering = orderSpec{
	columns: map[string]string{
		"rating":     "p.rating",
		"created_at": "p.created_at",
		"name":       "p.name",
		"name_ru":    "p.name_ru",
	},
	defaults: []string{"-rating", "name_ru"},
	tiebreak: "p.id",
}

// placeWhere composes the WHERE clause for a filter in a fixed order:
// published rows only, then category, then the whole-string search over
// the four name/description fields, then every whitespace-separated term
// over those fields plus the addresses.
func placeWhere(f PlaceFilter) (string, []any) {
	where := []string{"p.published = 1"}
	var args []any

	if cat := strings.TrimSpace(f.Category); cat != "" && cat != AllCategories {
		where = append(where, "c.slug = ?")
		args = append(args, cat)
	}

	if f.Search != "" {
		cond, a := anyContains(placeSearchColumns, f.Search)
		where = append(where, cond)
		args = append(args, a...)

		for _, term := range searchTerms(f.Search) {
			cond, a := anyContains(placeTermColumns, term)
			where = append(where, cond)
			args = append(args, a...)
		}
	}
	return strings.Join(where, " AND "), args
}
