package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceWhereBaseOnly(t *testing.T) {
	cond, args := placeWhere(PlaceFilter{})
	assert.Equal(t, "p.published = 1", cond)
	assert.Empty(t, args)
}

func TestPlaceWhereCategoryAllIsIgnored(t *testing.T) {
	cond, args := placeWhere(PlaceFilter{Category: "all"})
	assert.Equal(t, "p.published = 1", cond)
	assert.Empty(t, args)

	cond, args = placeWhere(PlaceFilter{Category: "nature"})
	assert.Equal(t, "p.published = 1 AND c.slug = ?", cond)
	assert.Equal(t, []any{"nature"}, args)
}

func TestPlaceWhereSearchComposition(t *testing.T) {
	cond, args := placeWhere(PlaceFilter{Category: "museums", Search: "Museum"})

	parts := strings.Split(cond, " AND ")
	if assert.Len(t, parts, 4) {
		assert.Equal(t, "p.published = 1", parts[0])
		assert.Equal(t, "c.slug = ?", parts[1])
		assert.Equal(t,
			"(LOWER(p.name) LIKE ? OR LOWER(p.name_ru) LIKE ? OR LOWER(p.description) LIKE ? OR LOWER(p.description_ru) LIKE ?)",
			parts[2])
		assert.Contains(t, parts[3], "LOWER(p.address) LIKE ?")
		assert.Contains(t, parts[3], "LOWER(p.address_ru) LIKE ?")
	}
	// slug + 4 whole-string patterns + 6 per-term patterns
	assert.Len(t, args, 11)
	assert.Equal(t, "museums", args[0])
	for _, a := range args[1:] {
		assert.Equal(t, "%museum%", a)
	}
}

func TestPlaceWhereMultiTermSearch(t *testing.T) {
	cond, args := placeWhere(PlaceFilter{Search: "stone, pillars"})
	assert.Len(t, strings.Split(cond, " AND "), 4, "base, whole string and two terms")
	assert.Len(t, args, 4+6+6)
	assert.Equal(t, "%stone, pillars%", args[0])
	assert.Equal(t, "%stone%", args[4])
	assert.Equal(t, "%pillars%", args[10])
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%100\% natural\_%`, containsPattern("100% Natural_"))
	assert.Equal(t, `%c:\\path%`, containsPattern(`C:\path`))
	assert.Equal(t, "%музей%", containsPattern("МУЗЕЙ"))
}

func TestOrderBy(t *testing.T) {
	for _, tc := range []struct {
		raw, want string
	}{
		{"", "p.rating DESC, p.name_ru ASC, p.id ASC"},
		{"name", "p.name ASC, p.id ASC"},
		{"-created_at,name_ru", "p.created_at DESC, p.name_ru ASC, p.id ASC"},
		{"bogus", "p.rating DESC, p.name_ru ASC, p.id ASC"},
		{"rating,bogus,-rating", "p.rating ASC, p.id ASC"},
		{"p.id; DROP TABLE places", "p.rating DESC, p.name_ru ASC, p.id ASC"},
	} {
		assert.Equal(t, tc.want, placeOrdering.orderBy(tc.raw), tc.raw)
	}
	assert.Equal(t, "date DESC, id ASC", reviewOrdering.orderBy(""))
	assert.Equal(t, "rating DESC, id ASC", reviewOrdering.orderBy("-rating"))
}

func TestCheckPage(t *testing.T) {
	assert.NoError(t, checkPage(Page{Number: 1, Size: 20}, 0))
	assert.NoError(t, checkPage(Page{Number: 2, Size: 20}, 21))
	assert.ErrorIs(t, checkPage(Page{Number: 2, Size: 20}, 20), ErrInvalidPage)
	assert.ErrorIs(t, checkPage(Page{Number: 3, Size: 10}, 0), ErrInvalidPage)
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, searchTerms(" a,b \x00 c "))
	assert.Empty(t, searchTerms(" , "))
}
