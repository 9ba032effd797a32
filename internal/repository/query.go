package repository

import (
	"strings"
)

// Page selects one page of a list result.  Number is 1-based.
type Page struct {
	Number int
	Size   int
}

func (p Page) offset() int { return (p.Number - 1) * p.Size }

// checkPage rejects pages past the end of a non-empty result.  The first
// page is always valid, even when nothing matched.
func checkPage(p Page, total int64) error {
	if p.Number > 1 && int64(p.offset()) >= total {
		return ErrInvalidPage
	}
	return nil
}

// orderSpec describes which ?ordering= fields a resource accepts, the SQL
// column each maps to, and the ordering used when the caller supplies none.
type orderSpec struct {
	columns  map[string]string
	defaults []string
	tiebreak string
}

// orderBy turns a comma-separated ordering parameter such as "-rating,name"
// into an ORDER BY list.  Unknown fields are ignored; when nothing valid
// remains the defaults apply.  The tiebreak column keeps pagination stable.
func (o orderSpec) orderBy(raw string) string {
	terms := o.parse(raw)
	if len(terms) == 0 {
		terms = o.parse(strings.Join(o.defaults, ","))
	}
	return strings.Join(append(terms, o.tiebreak+" ASC"), ", ")
}

func (o orderSpec) parse(raw string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		dir := "ASC"
		if strings.HasPrefix(f, "-") {
			dir = "DESC"
			f = f[1:]
		}
		col, ok := o.columns[f]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, col+" "+dir)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s anywhere in a lower-cased
// column.  LIKE metacharacters in s are escaped so they match literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// anyContains builds "(LOWER(a) LIKE ? OR LOWER(b) LIKE ? ...)" with one
// argument per column.
func anyContains(columns []string, term string) (string, []any) {
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	pat := containsPattern(term)
	for _, c := range columns {
		parts = append(parts, "LOWER("+c+") LIKE ?")
		args = append(args, pat)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// searchTerms splits a search parameter into terms on whitespace and commas.
func searchTerms(s string) []string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, ",", " ")
	return strings.Fields(s)
}
