package model

import (
	"sort"
	"strconv"
	"strings"
)

// FieldErrors maps a JSON field name to the messages describing why the
// submitted value was rejected.  An empty FieldErrors means the value is valid.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Merge copies every message from other into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, msgs := range other {
		for _, m := range msgs {
			fe.Add(k, m)
		}
	}
}

// Empty reports whether no field failed validation.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Error renders the messages in a stable order so FieldErrors can be
// returned as an error from the repository layer.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Messages shared with the HTTP layer so clients see the same wording for
// missing and malformed values everywhere.
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
)

func requireText(fe FieldErrors, field, v string) {
	if strings.TrimSpace(v) == "" {
		fe.Add(field, MsgBlank)
	}
}

func maxLen(fe FieldErrors, field, v string, n int) {
	if len([]rune(v)) > n {
		fe.Add(field, "Ensure this field has no more than "+strconv.Itoa(n)+" characters.")
	}
}
