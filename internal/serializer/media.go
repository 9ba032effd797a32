// Package serializer maps entities to the JSON documents returned by the
// API.  Places have two statically defined shapes: a compact list item and
// a detail document with related rows embedded.
package serializer

import (
	"strings"
)

// Media resolves stored image paths into URLs.  Prefix is the public path
// images are served under (e.g. "/media/").  Origin is "scheme://host" of
// the current request; when it is empty URLs stay relative.
type Media struct {
	Prefix string
	Origin string
}

// URL returns the public URL for a stored image path, or nil when no image
// is set.  Paths that already are absolute URLs are returned unchanged.
func (m Media) URL(path string) *string {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return &path
	}
	prefix := m.Prefix
	if prefix == "" {
		prefix = "/"
	}
	u := strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
	if m.Origin != "" && strings.HasPrefix(u, "/") {
		u = strings.TrimSuffix(m.Origin, "/") + u
	}
	return &u
}
