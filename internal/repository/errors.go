// Package repository contains data access logic separated from HTTP handlers.
// Every public read path filters on the published flag here, so handlers
// never see hidden rows.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors returned by the repositories.  Handlers translate them
// into HTTP status codes.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrPlaceNotFound    = errors.New("place not found")
	ErrReviewNotFound   = errors.New("review not found")

	// ErrConflict signals a unique key violation (e.g. duplicate slug).
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference signals a foreign key pointing at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConstraint is returned when a CHECK constraint rejects a row.
	ErrConstraint = errors.New("check constraint violated")
	// ErrInvalidPage is returned when the requested page lies past the end
	// of a non-empty result set.
	ErrInvalidPage = errors.New("invalid page")
)

// MySQL server error numbers mapped onto the sentinels above.
const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
	mysqlCheckConstraint = 3819
)

// mapError converts driver errors into repository sentinels and passes
// everything else through unchanged.
func mapError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry:
		return ErrConflict
	case mysqlNoReferencedRow:
		return ErrInvalidReference
	case mysqlCheckConstraint:
		return ErrConstraint
	}
	return err
}
