// Package handler exposes the HTTP handlers of the catalog API.  Public
// handlers only ever see published rows; the repositories filter them.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/komi-attractions/internal/model"
	"github.com/iliyamo/komi-attractions/internal/repository"
	"github.com/iliyamo/komi-attractions/internal/serializer"
)

// writeTimeout bounds the database work of a single write request.
const writeTimeout = 5 * time.Second

// Paging holds the list pagination settings.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// pageEnvelope is the paginated list response.  Next and Previous are
// absolute URLs or null.
type pageEnvelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// parsePage reads ?page= and ?page_size=.  A page that is not a positive
// integer is reported as ErrInvalidPage.  A malformed page size falls back
// to the default and large ones are capped.
func (p Paging) parsePage(c echo.Context) (repository.Page, error) {
	page := repository.Page{Number: 1, Size: p.DefaultSize}
	if page.Size < 1 {
		page.Size = 20
	}
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, repository.ErrInvalidPage
		}
		page.Number = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && n > 0 {
		page.Size = n
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	return page, nil
}

func paginated(c echo.Context, page repository.Page, total int64, results any) error {
	env := pageEnvelope{Count: total, Results: results}
	if int64(page.Number)*int64(page.Size) < total {
		env.Next = pageURL(c, page.Number+1)
	}
	if page.Number > 1 {
		env.Previous = pageURL(c, page.Number-1)
	}
	return c.JSON(http.StatusOK, env)
}

// pageURL rebuilds the request URL pointing at another page.  The page
// parameter is dropped for the first page.
func pageURL(c echo.Context, page int) *string {
	u := *c.Request().URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := origin(c) + u.Path
	if u.RawQuery != "" {
		s += "?" + u.RawQuery
	}
	return &s
}

func origin(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

func mediaFor(c echo.Context, prefix string) serializer.Media {
	return serializer.Media{Prefix: prefix, Origin: origin(c)}
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func writeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), writeTimeout)
}

func validationFailed(c echo.Context, fe model.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fe})
}

// respondError translates repository errors into JSON responses.  Anything
// unrecognized is logged and reported as a database error.
func respondError(c echo.Context, err error) error {
	var fe model.FieldErrors
	switch {
	case errors.As(err, &fe):
		return validationFailed(c, fe)
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrPlaceNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidPage):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid page"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
	case errors.Is(err, repository.ErrInvalidReference):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced row does not exist"})
	case errors.Is(err, repository.ErrConstraint):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value out of range"})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
