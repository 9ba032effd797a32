package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/komi-attractions/internal/repository"
	"github.com/iliyamo/komi-attractions/internal/serializer"
)

// DefaultFeaturedLimit is how many places /featured/ returns without ?limit=.
const DefaultFeaturedLimit = 4

// PlaceHandler serves the public place endpoints.
type PlaceHandler struct {
	Places   PlaceStore
	MediaURL string
	Paging   Paging
}

func NewPlaceHandler(s PlaceStore, mediaURL string, p Paging) *PlaceHandler {
	return &PlaceHandler{Places: s, MediaURL: mediaURL, Paging: p}
}

func placeFilter(c echo.Context) repository.PlaceFilter {
	return repository.PlaceFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
	}
}

// List returns a page of published places.
//
// Query: category (slug or "all"), search, ordering (rating, created_at,
// name, name_ru; "-" for descending), page, page_size.
func (h *PlaceHandler) List(c echo.Context) error {
	page, err := h.Paging.parsePage(c)
	if err != nil {
		return respondError(c, err)
	}
	q := repository.PlaceQuery{
		PlaceFilter: placeFilter(c),
		Ordering:    c.QueryParam("ordering"),
		Page:        page,
	}
	places, total, err := h.Places.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return paginated(c, page, total, serializer.NewPlaceList(places, mediaFor(c, h.MediaURL)))
}

// Featured returns the top-rated places honoring the same category and
// search filters as List.
func (h *PlaceHandler) Featured(c echo.Context) error {
	limit := DefaultFeaturedLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	if h.Paging.MaxSize > 0 && limit > h.Paging.MaxSize {
		limit = h.Paging.MaxSize
	}
	places, err := h.Places.Featured(c.Request().Context(), placeFilter(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.NewPlaceList(places, mediaFor(c, h.MediaURL)))
}

// Get returns the detail document of a published place.
func (h *PlaceHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Places.GetPublished(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.NewPlaceDetail(*d, mediaFor(c, h.MediaURL)))
}
