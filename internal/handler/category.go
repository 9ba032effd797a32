package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/komi-attractions/internal/serializer"
)

// CategoryHandler serves the public category endpoints.
type CategoryHandler struct {
	Categories CategoryStore
}

func NewCategoryHandler(s CategoryStore) *CategoryHandler {
	return &CategoryHandler{Categories: s}
}

// List returns every published category ordered by name.  The list is
// small and not paginated.
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.Categories.ListPublished(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.NewCategories(cats))
}

// Get returns one published category by slug.
func (h *CategoryHandler) Get(c echo.Context) error {
	cat, err := h.Categories.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, serializer.NewCategory(*cat))
}
