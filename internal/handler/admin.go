package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/komi-attractions/internal/model"
	"github.com/iliyamo/komi-attractions/internal/serializer"
)

// AdminHandler is the moderator-only catalog editor.  Purge, when set, is
// called after every successful write so cached catalog responses are
// dropped.
type AdminHandler struct {
	Categories CategoryStore
	Places     PlaceStore
	MediaURL   string
	Purge      func(ctx context.Context) error
}

func NewAdminHandler(cs CategoryStore, ps PlaceStore, mediaURL string, purge func(ctx context.Context) error) *AdminHandler {
	return &AdminHandler{Categories: cs, Places: ps, MediaURL: mediaURL, Purge: purge}
}

func (h *AdminHandler) purge(c echo.Context) {
	if h.Purge == nil {
		return
	}
	if err := h.Purge(context.WithoutCancel(c.Request().Context())); err != nil {
		c.Logger().Warnf("cache purge failed: %v", err)
	}
}

type categoryReq struct {
	Name      string `json:"name"`
	NameRu    string `json:"name_ru"`
	Slug      string `json:"slug"`
	Published *bool  `json:"published"`
}

// CreateCategory adds a category.  Categories are published unless the
// body says otherwise.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cat := model.Category{
		Name:      strings.TrimSpace(req.Name),
		NameRu:    strings.TrimSpace(req.NameRu),
		Slug:      strings.TrimSpace(req.Slug),
		Published: req.Published == nil || *req.Published,
	}
	ctx, cancel := writeCtx(c)
	defer cancel()
	if err := h.Categories.Create(ctx, &cat); err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.JSON(http.StatusCreated, serializer.NewCategory(cat))
}

// DeleteCategory removes a category; its places stay, uncategorized.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	ctx, cancel := writeCtx(c)
	defer cancel()
	if err := h.Categories.DeleteBySlug(ctx, c.Param("slug")); err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.NoContent(http.StatusNoContent)
}

type placeReq struct {
	Name           string           `json:"name"`
	NameRu         string           `json:"name_ru"`
	Description    string           `json:"description"`
	DescriptionRu  string           `json:"description_ru"`
	CategoryID     *int64           `json:"category_id"`
	Rating         decimal.Decimal  `json:"rating"`
	Image          string           `json:"image"`
	Address        string           `json:"address"`
	AddressRu      string           `json:"address_ru"`
	OpeningHours   string           `json:"opening_hours"`
	OpeningHoursRu string           `json:"opening_hours_ru"`
	EntryFee       string           `json:"entry_fee"`
	EntryFeeRu     string           `json:"entry_fee_ru"`
	Latitude       *decimal.Decimal `json:"latitude"`
	Longitude      *decimal.Decimal `json:"longitude"`
	Amenities      []string         `json:"amenities"`
	IsOpen         *bool            `json:"is_open"`
	Published      *bool            `json:"published"`
}

func (req placeReq) toModel() model.Place {
	p := model.Place{
		Name:           strings.TrimSpace(req.Name),
		NameRu:         strings.TrimSpace(req.NameRu),
		Description:    req.Description,
		DescriptionRu:  req.DescriptionRu,
		Rating:         req.Rating,
		Image:          sql.NullString{String: req.Image, Valid: req.Image != ""},
		Address:        req.Address,
		AddressRu:      req.AddressRu,
		OpeningHours:   req.OpeningHours,
		OpeningHoursRu: req.OpeningHoursRu,
		EntryFee:       req.EntryFee,
		EntryFeeRu:     req.EntryFeeRu,
		Amenities:      model.StringList(req.Amenities),
		IsOpen:         req.IsOpen == nil || *req.IsOpen,
		Published:      req.Published == nil || *req.Published,
	}
	if req.CategoryID != nil {
		p.CategoryID = sql.NullInt64{Int64: *req.CategoryID, Valid: true}
	}
	if req.Latitude != nil {
		p.Latitude = decimal.NullDecimal{Decimal: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		p.Longitude = decimal.NullDecimal{Decimal: *req.Longitude, Valid: true}
	}
	return p
}

// CreatePlace adds a place and answers with its detail document.
func (h *AdminHandler) CreatePlace(c echo.Context) error {
	var req placeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p := req.toModel()
	ctx, cancel := writeCtx(c)
	defer cancel()
	if err := h.Places.Create(ctx, &p); err != nil {
		return respondError(c, err)
	}
	h.purge(c)

	d := &model.PlaceDetail{Place: p}
	if p.Published {
		// Re-read to embed the category.
		if full, err := h.Places.GetPublished(ctx, p.ID); err == nil {
			d = full
		}
	}
	return c.JSON(http.StatusCreated, serializer.NewPlaceDetail(*d, mediaFor(c, h.MediaURL)))
}

// DeletePlace removes a place together with its images and reviews.
func (h *AdminHandler) DeletePlace(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := writeCtx(c)
	defer cancel()
	if err := h.Places.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.NoContent(http.StatusNoContent)
}

type imageReq struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Order   uint32 `json:"order"`
}

// AddPlaceImage appends an image to a place's gallery.  The image is a
// path in the blob store or an absolute URL.
func (h *AdminHandler) AddPlaceImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req imageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	img := model.PlaceImage{
		PlaceID: id,
		Image:   strings.TrimSpace(req.Image),
		Caption: strings.TrimSpace(req.Caption),
		Order:   req.Order,
	}
	ctx, cancel := writeCtx(c)
	defer cancel()
	if err := h.Places.AddImage(ctx, &img); err != nil {
		return respondError(c, err)
	}
	h.purge(c)
	return c.JSON(http.StatusCreated, serializer.NewPlaceImage(img, mediaFor(c, h.MediaURL)))
}
