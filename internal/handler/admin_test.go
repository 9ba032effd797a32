package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/komi-attractions/internal/config"
	"github.com/iliyamo/komi-attractions/internal/model"
	"github.com/iliyamo/komi-attractions/internal/utils"
)

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	h := NewAuthHandler(config.Config{
		JWTSecret:         "jwt-secret",
		AccessTTL:         10 * time.Minute,
		ModeratorUser:     "moderator",
		ModeratorPassHash: hash,
	})

	rec := do(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"username":"moderator","password":"s3cret"}`, h.Login)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp authResp
	decode(t, rec.Body.Bytes(), &resp)
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Access.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("jwt-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "MODERATOR", claims["role"])
	assert.Equal(t, "moderator", claims["sub"])

	rec = do(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"username":"moderator","password":"nope"}`, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"username":"admin","password":"s3cret"}`, h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"username":"moderator"}`, h.Login)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	off := NewAuthHandler(config.Config{JWTSecret: "x"})
	rec = do(t, http.MethodPost, "/api/auth/login", "/api/auth/login", `{"username":"moderator","password":"s3cret"}`, off.Login)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func newAdmin() (*AdminHandler, *fakeCategories, *fakePlaces, *int) {
	cats := &fakeCategories{}
	places := &fakePlaces{details: map[uint64]*model.PlaceDetail{}}
	purges := 0
	h := NewAdminHandler(cats, places, "/media/", func(context.Context) error {
		purges++
		return nil
	})
	return h, cats, places, &purges
}

func TestAdminCategories(t *testing.T) {
	h, cats, _, purges := newAdmin()

	rec := do(t, http.MethodPost, "/api/admin/categories/", "/api/admin/categories/",
		`{"name":"Nature","name_ru":"Природа","slug":"nature"}`, h.CreateCategory)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Nature","name_ru":"Природа","slug":"nature"}`, rec.Body.String())
	assert.True(t, cats.cats[0].Published)
	assert.Equal(t, 1, *purges)

	rec = do(t, http.MethodPost, "/api/admin/categories/", "/api/admin/categories/",
		`{"name":"Other","name_ru":"Другое","slug":"nature"}`, h.CreateCategory)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, http.MethodPost, "/api/admin/categories/", "/api/admin/categories/",
		`{"name":"Bad","name_ru":"Плохо","slug":"not a slug"}`, h.CreateCategory)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body fieldErrorBody
	decode(t, rec.Body.Bytes(), &body)
	assert.Contains(t, body.Fields, "slug")
	assert.Equal(t, 1, *purges)

	rec = do(t, http.MethodDelete, "/api/admin/categories/:slug/", "/api/admin/categories/nature/", "", h.DeleteCategory)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"nature"}, cats.deleted)
	assert.Equal(t, 2, *purges)

	rec = do(t, http.MethodDelete, "/api/admin/categories/:slug/", "/api/admin/categories/nature/", "", h.DeleteCategory)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminPlaces(t *testing.T) {
	h, _, places, purges := newAdmin()

	body := `{"name":"Manpupuner","name_ru":"Маньпупунёр","description":"Rock pillars",
		"address":"Troitsko-Pechorsky district","rating":"4.9","latitude":62.2213,"longitude":59.3036,
		"amenities":["guide"],"published":false}`
	rec := do(t, http.MethodPost, "/api/admin/places/", "/api/admin/places/", body, h.CreatePlace)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var d map[string]any
	decode(t, rec.Body.Bytes(), &d)
	assert.Equal(t, "4.9", d["rating"])
	assert.Equal(t, "62.221300", d["latitude"])
	assert.Equal(t, []any{"guide"}, d["amenities"])
	assert.Equal(t, true, d["is_open"])
	assert.Nil(t, d["image_url"])
	assert.Equal(t, 1, *purges)
	id := uint64(d["id"].(float64))
	assert.False(t, places.details[id].Published)

	rec = do(t, http.MethodPost, "/api/admin/places/", "/api/admin/places/",
		`{"name":"X","name_ru":"X","description":"d","address":"a","rating":7}`, h.CreatePlace)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, http.MethodPost, "/api/admin/places/:id/images/", "/api/admin/places/100/images/",
		`{"image":"places/gallery/a.jpg","caption":"Summer","order":2}`, h.AddPlaceImage)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"url":"http://example.com/media/places/gallery/a.jpg","caption":"Summer","order":2}`, rec.Body.String())

	rec = do(t, http.MethodPost, "/api/admin/places/:id/images/", "/api/admin/places/555/images/",
		`{"image":"a.jpg"}`, h.AddPlaceImage)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, http.MethodDelete, "/api/admin/places/:id/", "/api/admin/places/100/", "", h.DeletePlace)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint64{100}, places.deleted)
	rec = do(t, http.MethodDelete, "/api/admin/places/:id/", "/api/admin/places/100/", "", h.DeletePlace)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
