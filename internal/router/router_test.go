package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/komi-attractions/internal/config"
)

func newServer() *echo.Echo {
	cfg := config.Config{
		JWTSecret:   "secret",
		MediaURL:    "/media/",
		PageSize:    20,
		MaxPageSize: 100,
		CORSOrigins: []string{"*"},
	}
	e := echo.New()
	UseDefaults(e, cfg, uuid.NewString)
	RegisterRoutes(e, Deps{Cfg: cfg})
	return e
}

func TestRoutes(t *testing.T) {
	e := newServer()
	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /api/categories/",
		"GET /api/categories/:slug/",
		"GET /api/places/",
		"GET /api/places/featured/",
		"GET /api/places/:id/",
		"GET /api/reviews/",
		"POST /api/reviews/",
		"GET /api/reviews/:id/",
		"PUT /api/reviews/:id/",
		"PATCH /api/reviews/:id/",
		"DELETE /api/reviews/:id/",
		"POST /api/auth/login",
		"POST /api/admin/categories/",
		"DELETE /api/admin/categories/:slug/",
		"POST /api/admin/places/",
		"DELETE /api/admin/places/:id/",
		"POST /api/admin/places/:id/images/",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestDefaultsAndProtection(t *testing.T) {
	e := newServer()
	call := func(method, target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec
	}

	rec := call(http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	// Missing trailing slash is tolerated on API paths.
	rec = call(http.MethodGet, "/api/reviews/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, call(http.MethodDelete, "/api/reviews/1/").Code)
	assert.Equal(t, http.StatusUnauthorized, call(http.MethodPatch, "/api/reviews/1/").Code)
	assert.Equal(t, http.StatusUnauthorized, call(http.MethodPost, "/api/admin/places/").Code)
	assert.Equal(t, http.StatusServiceUnavailable, call(http.MethodPost, "/api/auth/login").Code)
}
