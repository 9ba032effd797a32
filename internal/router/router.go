// Package router defines how HTTP routes are registered for the API.
package router

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/komi-attractions/internal/config"
	"github.com/iliyamo/komi-attractions/internal/handler"
	"github.com/iliyamo/komi-attractions/internal/middleware"
)

// Deps bundles what RegisterRoutes wires together.  Redis may be nil, in
// which case caching and rate limiting are disabled.
type Deps struct {
	Cfg        config.Config
	CacheCfg   config.CacheConfig
	RateCfg    config.RateLimitConfig
	Redis      *redis.Client
	Categories handler.CategoryStore
	Places     handler.PlaceStore
	Reviews    handler.ReviewStore
	Events     handler.ReviewEvents
}

// RegisterRoutes mounts the health check, the public catalog, review
// submission and the moderator endpoints.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	paging := handler.Paging{DefaultSize: d.Cfg.PageSize, MaxSize: d.Cfg.MaxPageSize}
	cache := middleware.NewRedisCache(d.CacheCfg, d.Redis)
	moderator := []echo.MiddlewareFunc{
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(middleware.RoleModerator),
	}

	// Catalog reads are cached; any admin write purges the cache.
	ch := handler.NewCategoryHandler(d.Categories)
	ph := handler.NewPlaceHandler(d.Places, d.Cfg.MediaURL, paging)
	catalog := e.Group("/api", cache)
	catalog.GET("/categories/", ch.List)
	catalog.GET("/categories/:slug/", ch.Get)
	catalog.GET("/places/", ph.List)
	catalog.GET("/places/featured/", ph.Featured)
	catalog.GET("/places/:id/", ph.Get)

	// Reviews are not cached so a new review shows up immediately.
	rh := handler.NewReviewHandler(d.Reviews, d.Places, d.Events, paging)
	reviews := e.Group("/api/reviews")
	reviews.GET("/", rh.List)
	reviews.POST("/", rh.Create, middleware.NewTokenBucket(d.RateCfg, d.Redis))
	reviews.GET("/:id/", rh.Get)
	reviews.PUT("/:id/", rh.Update, moderator...)
	reviews.PATCH("/:id/", rh.Update, moderator...)
	reviews.DELETE("/:id/", rh.Delete, moderator...)

	ah := handler.NewAuthHandler(d.Cfg)
	e.POST("/api/auth/login", ah.Login, middleware.NewTokenBucket(d.RateCfg, d.Redis))

	purge := func(ctx context.Context) error {
		return middleware.PurgeCache(ctx, d.CacheCfg, d.Redis)
	}
	adm := handler.NewAdminHandler(d.Categories, d.Places, d.Cfg.MediaURL, purge)
	admin := e.Group("/api/admin", moderator...)
	admin.POST("/categories/", adm.CreateCategory)
	admin.DELETE("/categories/:slug/", adm.DeleteCategory)
	admin.POST("/places/", adm.CreatePlace)
	admin.DELETE("/places/:id/", adm.DeletePlace)
	admin.POST("/places/:id/images/", adm.AddPlaceImage)

	if d.Cfg.MediaRoot != "" {
		e.Static(strings.TrimSuffix(d.Cfg.MediaURL, "/"), d.Cfg.MediaRoot)
	}
}

// UseDefaults installs the process-wide middleware: API paths are given a
// trailing slash, panics are recovered, every request gets an id and a log
// line, and CORS is applied.
func UseDefaults(e *echo.Echo, cfg config.Config, requestID func() string) {
	e.Pre(echomw.AddTrailingSlashWithConfig(echomw.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return !strings.HasPrefix(p, "/api/") || p == "/api/auth/login"
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: requestID}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Errorf("%s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
}
