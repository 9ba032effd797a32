package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"github.com/iliyamo/komi-attractions/internal/config"
	"github.com/iliyamo/komi-attractions/internal/database"
	"github.com/iliyamo/komi-attractions/internal/repository"
	"github.com/iliyamo/komi-attractions/internal/router"
	"github.com/iliyamo/komi-attractions/internal/service"
)

func logLevel(s string) glog.Lvl {
	switch s {
	case "debug":
		return glog.DEBUG
	case "warn":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	}
	return glog.INFO
}

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if cfg.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	router.UseDefaults(e, cfg, uuid.NewString)
	router.RegisterRoutes(e, router.Deps{
		Cfg:        cfg,
		CacheCfg:   config.LoadCacheConfig(),
		RateCfg:    config.LoadRateLimitConfig(),
		Redis:      rdb,
		Categories: repository.NewCategoryRepo(db),
		Places:     repository.NewPlaceRepo(db),
		Reviews:    repository.NewReviewRepo(db),
		Events:     service.NewReviewPublisher(cfg.RabbitURL),
	})
	if !cfg.ModerationEnabled() {
		log.Println("MODERATOR_USERNAME/MODERATOR_PASSWORD_HASH not set; moderation endpoints are disabled")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
