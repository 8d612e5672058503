package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/config"
	"github.com/yudistira/open-music-api/internal/database"
	"github.com/yudistira/open-music-api/internal/handler"
	"github.com/yudistira/open-music-api/internal/middleware"
	"github.com/yudistira/open-music-api/internal/queue"
	"github.com/yudistira/open-music-api/internal/repository"
	"github.com/yudistira/open-music-api/internal/router"
	"github.com/yudistira/open-music-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Repositories share the one injected pool.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	albumRepo := repository.NewAlbumRepo(db)
	songRepo := repository.NewSongRepo(db)
	playlistRepo := repository.NewPlaylistRepo(db)
	collabRepo := repository.NewCollaborationRepo(db)
	activityRepo := repository.NewActivityRepo(db)

	access := service.NewPlaylistAccess(playlistRepo, collabRepo)
	events := service.NewActivityPublisher()

	userHandler := handler.NewUserHandler(cfg, userRepo)
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	albumHandler := handler.NewAlbumHandler(albumRepo, songRepo)
	songHandler := handler.NewSongHandler(songRepo)
	playlistHandler := handler.NewPlaylistHandler(playlistRepo, songRepo, activityRepo, access, events)
	collabHandler := handler.NewCollaborationHandler(userRepo, collabRepo, access)

	rdb := config.NewRedisClient()
	loginLimit := middleware.LoginRateLimit(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e, userHandler, authHandler, loginLimit)
	router.RegisterCatalog(e, albumHandler, songHandler)
	router.RegisterPlaylists(e, playlistHandler, collabHandler, cfg.JWTSecret)

	// Drains playlist.activity into logs/activity.log; reconnects forever.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
