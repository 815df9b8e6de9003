package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/edgarsv/passvault/internal/cache"
	"github.com/edgarsv/passvault/internal/config"
	"github.com/edgarsv/passvault/internal/database"
	"github.com/edgarsv/passvault/internal/handler"
	"github.com/edgarsv/passvault/internal/repository"
	"github.com/edgarsv/passvault/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, record list cache disabled")
	}

	users := repository.NewUserRepo(db)
	records := repository.NewRecordRepo(db)
	listCache := cache.NewRecordList(rdb, cfg.CacheTTL)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewRecordHandler(records, listCache),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
