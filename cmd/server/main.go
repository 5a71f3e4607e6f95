package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/okandemir/vault-api/internal/config"
	"github.com/okandemir/vault-api/internal/database"
	"github.com/okandemir/vault-api/internal/handler"
	"github.com/okandemir/vault-api/internal/middleware"
	"github.com/okandemir/vault-api/internal/queue"
	"github.com/okandemir/vault-api/internal/repository"
	"github.com/okandemir/vault-api/internal/router"
	queue_publisher "github.com/okandemir/vault-api/internal/service"
	"github.com/okandemir/vault-api/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	blobCfg := config.LoadBlobConfig()
	blobs, err := storage.NewMinioStore(blobCfg)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	secret := []byte(cfg.JWTSecret)
	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)

	authHandler := handler.NewAuthHandler(users, secret, cfg.TokenTTL, cfg.BcryptCost, queue_publisher.PublishAudit)
	noteHandler := handler.NewNoteHandler(notes, blobs, blobCfg.MaxSize, blobCfg.FileTypes, queue_publisher.PublishAudit)

	// Audit trail consumer; reconnects on its own and never stops the
	// server.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, authHandler, noteHandler, secret, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
