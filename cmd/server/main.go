package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/cache"
	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/database"
	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/router"
	"github.com/iliyamo/user-account-service/internal/service"
	"github.com/iliyamo/user-account-service/internal/token"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Optional collaborators: the service runs without Redis (no lookup
	// cache) and publishes lifecycle events best-effort.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, lookup cache disabled")
	}
	lookupCache := cache.NewUserCache(rdb, config.LookupCacheTTL())

	users := repository.NewUserRepo(db)
	sessions := repository.NewRefreshSessionRepo(db)
	methods := repository.NewPaymentMethodRepo(db)

	codec := token.NewCodec(cfg.JWTSecret)
	issuer := auth.NewIssuer(codec, users, sessions)
	userSvc := service.NewUserService(users, cfg.BcryptCost, queue.NewRabbitPublisher())
	paymentSvc := service.NewPaymentMethodService(users, methods)

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(issuer, cfg.CookieSecure),
		Users:    handler.NewUserHandler(userSvc, lookupCache),
		Internal: handler.NewInternalUserHandler(userSvc, paymentSvc, lookupCache),
		Payments: handler.NewPaymentMethodHandler(paymentSvc),
		Codec:    codec,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
