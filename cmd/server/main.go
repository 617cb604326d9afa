package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halolight/admin-backend/internal/api"
	"github.com/halolight/admin-backend/internal/core/service"
	"github.com/halolight/admin-backend/internal/core/token"
	"github.com/halolight/admin-backend/internal/infrastructure/config"
	mongodb "github.com/halolight/admin-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/halolight/admin-backend/internal/infrastructure/db/redis"
	"github.com/halolight/admin-backend/internal/infrastructure/queue"
	"github.com/halolight/admin-backend/pkg/logger"
)

// @title        HaloLight Admin API
// @version      1.0
// @description  Admin dashboard backend: authentication, sessions and user management.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Durable stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	ledger := mongodb.NewRefreshTokenRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	// --- Components ---
	issuer := token.NewIssuer(
		token.NewCodec(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL),
		token.NewCodec(cfg.Auth.RefreshSecret, cfg.Auth.RefreshTTL),
	)
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	throttle := redisdb.NewLoginThrottle(rdb, 0, 0)

	activity := queue.NewActivityDispatcher(0, activityRepo, logger.For("activity"))
	activity.Start(ctx)

	authService := service.NewAuthService(userRepo, ledger, hasher, issuer, throttle, activity, logger.For("auth"))
	userService := service.NewUserService(userRepo, hasher, activity, logger.For("users"))

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		UserService: userService,
		UserRepo:    userRepo,
		Ledger:      ledger,
		AccessCodec: issuer.Access,
		CronSecret:  cfg.CronSecret,
		Logger:      log,
		Mongo:       db,
		Redis:       rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
