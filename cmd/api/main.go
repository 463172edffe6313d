package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ibovespa/catalog-api/internal/api"
	"github.com/ibovespa/catalog-api/internal/core/service"
	"github.com/ibovespa/catalog-api/internal/infrastructure/bootstrap"
	"github.com/ibovespa/catalog-api/internal/infrastructure/config"
	mongodb "github.com/ibovespa/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ibovespa/catalog-api/internal/infrastructure/db/redis"
	"github.com/ibovespa/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootLog := logger.Init(logger.Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Pretty:  os.Getenv("ENV") != "production",
		Service: "catalog-api",
	})

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("configuration is invalid, refusing to start")
	}
	log := logger.Get()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Schema bootstrap ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes failed")
	}
	if err := roleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure role indexes failed")
	}
	if err := mongodb.NewCategoryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure category indexes failed")
	}
	if err := mongodb.NewRegistrationRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure registration indexes failed")
	}

	if cfg.Development() {
		if err := bootstrap.SeedAdmin(ctx, cfg, roleRepo, userRepo, service.NewPasswordHasher(), log); err != nil {
			log.Fatal().Err(err).Msg("bootstrap seeding failed")
		}
	}

	// --- HTTP server + ingest workers ---
	e, dispatcher := api.NewRouter(cfg, db, rdb, log)
	dispatcher.Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("catalog api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
