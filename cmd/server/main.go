package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/activity-platform/moderation-api/internal/api"
	"github.com/activity-platform/moderation-api/internal/core/ports"
	"github.com/activity-platform/moderation-api/internal/core/service"
	mongodb "github.com/activity-platform/moderation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/activity-platform/moderation-api/internal/infrastructure/db/redis"
	"github.com/activity-platform/moderation-api/internal/infrastructure/notify"
	"github.com/activity-platform/moderation-api/internal/infrastructure/ratelimit"
	"github.com/activity-platform/moderation-api/internal/pkg/config"
	"github.com/activity-platform/moderation-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Activity Platform - Moderation API
// @version      1.0.0
// @description  Moderation command gateway for the activities platform.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().Str("env", cfg.Env).Msg("application starting")

	ctx := context.Background()

	// Mongo backs both the identity directory and the command executor. An
	// unreachable database degrades the service (health reports it) rather
	// than preventing startup.
	var db *mongo.Database
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error().Err(err).Msg("mongo unavailable, starting degraded")
		db = nil
	} else {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	// Redis shares admission counters across replicas; without it the
	// limiter falls back to per-process windows.
	var rdb *redis.Client
	rdb, err = redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory rate counters")
		rdb = nil
	} else {
		defer func() {
			_ = rdb.Close()
		}()
	}

	var counter ports.RateCounter = ratelimit.NewMemoryCounter()
	if rdb != nil {
		counter = redisdb.NewRateCounter(rdb)
	}

	var resolver ports.IdentityResolver
	var executor ports.CommandExecutor
	if db != nil {
		resolver = mongodb.NewIdentityRepository(db)
		executor = mongodb.NewCommandExecutor(db)
	} else {
		executor = unavailableExecutor{}
	}

	notifier := notify.NewEmailClient(cfg.EmailAPIURL, log)
	moderation := service.NewModerationService(executor, notifier, log)

	e := api.NewRouter(api.Deps{
		Service:          moderation,
		Resolver:         resolver,
		RateCounter:      counter,
		DB:               db,
		Redis:            rdb,
		ServiceName:      cfg.ServiceName,
		JWTSecret:        cfg.JWTSecret,
		RateLimitEnabled: cfg.RateLimitEnabled,
		EnableDocs:       cfg.EnableDocs,
		Log:              log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("application started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("application stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("application stopped")
}
