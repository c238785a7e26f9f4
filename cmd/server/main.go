package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/rbtech24/rankitpro/internal/api"
	"github.com/rbtech24/rankitpro/internal/api/handler"
	"github.com/rbtech24/rankitpro/internal/core/ports"
	"github.com/rbtech24/rankitpro/internal/core/service"
	"github.com/rbtech24/rankitpro/internal/infrastructure/config"
	mongostore "github.com/rbtech24/rankitpro/internal/infrastructure/db/mongo"
	redisstore "github.com/rbtech24/rankitpro/internal/infrastructure/db/redis"
	"github.com/rbtech24/rankitpro/internal/infrastructure/memstore"
	"github.com/rbtech24/rankitpro/internal/infrastructure/notify"
	"github.com/rbtech24/rankitpro/internal/infrastructure/queue"
	"github.com/rbtech24/rankitpro/internal/infrastructure/wordpress"
	"github.com/rbtech24/rankitpro/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	directory, mongoDB, cleanupMongo := buildDirectory(ctx, cfg, log)
	defer cleanupMongo()

	sessions, limiter, deduper, redisClient, cleanupRedis := buildRedisBacked(ctx, cfg, log)
	defer cleanupRedis()

	var publisher ports.BlogPublisher = wordpress.Disabled{}
	if cfg.WordPress.BaseURL != "" {
		publisher = wordpress.NewClient(wordpress.Config{
			BaseURL:     cfg.WordPress.BaseURL,
			Username:    cfg.WordPress.Username,
			AppPassword: cfg.WordPress.AppPassword,
		})
	}

	authService := service.NewAuthService(directory, directory, sessions,
		cfg.JWTSecret, cfg.Session.TTL, 0, logger.Component("auth"))
	userService := service.NewUserService(directory, directory, logger.Component("users"))
	companyService := service.NewCompanyService(directory, logger.Component("companies"))
	technicianService := service.NewTechnicianService(directory, directory, directory, logger.Component("technicians"))
	checkInService := service.NewCheckInService(directory, directory, directory, directory,
		deduper, logger.Component("check_ins"))
	reviewService := service.NewReviewService(directory, directory,
		notify.NewLogNotifier(logger.Component("notify")), logger.Component("reviews"))
	blogService := service.NewBlogService(directory, publisher, logger.Component("blog"))

	dispatcher := queue.NewDispatcher(cfg.Review.Workers, cfg.Review.ScanEvery,
		reviewService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Sessions:          sessions,
		Users:             directory,
		Limiter:           limiter,
		AuthService:       authService,
		UserService:       userService,
		CompanyService:    companyService,
		TechnicianService: technicianService,
		CheckInService:    checkInService,
		ReviewService:     reviewService,
		BlogService:       blogService,
		JWTSecret:         cfg.JWTSecret,
		Cookie: handler.SessionCookie{
			Secure:   cfg.Session.CookieSecure,
			SameSite: cfg.Session.CookieSameSite,
		},
		Mongo:             mongoDB,
		Redis:             redisClient,
		Log:               log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// buildDirectory selects the mongo-backed directory when MONGO_URI is set,
// otherwise the in-memory store seeded with development fixtures.
func buildDirectory(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Directory, *mongodriver.Database, func()) {
	if cfg.Mongo.URI == "" {
		store := memstore.New()
		if cfg.IsDevelopment() {
			if err := memstore.Seed(ctx, store, memstore.DefaultSeed()); err != nil {
				log.Fatal().Err(err).Msg("seed failed")
			}
			log.Info().Msg("in-memory directory seeded with development accounts")
		}
		return store, nil, func() {}
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}

	directory := mongostore.NewDirectory(db)
	if err := directory.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return directory, db, cleanup
}

// buildRedisBacked selects redis-backed sessions, rate limiting, and sync
// dedup when REDIS_ADDR is set, otherwise the in-process equivalents.
func buildRedisBacked(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, ports.RateLimiter, ports.SyncDeduper, *redis.Client, func()) {
	if cfg.Redis.Addr == "" {
		return memstore.NewSessionStore(),
			memstore.NewFixedWindowLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
			memstore.NewSyncDeduper(),
			nil,
			func() {}
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	return redisstore.NewSessionStore(client),
		redisstore.NewRateLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		redisstore.NewSyncDeduper(client),
		client,
		func() { _ = client.Close() }
}
