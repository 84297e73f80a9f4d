package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jobportal/jobboard-api/internal/api"
	"github.com/jobportal/jobboard-api/internal/core/service"
	"github.com/jobportal/jobboard-api/internal/infrastructure/config"
	mongodb "github.com/jobportal/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobportal/jobboard-api/internal/infrastructure/db/redis"
	"github.com/jobportal/jobboard-api/internal/infrastructure/http/handlers"
	"github.com/jobportal/jobboard-api/internal/infrastructure/queue"
	"github.com/jobportal/jobboard-api/internal/infrastructure/security"
	"github.com/jobportal/jobboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Job Portal API
// @version                     1.0
// @description                 Job board where employers post jobs and students apply.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobboard-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := jobs.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("job indexes: %w", err)
	}

	checks := map[string]handlers.Pinger{
		"mongodb": handlers.PingFunc(func(ctx context.Context) error { return mongodb.Ping(ctx, client) }),
	}

	var guard service.ApplyGuard
	if cfg.RedisEnabled() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		guard = redisdb.NewApplyGuard(rdb)
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) })
	} else {
		log.Info().Msg("REDIS_ADDR not set, apply guard disabled")
	}

	// --- Security ---
	tokens, err := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	// --- Services ---
	activitySvc := service.NewActivityService(
		mongodb.NewActivityRepository(db),
		log.With().Str("component", "activity").Logger(),
	)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activitySvc, log)
	authSvc := service.NewAuthService(users, hasher, tokens, log.With().Str("component", "auth").Logger())
	jobSvc := service.NewJobService(jobs, users, guard, dispatcher, log.With().Str("component", "jobs").Logger())

	e := api.NewRouter(api.Deps{
		AuthService:    authSvc,
		JobService:     jobSvc,
		Tokens:         tokens,
		Checks:         checks,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Production:     cfg.IsProduction(),
	})

	// The dispatcher outlives the HTTP server so in-flight requests can
	// still enqueue while it shuts down.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	dispatcher.Start(dispatchCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(sctx)

		stopDispatch()
		dispatcher.Wait()
		return err
	})

	return g.Wait()
}
