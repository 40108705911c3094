package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cinelog/movie-catalog/internal/api"
	"github.com/cinelog/movie-catalog/internal/core/ports"
	"github.com/cinelog/movie-catalog/internal/core/service"
	"github.com/cinelog/movie-catalog/internal/infrastructure/config"
	"github.com/cinelog/movie-catalog/internal/infrastructure/db/mongo"
	"github.com/cinelog/movie-catalog/internal/infrastructure/db/redis"
	"github.com/cinelog/movie-catalog/internal/infrastructure/google"
	"github.com/cinelog/movie-catalog/internal/infrastructure/http/handlers"
	"github.com/cinelog/movie-catalog/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movie-catalog",
	})
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	checks := map[string]handlers.Check{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	// --- Redis (optional) ---
	var replay ports.ReplayGuard
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, google replay guard disabled")
		} else {
			defer rdb.Close()
			replay = redis.NewReplayGuard(rdb)
			checks["redis"] = redisCheck(rdb)
		}
	}

	if cfg.Google.ClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set, google login will fail")
	}

	// --- Services ---
	users := mongo.NewUserRepository(db)
	movies := mongo.NewMovieRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	verifier, err := google.NewVerifier(ctx, google.Config{ClientID: cfg.Google.ClientID})
	if err != nil {
		log.Fatal().Err(err).Msg("google verifier")
	}

	e := api.NewRouter(api.Deps{
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins,
		HealthChecks: checks,
		Tokens:       tokens,
		Auth:         service.NewAuthService(users, tokens, verifier, replay, log.With().Str("component", "auth").Logger()),
		Accounts:     service.NewAccountService(users, log.With().Str("component", "account").Logger()),
		Movies:       service.NewMovieService(movies, log.With().Str("component", "movies").Logger()),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdown(server, cfg.ShutdownTimeout, log)
}

func redisCheck(rdb *goredis.Client) handlers.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

func shutdown(server *http.Server, timeout time.Duration, log zerolog.Logger) {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
