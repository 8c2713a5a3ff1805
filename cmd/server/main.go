package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/zarahshmi/backend-guesswordd/internal/catalog"
	"github.com/zarahshmi/backend-guesswordd/internal/config"
	"github.com/zarahshmi/backend-guesswordd/internal/database"
	"github.com/zarahshmi/backend-guesswordd/internal/game"
	"github.com/zarahshmi/backend-guesswordd/internal/handler/health"
	"github.com/zarahshmi/backend-guesswordd/internal/migrations"
	"github.com/zarahshmi/backend-guesswordd/internal/server"
	"github.com/zarahshmi/backend-guesswordd/internal/session"
	"github.com/zarahshmi/backend-guesswordd/internal/store"
	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	st := store.New(db)
	words := catalog.New(st, wordgame.SystemRand{})
	if cfg.SeedWords {
		if err := words.Seed(ctx, logger); err != nil {
			return err
		}
	}

	checks := map[string]health.Checker{
		"sqlite": health.CheckerFunc(db.PingContext),
	}

	// --- Sessions ---
	var sessions session.Store
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		sessions = session.NewRedis(rdb, cfg.SessionTTL)
		checks["redis"] = redisChecker{rdb}
	} else {
		logger.Warn("REDIS_URL not set, sessions are kept in memory")
		sessions = session.NewMemory(cfg.SessionTTL)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Games:           game.NewService(st, words, wordgame.SystemRand{}, logger),
		Accounts:        st,
		Sessions:        sessions,
		Health:          health.NewHandler(logger, checks).Routes(),
		BcryptCost:      cfg.BcryptCost,
		SessionTTL:      cfg.SessionTTL,
		LeaderboardSize: cfg.LeaderboardSize,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// redisChecker adapts *redis.Client to health.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
