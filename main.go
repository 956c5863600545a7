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

	"statline/cache"
	"statline/config"
	"statline/db"
	"statline/jobs"
	"statline/nba"
	"statline/scrape"
	"statline/server"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	responses, store, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("opening response cache")
	}

	opts := []nba.Option{
		nba.WithBaseURL(cfg.BaseURL),
		nba.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		nba.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst)),
	}
	if responses != nil {
		opts = append(opts, nba.WithCache(responses))
	}
	client := nba.NewClient(opts...)

	var players server.PlayerSearcher
	if store != nil {
		players = store
		go scrape.New(client, store, logger).Daemon(ctx, cfg.RefreshInterval)
	}
	if responses != nil && cfg.WarmWorkers > 0 && cfg.CacheExpiry > 0 {
		scheduler := jobs.NewScheduler(client, cfg.WarmWorkers, cfg.CacheExpiry, logger)
		go scheduler.Start(ctx, jobs.DefaultJobs(config.CurrentSeason))
	}

	e := server.New(client, players, logger).Echo()
	go func() {
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()
	fmt.Println("The New York Knickerbockers are named after pants")

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
	if err := closeCache(); err != nil {
		logger.WithError(err).Error("closing response cache")
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Prod {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openCache builds the configured response cache. store is only non-nil for
// the sqlite cache, which also holds the player index.
func openCache(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (nba.Cache, *db.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Cache {
	case "memory":
		m := cache.NewMemory(cfg.CacheExpiry, time.Minute)
		return m, nil, m.Close, nil
	case "sqlite":
		store, err := db.Open(cfg.DatabaseFile, cfg.CacheExpiry, logger)
		if err != nil {
			return nil, nil, noop, err
		}
		logger.WithField("file", cfg.DatabaseFile).Info("using sqlite response cache")
		return store, store, store.Close, nil
	case "redis":
		client, err := cache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, noop, err
		}
		r := cache.NewRedis(client, cfg.CacheExpiry, logger)
		return r, nil, r.Close, nil
	}
	return nil, nil, noop, nil
}
