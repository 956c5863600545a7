package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"statline/nba"
)

const CurrentSeason = nba.CurrentSeason

var ValidSeasons = []string{
	"2025-26",
	"2024-25",
	"2023-24",
	"2022-23",
	"2021-22",
	"2020-21",
	"2019-20",
	"2018-19",
	"2017-18",
	"2016-17",
	"2015-16",
	"2014-15",
}

var SeasonTypes = []string{
	"Regular Season",
	// "Pre Season",
	"Playoffs",
	// "All Star",
}

var CacheKinds = []string{"none", "memory", "sqlite", "redis"}

// Config is built once at startup by Load and handed to every component that
// needs it.
type Config struct {
	Prod         bool
	Addr         string
	BaseURL      string
	DatabaseFile string

	Cache       string
	CacheExpiry time.Duration
	RedisURL    string

	RequestsPerSecond float64
	RequestBurst      int
	HTTPTimeout       time.Duration
	RefreshInterval   time.Duration
	WarmWorkers       int

	LogLevel string
}

// Load parses flags from args (without the program name) and fills anything
// not given on the command line from the environment.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("statline", flag.ContinueOnError)
	prod := fs.BoolP("prod", "p", false, "designates production")
	addr := fs.String("addr", "", "listen address")
	baseURL := fs.String("base-url", "", "stats API base url")
	cacheKind := fs.String("cache", "", "response cache: none, memory, sqlite or redis")
	redisURL := fs.String("redis-url", "", "redis url for --cache=redis")
	rps := fs.Float64("rate", 0, "max upstream requests per second")
	timeout := fs.Int("timeout", 0, "upstream http timeout in seconds")
	refresh := fs.Int("refresh", 0, "player index refresh period in minutes")
	warmWorkers := fs.Int("warm-workers", 0, "cache warm-up workers, 0 disables warm-up")
	logLevel := fs.String("log-level", "", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Prod:         *prod,
		Addr:         pick(*addr, "STATLINE_ADDR", ":8080"),
		BaseURL:      pick(*baseURL, "NBA_STATS_BASE_URL", "https://stats.nba.com/stats"),
		Cache:        pick(*cacheKind, "STATLINE_CACHE", "memory"),
		RedisURL:     pick(*redisURL, "REDIS_URL", "redis://localhost:6379/0"),
		RequestBurst: 3,
		LogLevel:     pick(*logLevel, "LOG_LEVEL", "info"),
	}

	if !validCache(cfg.Cache) {
		return nil, fmt.Errorf("invalid cache %q, expected one of %v", cfg.Cache, CacheKinds)
	}

	expiry, err := envInt("NBA_CACHE_EXPIRE_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	cfg.CacheExpiry = time.Duration(expiry) * time.Minute

	if fs.Changed("rate") {
		cfg.RequestsPerSecond = *rps
	} else {
		v := getEnvWithDefault("NBA_REQUESTS_PER_SECOND", "5")
		cfg.RequestsPerSecond, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NBA_REQUESTS_PER_SECOND value: %v", err)
		}
	}
	// A zero rate lets the burst through and then blocks every request forever.
	if cfg.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("invalid request rate %v, must be positive", cfg.RequestsPerSecond)
	}

	seconds := *timeout
	if seconds <= 0 {
		if seconds, err = envInt("NBA_HTTP_TIMEOUT_SECONDS", 30); err != nil {
			return nil, err
		}
	}
	cfg.HTTPTimeout = time.Duration(seconds) * time.Second

	minutes := *refresh
	if !fs.Changed("refresh") {
		if minutes, err = envInt("STATLINE_REFRESH_MINUTES", 30); err != nil {
			return nil, err
		}
	}
	if minutes < 1 {
		return nil, fmt.Errorf("invalid refresh period %d minutes, must be at least 1", minutes)
	}
	cfg.RefreshInterval = time.Duration(minutes) * time.Minute

	if fs.Changed("warm-workers") {
		cfg.WarmWorkers = *warmWorkers
	} else if cfg.WarmWorkers, err = envInt("STATLINE_WARM_WORKERS", 2); err != nil {
		return nil, err
	}
	if cfg.WarmWorkers < 0 {
		return nil, fmt.Errorf("invalid warm-workers value: %d is negative", cfg.WarmWorkers)
	}

	if cfg.Prod {
		cfg.DatabaseFile = "/sqlitedata/statline.db"
	} else {
		binPath, err := os.Executable()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseFile = filepath.Join(filepath.Dir(binPath), "statline.db")
	}
	if v := os.Getenv("STATLINE_DATABASE_FILE"); v != "" {
		cfg.DatabaseFile = v
	}

	return cfg, nil
}

func pick(flagValue, key, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return getEnvWithDefault(key, defaultValue)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %v", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %s value: %d is negative", key, v)
	}
	return v, nil
}

func validCache(kind string) bool {
	for _, k := range CacheKinds {
		if k == kind {
			return true
		}
	}
	return false
}
