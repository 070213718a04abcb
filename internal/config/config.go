package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers supported by the state service.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Persistence modes.
const (
	PersistAsync = "async"
	PersistSync  = "sync"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	StorageDriver       string
	DatabaseURI         string
	SQLitePath          string
	RedisURL            string
	RedisPrefix         string
	PersistMode         string
	FlushInterval       time.Duration
	ProviderSearchDelay time.Duration
	ProviderAPIAddress  string
	ShutdownTimeout     time.Duration
	LogLevel            string
}

const (
	defaultRunAddress          = ":8080"
	defaultStorageDriver       = DriverSQLite
	defaultSQLitePath          = "data/boklen.db"
	defaultRedisPrefix         = "boklen:"
	defaultPersistMode         = PersistAsync
	defaultFlushInterval       = 250 * time.Millisecond
	defaultProviderSearchDelay = 3 * time.Second
	defaultShutdownTimeout     = 10 * time.Second
	defaultLogLevel            = "info"
)

// Load reads an optional .env file, then parses configuration from
// environment variables and the supplied command line arguments.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(args, os.LookupEnv)
}

// LoadFromEnv loads configuration without command line arguments.
func LoadFromEnv() (*Config, error) {
	return Load(nil)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		StorageDriver:       getString(lookup, "STORAGE_DRIVER", defaultStorageDriver),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		SQLitePath:          getString(lookup, "SQLITE_PATH", defaultSQLitePath),
		RedisURL:            getString(lookup, "REDIS_URL", ""),
		RedisPrefix:         getString(lookup, "REDIS_PREFIX", defaultRedisPrefix),
		PersistMode:         getString(lookup, "PERSIST_MODE", defaultPersistMode),
		FlushInterval:       getDuration(lookup, "FLUSH_INTERVAL", defaultFlushInterval),
		ProviderSearchDelay: getDuration(lookup, "PROVIDER_SEARCH_DELAY", defaultProviderSearchDelay),
		ProviderAPIAddress:  getString(lookup, "PROVIDER_API_ADDRESS", ""),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("boklen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		flushIntervalStr   = cfg.FlushInterval.String()
		searchDelayStr     = cfg.ProviderSearchDelay.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "State storage driver: sqlite, postgres or redis")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis connection URL")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "Redis key prefix")
	fs.StringVar(&cfg.PersistMode, "persist", cfg.PersistMode, "Persistence mode: async or sync")
	fs.StringVar(&flushIntervalStr, "flush-interval", flushIntervalStr, "Interval between write-behind flushes")
	fs.StringVar(&searchDelayStr, "search-delay", searchDelayStr, "Simulated provider search delay")
	fs.StringVar(&cfg.ProviderAPIAddress, "providers", cfg.ProviderAPIAddress, "Provider directory base URL")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.FlushInterval, err = time.ParseDuration(flushIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid flush interval: %w", err)
	}

	if cfg.ProviderSearchDelay, err = time.ParseDuration(searchDelayStr); err != nil {
		return nil, fmt.Errorf("invalid search delay: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}

	if cfg.ProviderSearchDelay < 0 {
		cfg.ProviderSearchDelay = defaultProviderSearchDelay
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	cfg.PersistMode = strings.ToLower(cfg.PersistMode)

	switch cfg.StorageDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path must be provided")
		}
	case DriverPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case DriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis URL must be provided")
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.PersistMode != PersistAsync && cfg.PersistMode != PersistSync {
		return nil, fmt.Errorf("unknown persist mode %q", cfg.PersistMode)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
