// Package redis keeps device state in Redis, one string key per entry.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/repository"
)

const defaultPrefix = "boklen:"

// Storage is a key-value store backed by Redis.
type Storage struct {
	client goredis.UniversalClient
	prefix string
	logger *slog.Logger
}

var _ repository.KeyValueStore = (*Storage)(nil)

// New connects to the Redis instance described by url and verifies it with a ping.
func New(ctx context.Context, url, prefix string, logger *slog.Logger) (*Storage, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	storage := NewWithClient(goredis.NewClient(opt), prefix, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := storage.client.Ping(pingCtx).Err(); err != nil {
		_ = storage.client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return storage, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient, prefix string, logger *slog.Logger) *Storage {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Storage{client: client, prefix: prefix, logger: logger}
}

// Close releases the client connections.
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}

// Get returns the raw value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// SetMany writes all entries in a single MULTI/EXEC block.
func (s *Storage) SetMany(ctx context.Context, entries ...repository.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, s.key(e.Key), e.Value, 0)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("redis write failed", slog.Int("keys", len(entries)), slog.String("error", err.Error()))
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes keys; missing keys are ignored.
func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	return s.client.Del(ctx, prefixed...).Err()
}

// Keys lists stored keys without the namespace prefix, in lexical order.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		result []string
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			s.logger.Error("redis scan failed", slog.String("prefix", s.prefix), slog.String("error", err.Error()))
			return nil, err
		}
		for _, k := range batch {
			result = append(result, strings.TrimPrefix(k, s.prefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(result)
	return result, nil
}

// HealthCheck pings the server.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}
