package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/domain/repository"
	testhelpers "github.com/boklen/rentals/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOpenSQLiteMemory(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.DriverSQLite, SQLitePath: ":memory:"}
	store, closeFn, err := Open(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	ctx := context.Background()
	require.NoError(t, store.SetMany(ctx, repository.Entry{Key: repository.KeyUserLocation, Value: []byte(`"x"`)}))
	got, err := store.Get(ctx, repository.KeyUserLocation)
	require.NoError(t, err)
	assert.Equal(t, []byte(`"x"`), got)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageDriver: "etcd"}, testLogger())
	assert.Error(t, err)
}

func TestOpenRedisInvalidURL(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverRedis, RedisURL: "not-a-url"}, testLogger())
	assert.Error(t, err)
}

func TestNewKeyValueStoreClosesOnStop(t *testing.T) {
	lc := &testhelpers.LifecycleRecorder{}
	cfg := &config.Config{StorageDriver: config.DriverSQLite, SQLitePath: ":memory:"}

	store, err := newKeyValueStore(storeParams{Lifecycle: lc, Config: cfg, Logger: testLogger()})
	require.NoError(t, err)
	require.NotNil(t, store)
	require.Len(t, lc.Hooks, 1)

	require.NoError(t, lc.Hooks[0].OnStop(context.Background()))
	assert.Error(t, store.HealthCheck(context.Background()))
}
