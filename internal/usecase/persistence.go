package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/metrics"
	"github.com/boklen/rentals/internal/schema"
)

// persistence is the shared read/write path of the state stores. Writes go
// through writer (either the store itself or the write-behind buffer),
// reads and quarantine moves always hit the store directly.
type persistence struct {
	name    string
	kv      repository.KeyValueStore
	writer  repository.SnapshotWriter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func newPersistence(name string, kv repository.KeyValueStore, writer repository.SnapshotWriter, logger *slog.Logger, m *metrics.Metrics) persistence {
	if writer == nil {
		writer = kv
	}
	return persistence{name: name, kv: kv, writer: writer, logger: logger.With(slog.String("store", name)), metrics: m}
}

type value struct {
	key string
	v   any
}

// save encodes values and writes them as one batch. Failures are logged and
// returned for callers that report success, never for ones that do not.
func (p persistence) save(ctx context.Context, op string, values ...value) error {
	p.metrics.Mutation(p.name, op)

	entries := make([]repository.Entry, 0, len(values))
	for _, v := range values {
		entry, err := schema.Encode(v.key, v.v)
		if err != nil {
			p.logger.Error("encode state failed", slog.String("key", v.key), slog.String("error", err.Error()))
			return err
		}
		entries = append(entries, entry)
	}

	if err := p.writer.SetMany(ctx, entries...); err != nil {
		p.logger.Error("persist state failed", slog.String("op", op), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// flushSoon asks a buffering writer to flush without waiting for its interval.
func (p persistence) flushSoon() {
	if k, ok := p.writer.(interface{ Kick() }); ok {
		k.Kick()
	}
}

type loadResult int

const (
	// loadMissing means the key is absent or unreadable, defaults apply.
	loadMissing loadResult = iota
	loadCurrent
	// loadLegacy means dst holds a migrated value that must be rewritten.
	loadLegacy
	// loadQuarantined means the value was moved aside and defaults must be written.
	loadQuarantined
)

// load decodes key into dst. Undecodable values are copied to the
// quarantine key, the caller then overwrites the original with defaults.
func (p persistence) load(ctx context.Context, key string, dst any) loadResult {
	raw, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			p.logger.Error("read state failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return loadMissing
	}

	version, err := schema.Decode(raw, dst)
	if err == nil {
		if version == schema.LegacyVersion {
			p.logger.Info("migrating legacy value", slog.String("key", key))
			return loadLegacy
		}
		return loadCurrent
	}

	p.quarantine(ctx, key, raw, err)
	return loadQuarantined
}

func (p persistence) quarantine(ctx context.Context, key string, raw []byte, cause error) {
	p.logger.Warn("quarantining unreadable value", slog.String("key", key), slog.String("error", cause.Error()))
	p.metrics.Quarantined(key)
	if err := p.kv.SetMany(ctx, schema.Quarantine(key, raw)); err != nil {
		p.logger.Error("quarantine write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
