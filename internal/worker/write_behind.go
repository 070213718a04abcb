package worker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/boklen/rentals/internal/domain/repository"
)

// Recorder receives write-behind outcomes.
type Recorder interface {
	PersistResult(err error)
	Pending(n int)
}

// WriteBehind buffers snapshot entries and flushes them to the backing store
// on an interval. Pending entries are coalesced per key, the latest value wins.
type WriteBehind struct {
	store    repository.SnapshotWriter
	interval time.Duration
	logger   *slog.Logger
	recorder Recorder

	pending map[string][]byte
	pmu     sync.Mutex
	// serializes flushes so an older batch never lands after a newer one
	fmu sync.Mutex

	wake   chan struct{}
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewWriteBehind constructs the write-behind persister.
func NewWriteBehind(store repository.SnapshotWriter, interval time.Duration, logger *slog.Logger, recorder Recorder) *WriteBehind {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &WriteBehind{
		store:    store,
		interval: interval,
		logger:   logger,
		recorder: recorder,
		pending:  make(map[string][]byte),
		wake:     make(chan struct{}, 1),
	}
}

// SetMany buffers the entries. It never blocks on the backing store.
func (w *WriteBehind) SetMany(_ context.Context, entries ...repository.Entry) error {
	w.pmu.Lock()
	for _, e := range entries {
		w.pending[e.Key] = e.Value
	}
	n := len(w.pending)
	w.pmu.Unlock()

	if w.recorder != nil {
		w.recorder.Pending(n)
	}
	return nil
}

// Start launches the background flush loop.
func (w *WriteBehind) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(runCtx)
}

// Stop halts the loop and writes whatever is still pending.
func (w *WriteBehind) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
	return w.Flush(ctx)
}

// Flush writes all pending entries in one batch. On failure the entries are
// put back unless a newer value for the same key arrived meanwhile.
func (w *WriteBehind) Flush(ctx context.Context) error {
	w.fmu.Lock()
	defer w.fmu.Unlock()

	batch := w.drain()
	if len(batch) == 0 {
		return nil
	}

	err := w.store.SetMany(ctx, batch...)
	if w.recorder != nil {
		w.recorder.PersistResult(err)
	}
	if err != nil {
		w.logger.Error("write-behind flush failed", slog.Int("keys", len(batch)), slog.String("error", err.Error()))
		w.requeue(batch)
		return err
	}
	w.logger.Debug("write-behind flushed", slog.Int("keys", len(batch)))
	return nil
}

// Kick requests an early flush.
func (w *WriteBehind) Kick() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *WriteBehind) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-w.wake:
		}
		_ = w.Flush(ctx)
	}
}

func (w *WriteBehind) drain() []repository.Entry {
	w.pmu.Lock()
	defer w.pmu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	batch := make([]repository.Entry, 0, len(w.pending))
	for k, v := range w.pending {
		batch = append(batch, repository.Entry{Key: k, Value: v})
	}
	w.pending = make(map[string][]byte)
	if w.recorder != nil {
		w.recorder.Pending(0)
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Key < batch[j].Key })
	return batch
}

func (w *WriteBehind) requeue(batch []repository.Entry) {
	w.pmu.Lock()
	for _, e := range batch {
		if _, newer := w.pending[e.Key]; !newer {
			w.pending[e.Key] = e.Value
		}
	}
	n := len(w.pending)
	w.pmu.Unlock()

	if w.recorder != nil {
		w.recorder.Pending(n)
	}
}

// PendingKeys reports how many keys wait for the next flush.
func (w *WriteBehind) PendingKeys() int {
	w.pmu.Lock()
	defer w.pmu.Unlock()
	return len(w.pending)
}
