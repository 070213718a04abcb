package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/repository"
)

// KVStoreStub keeps persisted values in memory for tests.
type KVStoreStub struct {
	mu sync.Mutex

	Data map[string][]byte
	// Batches records every SetMany call in order.
	Batches [][]repository.Entry

	GetErr    error
	SetErr    error
	DeleteErr error
	HealthErr error
}

// NewKVStoreStub constructs stub store with an initialized map.
func NewKVStoreStub() *KVStoreStub {
	return &KVStoreStub{Data: make(map[string][]byte)}
}

// Seed stores raw values without recording a batch.
func (s *KVStoreStub) Seed(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Data == nil {
		s.Data = make(map[string][]byte)
	}
	s.Data[key] = append([]byte(nil), value...)
}

// Get returns a stored value or not found.
func (s *KVStoreStub) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.Data[key]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// SetMany stores all entries unless stub has explicit error.
func (s *KVStoreStub) SetMany(ctx context.Context, entries ...repository.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.Data == nil {
		s.Data = make(map[string][]byte)
	}
	batch := make([]repository.Entry, 0, len(entries))
	for _, e := range entries {
		value := append([]byte(nil), e.Value...)
		s.Data[e.Key] = value
		batch = append(batch, repository.Entry{Key: e.Key, Value: value})
	}
	s.Batches = append(s.Batches, batch)
	return nil
}

// Delete removes keys.
func (s *KVStoreStub) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	for _, k := range keys {
		delete(s.Data, k)
	}
	return nil
}

// Keys lists stored keys in order.
func (s *KVStoreStub) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// HealthCheck reports configured error.
func (s *KVStoreStub) HealthCheck(ctx context.Context) error {
	return s.HealthErr
}

// Value returns a copy of the stored value and whether it exists.
func (s *KVStoreStub) Value(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Data[key]
	return append([]byte(nil), v...), ok
}

// BatchCount reports how many SetMany calls succeeded.
func (s *KVStoreStub) BatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Batches)
}

// LastBatch returns the most recent successful SetMany batch.
func (s *KVStoreStub) LastBatch() []repository.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Batches) == 0 {
		return nil
	}
	return s.Batches[len(s.Batches)-1]
}

// RecorderStub counts write-behind outcomes.
type RecorderStub struct {
	mu       sync.Mutex
	Ok       int
	Failed   int
	Reported []int
}

// PersistResult records a write outcome.
func (r *RecorderStub) PersistResult(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.Failed++
		return
	}
	r.Ok++
}

// Pending records a pending gauge update.
func (r *RecorderStub) Pending(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reported = append(r.Reported, n)
}

// Counts returns the recorded successes and failures.
func (r *RecorderStub) Counts() (ok, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Ok, r.Failed
}
