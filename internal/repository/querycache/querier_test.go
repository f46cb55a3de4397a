package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/db"
	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

type mockStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}

type mockQuerier struct {
	results []domain.RetrievedChunk
	err     error
	calls   int
}

func (m *mockQuerier) Query(_ context.Context, _ string, _ int) ([]domain.RetrievedChunk, error) {
	m.calls++
	return m.results, m.err
}

func sampleResults() []domain.RetrievedChunk {
	return []domain.RetrievedChunk{
		{ID: "a", Path: "skills", Text: "Go", Score: 0.9},
		{ID: "b", Path: "summary", Text: "builder", Score: 0.6},
	}
}

func TestQuery_MissThenHit(t *testing.T) {
	store := newMockStore()
	inner := &mockQuerier{results: sampleResults()}
	cache := New(inner, store, time.Minute, nil, zap.NewNop())

	first, err := cache.Query(context.Background(), "what does she do", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
	if store.lastTTL != time.Minute {
		t.Errorf("ttl = %v, want 1m", store.lastTTL)
	}

	second, err := cache.Query(context.Background(), "what does she do", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected cached result, inner called %d times", inner.calls)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestQuery_KeyIncludesTopK(t *testing.T) {
	store := newMockStore()
	inner := &mockQuerier{results: sampleResults()}
	cache := New(inner, store, time.Minute, nil, zap.NewNop())

	_, _ = cache.Query(context.Background(), "q", 3)
	_, _ = cache.Query(context.Background(), "q", 6)

	if inner.calls != 2 {
		t.Errorf("different topK must miss, inner called %d times", inner.calls)
	}
}

func TestQuery_StoreFailureFallsThrough(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	inner := &mockQuerier{results: sampleResults()}
	cache := New(inner, store, time.Minute, nil, zap.NewNop())

	results, err := cache.Query(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("cache failure must not fail the query: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected inner results, got %d", len(results))
	}
}

func TestQuery_CorruptEntryFallsThrough(t *testing.T) {
	store := newMockStore()
	inner := &mockQuerier{results: sampleResults()}
	cache := New(inner, store, time.Minute, nil, zap.NewNop())

	key := cache.cacheKey("q", 3)
	store.data[key] = []byte("{not json")

	results, err := cache.Query(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("corrupt entry must fall through to inner, calls = %d", inner.calls)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestQuery_InnerErrorNotCached(t *testing.T) {
	store := newMockStore()
	inner := &mockQuerier{err: domain.ErrIndexUnavailable}
	cache := New(inner, store, time.Minute, nil, zap.NewNop())

	_, err := cache.Query(context.Background(), "q", 3)
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
	if len(store.data) != 0 {
		t.Error("errors must not be cached")
	}
}

func TestQuery_EmptyResultIsCacheable(t *testing.T) {
	store := newMockStore()
	inner := &mockQuerier{results: []domain.RetrievedChunk{}}
	cache := New(inner, store, time.Minute, nil, zap.NewNop())

	_, _ = cache.Query(context.Background(), "q", 3)
	if len(store.data) != 1 {
		t.Fatalf("expected empty result to be cached, store has %d entries", len(store.data))
	}
	for _, v := range store.data {
		var decoded []domain.RetrievedChunk
		if err := json.Unmarshal(v, &decoded); err != nil {
			t.Errorf("cached value is not valid JSON: %v", err)
		}
	}
}
