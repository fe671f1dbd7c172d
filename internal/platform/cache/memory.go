package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryEntries = 10_000

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a bounded in-process Store. Entries expire lazily on read and
// the least recently used entry is evicted once the size bound is reached.
type MemoryStore struct {
	entries *lru.Cache[string, entry]
	now     func() time.Time
}

func NewMemoryStore(maxEntries int) (*MemoryStore, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMemoryEntries
	}
	entries, err := lru.New[string, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &MemoryStore{
		entries: entries,
		now:     time.Now,
	}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	e, ok := s.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		s.entries.Remove(key)
		return nil, false, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (s *MemoryStore) SetEx(_ context.Context, key string, ttl time.Duration, value []byte) error {
	if key == "" {
		return fmt.Errorf("cache key is required")
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries.Add(key, entry{
		value:     stored,
		expiresAt: expiresAt,
	})
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	s.entries.Remove(key)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Len() int {
	return s.entries.Len()
}
