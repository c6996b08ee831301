package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time // zero: never
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is a process-local cache. Expired entries are dropped on read and
// by a background sweep.
type Memory[V any] struct {
	mu         sync.RWMutex
	items      map[string]memoryEntry[V]
	defaultTTL time.Duration
	done       chan struct{}
	closeOnce  sync.Once
	closed     bool
}

type memoryConfig struct {
	defaultTTL time.Duration
	sweep      time.Duration
}

// MemoryOption configures NewMemory.
type MemoryOption func(*memoryConfig)

// WithDefaultTTL sets the TTL used when Set receives zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithSweepInterval sets how often expired entries are removed.
// Zero disables the background sweep. Default: 1 minute.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.sweep = d }
}

// NewMemory returns an in-memory cache. Call Close to stop the sweeper.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{defaultTTL: time.Hour, sweep: time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		items:      make(map[string]memoryEntry[V]),
		defaultTTL: cfg.defaultTTL,
		done:       make(chan struct{}),
	}
	if cfg.sweep > 0 {
		go m.sweep(cfg.sweep)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return zero, ErrClosed
	}
	e, ok := m.items[key]
	if !ok || e.expired(time.Now()) {
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	e := memoryEntry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.items[key] = e
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.items)
	return nil
}

// Close stops the sweeper. Further reads and writes return ErrClosed.
func (m *Memory[V]) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		clear(m.items)
		m.mu.Unlock()
		close(m.done)
	})
	return nil
}

func (m *Memory[V]) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-t.C:
			m.mu.Lock()
			for k, e := range m.items {
				if e.expired(now) {
					delete(m.items, k)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)
