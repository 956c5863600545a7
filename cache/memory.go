package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body    []byte
	expires time.Time
}

// Memory is a process local response cache. A janitor goroutine drops expired
// entries until Close is called.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	quit    chan struct{}
	once    sync.Once
}

func NewMemory(ttl time.Duration, janitorInterval time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		quit:    make(chan struct{}),
	}
	if janitorInterval > 0 {
		go m.janitor(janitorInterval)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expires) {
		return nil, false, nil
	}
	return e.body, true, nil
}

func (m *Memory) Set(_ context.Context, key string, body []byte) error {
	if m.ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	m.entries[key] = entry{body: body, expires: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Purge removes expired entries and reports how many were dropped.
func (m *Memory) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Purge()
		case <-m.quit:
			return
		}
	}
}

func (m *Memory) Close() error {
	m.once.Do(func() { close(m.quit) })
	return nil
}
