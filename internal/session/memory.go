package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      string
	expiresAt time.Time
}

// MemoryBackend 開發用；重啟即遺失
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry), now: time.Now}
}

func (b *MemoryBackend) Load(_ context.Context, id string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[id]
	if !ok || !e.expiresAt.After(b.now()) {
		return "", false, nil
	}
	return e.data, true, nil
}

func (b *MemoryBackend) Save(_ context.Context, id, data string, expiresAt time.Time) error {
	b.mu.Lock()
	b.entries[id] = memoryEntry{data: data, expiresAt: expiresAt}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	delete(b.entries, id)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Ping(context.Context) error { return nil }

func (b *MemoryBackend) Prune(_ context.Context, now time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int64
	for id, e := range b.entries {
		if !e.expiresAt.After(now) {
			delete(b.entries, id)
			n++
		}
	}
	return n, nil
}
