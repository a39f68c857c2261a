package session

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const memoryShards = 64

// MemoryStore keeps session records in a sharded in-process map. Tokens hash
// to a shard, so operations on different tokens rarely contend while reads
// and writes of one token always serialize on the same lock. A janitor
// goroutine sweeps expired records so abandoned anonymous sessions cannot
// grow the table without bound.
type MemoryStore struct {
	shards [memoryShards]memoryShard

	stop     chan struct{}
	stopOnce sync.Once
}

type memoryShard struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates the store and starts the janitor. Call Close on
// shutdown to stop it.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	m := &MemoryStore{stop: make(chan struct{})}
	for i := range m.shards {
		m.shards[i].sessions = make(map[string]Session)
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	go m.janitor(sweepInterval)
	return m
}

func (m *MemoryStore) shard(token string) *memoryShard {
	h := fnv.New32a()
	h.Write([]byte(token))
	return &m.shards[h.Sum32()%memoryShards]
}

func (m *MemoryStore) Put(_ context.Context, s Session) error {
	sh := m.shard(s.Token)
	sh.mu.Lock()
	sh.sessions[s.Token] = s
	sh.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	sh := m.shard(token)
	sh.mu.RLock()
	s, ok := sh.sessions[token]
	sh.mu.RUnlock()

	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	sh := m.shard(token)
	sh.mu.Lock()
	delete(sh.sessions, token)
	sh.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			for i := range m.shards {
				sh := &m.shards[i]
				sh.mu.Lock()
				for token, s := range sh.sessions {
					if now.After(s.ExpiresAt) {
						delete(sh.sessions, token)
					}
				}
				sh.mu.Unlock()
			}
		}
	}
}
