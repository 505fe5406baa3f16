// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for tests and for running the server without durability.
//
// Characteristics:
//   - Sessions keyed by ownerID|date, stats/prefs keyed by ownerID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/villaindle/go-server/internal/game"
)

type memory struct {
	mu       sync.RWMutex
	sessions map[string]SessionSnapshot // keyed by ownerID|date
	stats    map[string]game.Stats      // keyed by ownerID
	seen     map[string]bool            // instructions flag, keyed by ownerID
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		sessions: make(map[string]SessionSnapshot),
		stats:    make(map[string]game.Stats),
		seen:     make(map[string]bool),
	}
}

func sessionKey(ownerID, date string) string { return ownerID + "|" + date }

func (m *memory) SaveSession(ctx context.Context, ownerID string, snap SessionSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionKey(ownerID, snap.Date)] = snap
	return nil
}

func (m *memory) GetSession(ctx context.Context, ownerID, date string) (SessionSnapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.sessions[sessionKey(ownerID, date)]
	return snap, ok, nil
}

func (m *memory) SaveStats(ctx context.Context, ownerID string, st game.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[ownerID] = st
	return nil
}

func (m *memory) GetStats(ctx context.Context, ownerID string) (game.Stats, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.stats[ownerID]
	return st, ok, nil
}

func (m *memory) MarkInstructionsSeen(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[ownerID] = true
	return nil
}

func (m *memory) InstructionsSeen(ctx context.Context, ownerID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seen[ownerID], nil
}

func (m *memory) ClaimOwner(ctx context.Context, fromID, toID string) error {
	if fromID == "" || toID == "" || fromID == toID {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, snap := range m.sessions {
		if key == sessionKey(fromID, snap.Date) {
			newKey := sessionKey(toID, snap.Date)
			if _, taken := m.sessions[newKey]; !taken {
				m.sessions[newKey] = snap
			}
			delete(m.sessions, key)
		}
	}
	if st, ok := m.stats[fromID]; ok {
		if _, taken := m.stats[toID]; !taken {
			m.stats[toID] = st
		}
		delete(m.stats, fromID)
	}
	if m.seen[fromID] {
		m.seen[toID] = true
		delete(m.seen, fromID)
	}
	return nil
}
