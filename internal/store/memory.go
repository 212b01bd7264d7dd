// Package store holds the working-copy implementations of match.Store.
package store

import (
	"context"
	"sync"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

// MemoryStore keeps states in process. Loads and saves copy the state so
// callers never share snapshots with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*match.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*match.State)}
}

func (m *MemoryStore) Load(_ context.Context, matchID string) (*match.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[matchID]
	if !ok {
		return nil, match.ErrMatchNotFound
	}
	return st.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, state *match.State) error {
	if state == nil || state.Current == nil {
		return match.ErrStateNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.Current.MatchID] = state.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, matchID)
	return nil
}
