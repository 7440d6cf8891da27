// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds one game.State per browser session.
//
// Characteristics:
//   - States are stored by value; callers never share a board with the store.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Update runs the transition under the write lock, so actions against a
//     session apply one at a time, in arrival order.
//   - Save and Update stamp a last-touched time; Stale lists sessions idle
//     since a cutoff so the server can evict them.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/codenames/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for session state.
type Store interface {
	// Save persists or replaces the state for a session.
	Save(ctx context.Context, id string, st game.State) error

	// Get retrieves a session's state, or ErrNotFound.
	Get(ctx context.Context, id string) (game.State, error)

	// Update applies fn to the stored state and saves the result.
	// If fn fails, the stored state is left unchanged.
	Update(ctx context.Context, id string, fn func(game.State) (game.State, error)) (game.State, error)

	// Delete drops a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Stale lists sessions not saved or updated since before.
	Stale(ctx context.Context, before time.Time) []string

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	st      game.State
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex     // guards states map
	states map[string]entry // keyed by session ID
	now    func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{states: make(map[string]entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, id string, st game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = entry{st: st, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.states[id]; ok {
		return e.st, nil
	}
	return game.State{}, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(game.State) (game.State, error)) (game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.states[id]
	if !ok {
		return game.State{}, ErrNotFound
	}
	next, err := fn(cur.st)
	if err != nil {
		return cur.st, err
	}
	m.states[id] = entry{st: next, touched: m.now()}
	return next, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}

func (m *memory) Stale(ctx context.Context, before time.Time) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, e := range m.states {
		if e.touched.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}
