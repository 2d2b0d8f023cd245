package server

import (
	"context"
	"errors"
	"sync"

	"arcade/game"
)

var ErrNotFound = errors.New("session not found")

// Store keeps live sessions. Sessions are only touched inside the callbacks,
// which the store serializes.
type Store interface {
	Save(ctx context.Context, s *game.Session) error
	View(ctx context.Context, id string, fn func(*game.Session)) error
	Update(ctx context.Context, id string, fn func(*game.Session) error) error
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) View(ctx context.Context, id string, fn func(*game.Session)) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	fn(s)
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
