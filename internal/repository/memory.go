// internal/repository/memory.go
//
// In-memory implementations of the repository interfaces.
// This is the reference persistence layer: ephemeral, concurrency-safe via
// RWMutex held only across map access, state lost on restart. It also serves
// as the test double for the session coordinator and HTTP layer.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"wordled/internal/game"
)

// MemoryGameRepository stores games in a map keyed by game ID.
type MemoryGameRepository struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*game.Game
}

// NewMemoryGameRepository constructs an empty in-memory game repository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{games: make(map[uuid.UUID]*game.Game)}
}

func (m *MemoryGameRepository) GetGame(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	cp.Guesses = append([]game.Guess(nil), g.Guesses...)
	return &cp, nil
}

func (m *MemoryGameRepository) SaveGame(ctx context.Context, g *game.Game) error {
	cp := *g
	cp.Guesses = append([]game.Guess(nil), g.Guesses...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &cp
	return nil
}

func (m *MemoryGameRepository) ClearAllGames(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.games)
	m.games = make(map[uuid.UUID]*game.Game)
	return n, nil
}

// MemoryUserRepository stores users in a map keyed by user ID.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewMemoryUserRepository constructs an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]*User)}
}

func (m *MemoryUserRepository) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryUserRepository) SaveUser(ctx context.Context, u *User) error {
	cp := *u
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryUserRepository) UpdateUserCurrentGame(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return false, nil
	}
	gid := gameID
	u.CurrentGameID = &gid
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *MemoryUserRepository) ResetAllUsersCurrentGame(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for _, u := range m.users {
		u.CurrentGameID = nil
		u.UpdatedAt = now
	}
	return len(m.users), nil
}
