// internal/repository/repository.go
//
// Persistence boundary for games and users.
// Implementations may be backed by memory (this package), SQLite
// (repository/sqlite), or any other store. The interfaces are deliberately
// narrow so an in-memory fake can stand in for a durable backend in tests.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"wordled/internal/game"
)

// Error taxonomy. Implementations wrap these sentinels so callers can match
// with errors.Is regardless of backend.
var (
	// ErrNotFound: the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable: transient storage/connection fault; the client may retry.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInternal: serialization or storage fault; details belong in server
	// logs, not client responses.
	ErrInternal = errors.New("storage internal error")
)

// User is the persisted record for a player identity.
// Created lazily on first game creation; CurrentGameID points at today's game
// and is cleared in bulk at day rollover.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CurrentGameID *uuid.UUID `json:"current_game_id,omitempty"`
}

// NewUser creates a user record from verified token claims.
func NewUser(id uuid.UUID, username string) *User {
	now := time.Now().UTC()
	return &User{ID: id, Username: username, CreatedAt: now, UpdatedAt: now}
}

// GameRepository is the persistence contract for games.
type GameRepository interface {
	// GetGame retrieves a game by ID. Returns ErrNotFound if missing.
	GetGame(ctx context.Context, id uuid.UUID) (*game.Game, error)

	// SaveGame upserts a game by ID.
	SaveGame(ctx context.Context, g *game.Game) error

	// ClearAllGames removes every stored game and reports the count affected.
	ClearAllGames(ctx context.Context) (int, error)
}

// UserRepository is the persistence contract for users.
type UserRepository interface {
	// GetUser retrieves a user by ID. Returns ErrNotFound if missing.
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	// SaveUser upserts a user by ID.
	SaveUser(ctx context.Context, u *User) error

	// UpdateUserCurrentGame points the user at a new current game.
	// Reports false if no such user exists.
	UpdateUserCurrentGame(ctx context.Context, userID, gameID uuid.UUID) (bool, error)

	// ResetAllUsersCurrentGame clears every user's current-game pointer and
	// reports the count affected.
	ResetAllUsersCurrentGame(ctx context.Context) (int, error)
}
