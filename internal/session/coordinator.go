// internal/session/coordinator.go
//
// Session coordinator: mediates between per-request identity and the
// game/user entities.
// Responsibilities:
//   - Exactly one active game per user per calendar day (get-or-create).
//   - Day rollover: reset every user's current-game pointer and clear all
//     stored games when the date advances, at most effectively once.
//   - Guess submission and game fetch with ownership checks.
//
// The rollover trigger is best-effort, not exactly-once: the timestamp is
// bumped under the write lock before the reset/clear work, which narrows but
// does not close the window where two requests both roll over. Reset and
// clear are idempotent, so duplicate execution is wasteful, never corrupting.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wordled/internal/game"
	"wordled/internal/repository"
)

// ErrGameNotFound covers both a missing game and an ownership mismatch.
// The two are deliberately indistinguishable so a caller cannot probe for
// the existence of other players' games.
var ErrGameNotFound = errors.New("game not found")

// Coordinator owns the shared day state and orchestrates all game operations.
// Construct a fresh instance per test; there are no package-level globals.
type Coordinator struct {
	games   repository.GameRepository
	users   repository.UserRepository
	service *game.Service
	log     zerolog.Logger

	// now is the clock; swapped out in tests to simulate day boundaries.
	now func() time.Time

	mu            sync.RWMutex
	lastDateCheck time.Time
}

// NewCoordinator wires a coordinator around its collaborators.
func NewCoordinator(games repository.GameRepository, users repository.UserRepository, svc *game.Service, log zerolog.Logger) *Coordinator {
	c := &Coordinator{
		games:   games,
		users:   users,
		service: svc,
		log:     log,
		now:     time.Now,
	}
	c.lastDateCheck = c.now()
	return c
}

// SetClock replaces the coordinator's clock. Intended for tests.
func (c *Coordinator) SetClock(now func() time.Time) { c.now = now }

// EnsureFreshDay compares the current date against the last check and, if the
// day advanced, performs the global rollover: bump the timestamp, reset all
// users' current-game pointers, clear all games, pre-warm the daily word.
func (c *Coordinator) EnsureFreshDay(ctx context.Context) error {
	now := c.now()

	// Cheap path: same day as last check, nothing to do.
	c.mu.RLock()
	same := game.DateKey(now) == game.DateKey(c.lastDateCheck)
	c.mu.RUnlock()
	if same {
		return nil
	}

	// Re-check under the write lock, then update the timestamp first to
	// narrow the window where concurrent requests race into rollover.
	c.mu.Lock()
	if game.DateKey(now) == game.DateKey(c.lastDateCheck) {
		c.mu.Unlock()
		return nil
	}
	prev := game.DateKey(c.lastDateCheck)
	c.lastDateCheck = now
	c.mu.Unlock()

	c.log.Info().
		Str("prev_date", prev).
		Str("new_date", game.DateKey(now)).
		Msg("day change detected, resetting all game state")

	usersReset, err := c.users.ResetAllUsersCurrentGame(ctx)
	if err != nil {
		return err
	}
	gamesCleared, err := c.games.ClearAllGames(ctx)
	if err != nil {
		return err
	}
	c.log.Info().
		Int("users_reset", usersReset).
		Int("games_cleared", gamesCleared).
		Msg("day change completed")

	// Pre-warm the cache for the new date. The word itself stays out of the
	// logs; lazy computation would also be correct if this were skipped.
	c.service.SelectDailyWord(now)
	c.log.Debug().Msg("daily word selected for new date")

	return nil
}

// GetOrCreateTodayGame returns the caller's game for today, creating the game
// (and, lazily, the user record) if none exists.
//
// The create sequence is not a cross-entity transaction: a crash between
// SaveGame and UpdateUserCurrentGame can orphan a game. A retry re-derives
// idempotently through the current-game pointer, and rollover clears any
// orphans at the next day boundary.
func (c *Coordinator) GetOrCreateTodayGame(ctx context.Context, userID uuid.UUID, username string) (*game.Game, error) {
	if err := c.EnsureFreshDay(ctx); err != nil {
		return nil, err
	}

	// Existing game for today wins: create-game is idempotent per day.
	u, err := c.users.GetUser(ctx, userID)
	switch {
	case err == nil:
		if u.CurrentGameID != nil {
			return c.games.GetGame(ctx, *u.CurrentGameID)
		}
	case errors.Is(err, repository.ErrNotFound):
		// New identity, created below.
	default:
		return nil, err
	}

	word := c.service.SelectDailyWord(c.now())
	g := game.NewGame(word, game.DefaultMaxAttempts, userID)
	if err := c.games.SaveGame(ctx, g); err != nil {
		return nil, err
	}

	if u == nil {
		c.log.Info().Str("user_id", userID.String()).Str("username", username).Msg("creating user record")
		if err := c.users.SaveUser(ctx, repository.NewUser(userID, username)); err != nil {
			return nil, err
		}
	}

	if _, err := c.users.UpdateUserCurrentGame(ctx, userID, g.ID); err != nil {
		return nil, err
	}
	c.log.Info().Str("game_id", g.ID.String()).Str("user_id", userID.String()).Msg("new game created")
	return g, nil
}

// SubmitGuess applies a guess to the caller's game and persists the result.
func (c *Coordinator) SubmitGuess(ctx context.Context, userID, gameID uuid.UUID, word string) (*game.Game, error) {
	g, err := c.ownedGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if err := c.service.MakeGuess(g, word); err != nil {
		return nil, err
	}
	if err := c.games.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// FetchGame returns the caller's game, read-only.
func (c *Coordinator) FetchGame(ctx context.Context, userID, gameID uuid.UUID) (*game.Game, error) {
	if err := c.EnsureFreshDay(ctx); err != nil {
		return nil, err
	}
	return c.ownedGame(ctx, userID, gameID)
}

// ownedGame loads a game and verifies ownership, merging "missing" and
// "not yours" into ErrGameNotFound.
func (c *Coordinator) ownedGame(ctx context.Context, userID, gameID uuid.UUID) (*game.Game, error) {
	g, err := c.games.GetGame(ctx, gameID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrGameNotFound
	}
	return g, nil
}
