package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordled/internal/game"
	"wordled/internal/repository"
	"wordled/internal/words"
)

var testWords = []string{
	"about", "crane", "speed", "erase", "light", "night", "spout", "world",
	"hello", "house", "mouse", "plant", "train", "dream", "smile", "stone",
}

type fixture struct {
	c     *Coordinator
	games *repository.MemoryGameRepository
	users *repository.MemoryUserRepository
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	list, err := words.New(testWords)
	require.NoError(t, err)

	f := &fixture{
		games: repository.NewMemoryGameRepository(),
		users: repository.NewMemoryUserRepository(),
		now:   time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
	}
	f.c = NewCoordinator(f.games, f.users, game.NewService(list), zerolog.Nop())
	f.c.SetClock(func() time.Time { return f.now })
	// The coordinator was constructed with the real clock; align the
	// rollover baseline with the fake one.
	require.NoError(t, f.c.EnsureFreshDay(context.Background()))
	return f
}

func (f *fixture) advanceDays(n int) { f.now = f.now.AddDate(0, 0, n) }

func TestGetOrCreateTodayGame_IdempotentWithinDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	g1, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)
	require.NotNil(t, g1)
	assert.Equal(t, userID, g1.UserID)
	assert.Equal(t, game.DefaultMaxAttempts, g1.MaxAttempts)

	g2, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)
	assert.Equal(t, g1.ID, g2.ID, "second call must return the same game")

	// The lazily created user record points at the game.
	u, err := f.users.GetUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, u.CurrentGameID)
	assert.Equal(t, g1.ID, *u.CurrentGameID)
	assert.Equal(t, "alice", u.Username)
}

func TestGetOrCreateTodayGame_SharedDailyWord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	g1, err := f.c.GetOrCreateTodayGame(ctx, uuid.New(), "alice")
	require.NoError(t, err)
	g2, err := f.c.GetOrCreateTodayGame(ctx, uuid.New(), "bob")
	require.NoError(t, err)

	assert.NotEqual(t, g1.ID, g2.ID)
	assert.Equal(t, g1.Word, g2.Word, "all players share the daily word")
}

func TestDayRollover_ClearsGamesAndPointers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	g1, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)

	f.advanceDays(1)

	g2, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, g1.ID, g2.ID, "day advance must yield a fresh game")

	// Yesterday's game is gone.
	_, err = f.c.FetchGame(ctx, userID, g1.ID)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestEnsureFreshDay_NoopWithinDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	g, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)

	// Later the same day: nothing is reset.
	f.now = f.now.Add(6 * time.Hour)
	require.NoError(t, f.c.EnsureFreshDay(ctx))

	got, err := f.c.FetchGame(ctx, userID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
}

func TestSubmitGuess_FlowAndPersistence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	g, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)

	wrong := "speed"
	if g.Word == wrong {
		wrong = "crane"
	}
	updated, err := f.c.SubmitGuess(ctx, userID, g.ID, wrong)
	require.NoError(t, err)
	assert.Len(t, updated.Guesses, 1)

	// The mutation was persisted, not just returned.
	stored, err := f.games.GetGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Guesses, 1)

	// Winning guess completes the game.
	won, err := f.c.SubmitGuess(ctx, userID, g.ID, g.Word)
	require.NoError(t, err)
	assert.True(t, won.Completed)
	assert.True(t, won.Won)
}

func TestSubmitGuess_InvalidWordAndCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	g, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)

	_, err = f.c.SubmitGuess(ctx, userID, g.ID, "zzzzz")
	require.Error(t, err)
	assert.True(t, game.IsInvalidWord(err))

	_, err = f.c.SubmitGuess(ctx, userID, g.ID, g.Word)
	require.NoError(t, err)

	_, err = f.c.SubmitGuess(ctx, userID, g.ID, g.Word)
	require.ErrorIs(t, err, game.ErrGameCompleted)
}

func TestOwnership_MergedIntoNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := uuid.New()
	intruder := uuid.New()

	g, err := f.c.GetOrCreateTodayGame(ctx, owner, "alice")
	require.NoError(t, err)

	// Not-owned and missing are indistinguishable.
	_, err = f.c.FetchGame(ctx, intruder, g.ID)
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = f.c.SubmitGuess(ctx, intruder, g.ID, "crane")
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = f.c.FetchGame(ctx, owner, uuid.New())
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestConcurrentCreates_SameUserSameDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := uuid.New()

	// Seed the first game, then hammer get-or-create concurrently; every
	// caller must observe the same game id.
	g, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
	require.NoError(t, err)

	const n = 16
	results := make(chan uuid.UUID, n)
	for i := 0; i < n; i++ {
		go func() {
			got, err := f.c.GetOrCreateTodayGame(ctx, userID, "alice")
			if err != nil {
				results <- uuid.Nil
				return
			}
			results <- got.ID
		}()
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, g.ID, <-results)
	}
}
