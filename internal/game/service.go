// internal/game/service.go
//
// Game service: guess validation/evaluation and daily word selection.
//
// Daily word rules:
//   - The word for a calendar date is derived from a generator seeded by the
//     date alone, so every process computing the same date agrees without any
//     shared storage.
//   - Results are cached per date key; the cache is an optimization, not a
//     correctness requirement.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"wordled/internal/words"
)

// DefaultMaxAttempts is the number of guesses a player gets per game.
const DefaultMaxAttempts = 6

// fallbackWord is returned if word selection is ever impossible. The list is
// validated non-empty at load, so this is a guard, not an expected path.
const fallbackWord = "hello"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Service owns the word list and the per-date word cache.
type Service struct {
	list       *words.List
	wordLength int

	mu    sync.Mutex        // guards cache
	cache map[string]string // date key -> word
}

// NewService creates a Service around a loaded word list.
func NewService(list *words.List) *Service {
	return &Service{
		list:       list,
		wordLength: words.Length,
		cache:      make(map[string]string),
	}
}

// WordLength returns the fixed word length for this service.
func (s *Service) WordLength() int { return s.wordLength }

// WordForDate deterministically picks the word for a calendar date.
// Pure with respect to the date: repeated calls always agree, even across
// restarts and cache clears.
func (s *Service) WordForDate(date time.Time) string {
	d := date.UTC()
	seed := int64(d.Year())*10000 + int64(d.Month())*100 + int64(d.Day())
	rng := rand.New(rand.NewSource(seed))
	if s.list.Len() == 0 {
		return fallbackWord
	}
	return s.list.Words()[rng.Intn(s.list.Len())]
}

// SelectDailyWord returns the shared word for the date of now, caching the
// result so repeated lookups within a day are cheap and stable.
func (s *Service) SelectDailyWord(now time.Time) string {
	key := DateKey(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.cache[key]; ok {
		return w
	}
	w := s.WordForDate(now)
	s.cache[key] = w
	return w
}

// MakeGuess validates and applies a guess, mutating the game state.
// The caller is responsible for persisting the updated game; the entity
// itself performs no I/O.
//
// Validation rules:
//   - Game must not be completed.
//   - Guess must be exactly the configured length after normalization.
//   - Guess must be present in the word list.
//
// State transitions:
//   - Guess equals the secret -> Completed, Won.
//   - Last attempt used without a win -> Completed (loss).
func (s *Service) MakeGuess(g *Game, word string) error {
	if g.Completed {
		return ErrGameCompleted
	}

	guess := strings.ToLower(strings.TrimSpace(word))
	if len(guess) != s.wordLength {
		return &InvalidWordError{Reason: fmt.Sprintf("word must be %d letters", s.wordLength)}
	}
	if !s.list.Contains(guess) {
		return &InvalidWordError{Reason: fmt.Sprintf("not in word list: %s", guess)}
	}

	results := Evaluate(g.Word, guess)
	g.Guesses = append(g.Guesses, Guess{
		Word:      guess,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	})
	g.UpdatedAt = time.Now().UTC()

	if guess == g.Word {
		g.Won = true
		g.Completed = true
	} else if g.AttemptsRemaining() == 0 {
		g.Completed = true
	}
	return nil
}
