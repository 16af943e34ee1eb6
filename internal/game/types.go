// internal/game/types.go
//
// Core type definitions for the daily word game.
// Defines:
//   - LetterResult: per-letter evaluation of a guess.
//   - Guess: one submitted word with its evaluation.
//   - Game: state for a single player's daily puzzle.
package game

import (
	"time"

	"github.com/google/uuid"
)

// LetterResult is the evaluation of a single letter in a guess.
// Possible values:
//   - "Correct":       letter is in the word at this position.
//   - "WrongPosition": letter is in the word at a different position.
//   - "Wrong":         letter is not in the word (or its credits are used up).
type LetterResult string

const (
	Correct       LetterResult = "Correct"
	WrongPosition LetterResult = "WrongPosition"
	Wrong         LetterResult = "Wrong"
)

// Guess is one submitted word and its per-letter results.
// Immutable once appended to a Game.
type Guess struct {
	Word      string         `json:"word"`
	Results   []LetterResult `json:"results"`
	CreatedAt time.Time      `json:"created_at"`
}

// Game holds the state of one player's puzzle for the current day.
type Game struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Word        string    `json:"word"` // the secret, always lowercase
	MaxAttempts int       `json:"max_attempts"`
	Guesses     []Guess   `json:"guesses"`
	Completed   bool      `json:"completed"`
	Won         bool      `json:"won"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewGame constructs a fresh game for userID around the given secret word.
func NewGame(word string, maxAttempts int, userID uuid.UUID) *Game {
	now := time.Now().UTC()
	return &Game{
		ID:          uuid.New(),
		UserID:      userID,
		Word:        word,
		MaxAttempts: maxAttempts,
		Guesses:     []Guess{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AttemptsRemaining reports how many guesses are left. Never negative.
func (g *Game) AttemptsRemaining() int {
	if n := g.MaxAttempts - len(g.Guesses); n > 0 {
		return n
	}
	return 0
}
