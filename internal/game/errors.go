package game

import (
	"errors"
	"fmt"
)

// ErrGameCompleted is returned when a guess is submitted against a game that
// already reached a terminal state.
var ErrGameCompleted = errors.New("game is already completed")

// InvalidWordError rejects a guess that is the wrong length or not in the
// word list. The reason is safe to show to the caller.
type InvalidWordError struct {
	Reason string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word: %s", e.Reason)
}

// IsInvalidWord reports whether err is an InvalidWordError.
func IsInvalidWord(err error) bool {
	var iw *InvalidWordError
	return errors.As(err, &iw)
}
