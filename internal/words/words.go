// internal/words/words.go
//
// Word list management for the game service.
//
// Responsibilities:
//   - Load the valid-word list from an environment-provided file or fall back
//     to the embedded default list.
//   - Maintain a lookup set for validity checks.
//
// Initialization behavior (Load):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise use the embedded default list.
//
// Constraints:
//   - Words must be exactly 5 alphabetic letters (a-z).
//   - Lists are normalized to lowercase; invalid lines are skipped.
package words

import (
	"bufio"
	_ "embed"
	"errors"
	"os"
	"strings"
)

// Length is the fixed word length used throughout the game.
const Length = 5

//go:embed default_words.txt
var embeddedWords string

// List is an immutable, normalized word list plus a membership set.
type List struct {
	words []string
	set   map[string]struct{}
}

// Load builds a List from the WORDS_FILE env var if set, otherwise from the
// embedded defaults. Returns an error if the resulting list is empty.
func Load() (*List, error) {
	if path := os.Getenv("WORDS_FILE"); path != "" {
		return LoadFile(path)
	}
	return newList(normalizeLines(embeddedWords))
}

// New builds a List from the given words, normalizing and dropping invalid
// entries. Returns an error if nothing valid remains.
func New(ws []string) (*List, error) {
	var out []string
	for _, w := range ws {
		if n, ok := normalize(w); ok {
			out = append(out, n)
		}
	}
	return newList(out)
}

// LoadFile reads one word per line from path, keeping only valid entries.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return newList(out)
}

func newList(ws []string) (*List, error) {
	if len(ws) == 0 {
		return nil, errors.New("words: list is empty")
	}
	set := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		set[w] = struct{}{}
	}
	return &List{words: ws, set: set}, nil
}

// Words returns the underlying list. Callers must not mutate it.
func (l *List) Words() []string { return l.words }

// Contains reports whether w (already lowercased) is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.set[w]
	return ok
}

// Len returns the number of words in the list.
func (l *List) Len() int { return len(l.words) }

// normalize lowercases and trims a line, returning ok only for valid words.
func normalize(line string) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(line))
	if len(w) != Length || !isAlpha(w) {
		return "", false
	}
	return w, true
}

func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalize(line); ok {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
