package game

// Evaluate scores a guess against the target word using the standard
// two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) target letters by letter index.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark WrongPosition and decrement the count; otherwise mark Wrong.
//
// This ensures correct behavior with repeated letters in both target and
// guess: a letter never earns more credits than its occurrence count in the
// target. Both strings are assumed lowercase and of equal length. Pure, no
// side effects.
func Evaluate(target, guess string) []LetterResult {
	n := len(guess)
	res := make([]LetterResult, n)
	targetRunes := []rune(target)
	guessRunes := []rune(guess)

	// Letter frequency for the non-correct positions (a-z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guessRunes[i] == targetRunes[i] {
			res[i] = Correct
		} else {
			counts[idx(targetRunes[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guessRunes[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = WrongPosition
			counts[j]--
		} else {
			res[i] = Wrong
		}
	}
	return res
}

// idx maps a lowercase ASCII letter rune to 0..25.
// Assumes inputs are validated to a-z elsewhere.
func idx(r rune) int { return int(r - 'a') }
