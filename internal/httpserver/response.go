package httpserver

import "wordled/internal/game"

// GameResponse is the wire shape for a game. The secret word is present only
// once the game is completed; it must never leak mid-game.
type GameResponse struct {
	ID                string          `json:"id"`
	AttemptsRemaining int             `json:"attemptsRemaining"`
	Completed         bool            `json:"completed"`
	Won               bool            `json:"won"`
	Word              string          `json:"word,omitempty"`
	Guesses           []GuessResponse `json:"guesses"`
}

// GuessResponse is one guess and its per-letter results.
type GuessResponse struct {
	Word    string              `json:"word"`
	Results []game.LetterResult `json:"results"`
}

func gameResponse(g *game.Game) GameResponse {
	res := GameResponse{
		ID:                g.ID.String(),
		AttemptsRemaining: g.AttemptsRemaining(),
		Completed:         g.Completed,
		Won:               g.Won,
		Guesses:           make([]GuessResponse, 0, len(g.Guesses)),
	}
	if g.Completed {
		res.Word = g.Word
	}
	for _, gu := range g.Guesses {
		res.Guesses = append(res.Guesses, GuessResponse{Word: gu.Word, Results: gu.Results})
	}
	return res
}
