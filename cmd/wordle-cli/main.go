// cmd/wordle-cli/main.go
//
// Demo client for exercising the API by hand.
// Subcommands:
//   login  - mint a local HS256 dev token for a random (or given) user
//   new    - create or fetch today's game
//   status - show the current game
//   guess  - submit a word
//   health - check the server
//
// Token and current game ID are kept in ~/.wordle-cli.json between runs.
// The login command only works against servers configured with the same
// shared secret; real deployments issue tokens elsewhere.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type cliState struct {
	APIURL        string `json:"api_url"`
	Token         string `json:"token,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	CurrentGameID string `json:"current_game_id,omitempty"`
}

type gameView struct {
	ID                string `json:"id"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
	Completed         bool   `json:"completed"`
	Won               bool   `json:"won"`
	Word              string `json:"word,omitempty"`
	Guesses           []struct {
		Word    string   `json:"word"`
		Results []string `json:"results"`
	} `json:"guesses"`
}

func main() {
	apiURL := flag.String("api-url", "http://localhost:8080", "API base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	st := loadState()
	if *apiURL != "" {
		st.APIURL = *apiURL
	}

	var err error
	switch flag.Arg(0) {
	case "login":
		err = cmdLogin(st, flag.Args()[1:])
	case "new":
		err = cmdNew(st)
	case "status":
		err = cmdStatus(st)
	case "guess":
		err = cmdGuess(st, flag.Args()[1:])
	case "health":
		err = cmdHealth(st)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: wordle-cli [-api-url URL] <login [username]|new|status|guess WORD|health>`)
}

// cmdLogin signs a dev token locally using JWT_SECRET and stores it.
func cmdLogin(st *cliState, args []string) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET must be set to mint a dev token")
	}
	username := "player"
	if len(args) > 0 {
		username = args[0]
	}
	userID := uuid.NewString()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"iss":      envOr("JWT_ISSUER", "wordled"),
		"aud":      envOr("JWT_AUDIENCE", "users"),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}
	st.Token = signed
	st.UserID = userID
	st.Username = username
	st.CurrentGameID = ""
	if err := saveState(st); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", username, userID)
	return nil
}

func cmdNew(st *cliState) error {
	var g gameView
	if err := call(st, http.MethodPost, "/api/game/new", nil, &g); err != nil {
		return err
	}
	st.CurrentGameID = g.ID
	if err := saveState(st); err != nil {
		return err
	}
	printGame(&g)
	return nil
}

func cmdStatus(st *cliState) error {
	if st.CurrentGameID == "" {
		return fmt.Errorf("no current game; run 'new' first")
	}
	var g gameView
	if err := call(st, http.MethodGet, "/api/game/"+st.CurrentGameID, nil, &g); err != nil {
		return err
	}
	printGame(&g)
	return nil
}

func cmdGuess(st *cliState, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: guess WORD")
	}
	if st.CurrentGameID == "" {
		return fmt.Errorf("no current game; run 'new' first")
	}
	body, _ := json.Marshal(map[string]string{"word": args[0]})
	var g gameView
	if err := call(st, http.MethodPost, "/api/game/"+st.CurrentGameID+"/guess", body, &g); err != nil {
		return err
	}
	printGame(&g)
	return nil
}

func cmdHealth(st *cliState) error {
	var res map[string]string
	if err := call(st, http.MethodGet, "/api/health", nil, &res); err != nil {
		return err
	}
	fmt.Println("server status:", res["status"])
	return nil
}

// call performs one API request, decoding a JSON response or error body.
func call(st *cliState, method, path string, body []byte, out any) error {
	req, err := http.NewRequest(method, st.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if st.Token != "" {
		req.Header.Set("Authorization", "Bearer "+st.Token)
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}

// printGame renders the board with one marker per letter:
// uppercase = correct spot, lowercase = wrong spot, dot = not in word.
func printGame(g *gameView) {
	for _, gu := range g.Guesses {
		for i, r := range gu.Word {
			switch gu.Results[i] {
			case "Correct":
				fmt.Printf("%c", r-'a'+'A')
			case "WrongPosition":
				fmt.Printf("%c", r)
			default:
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
	switch {
	case g.Won:
		fmt.Printf("you won! the word was %q\n", g.Word)
	case g.Completed:
		fmt.Printf("game over, the word was %q\n", g.Word)
	default:
		fmt.Printf("%d attempts remaining\n", g.AttemptsRemaining)
	}
}

func statePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordle-cli.json"
	}
	return filepath.Join(home, ".wordle-cli.json")
}

func loadState() *cliState {
	st := &cliState{APIURL: "http://localhost:8080"}
	data, err := os.ReadFile(statePath())
	if err == nil {
		_ = json.Unmarshal(data, st)
	}
	return st
}

func saveState(st *cliState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statePath(), data, 0o600)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
