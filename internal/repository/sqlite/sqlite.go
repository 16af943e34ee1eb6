// internal/repository/sqlite/sqlite.go
//
// SQLite implementations of the repository interfaces.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Idempotent schema creation for the games and users tables.
//   - Mapping driver failures onto the repository error taxonomy.
//
// Guesses are stored as a JSON column: games are small, read and written
// whole, and never queried by guess contents.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"wordled/internal/game"
	"wordled/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    username        TEXT NOT NULL,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL,
    current_game_id TEXT
);
CREATE TABLE IF NOT EXISTS games (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    word         TEXT NOT NULL,
    max_attempts INTEGER NOT NULL,
    guesses      TEXT NOT NULL,
    completed    INTEGER NOT NULL DEFAULT 0,
    won          INTEGER NOT NULL DEFAULT 0,
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
`

// Open opens (and creates if missing) a SQLite database file and ensures the
// schema exists. The DSN is a file path; directories are created as needed.
func Open(dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// wrapErr maps driver errors onto the repository taxonomy.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var se sqlite3.Error
	if errors.As(err, &se) && (se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", repository.ErrInternal, err)
}

// GameRepository persists games in the games table.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository wraps an open database handle.
func NewGameRepository(db *sql.DB) *GameRepository { return &GameRepository{db: db} }

func (r *GameRepository) GetGame(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, word, max_attempts, guesses, completed, won, created_at, updated_at
		FROM games WHERE id=?`, id.String())

	var g game.Game
	var gid, userID, guessesJSON, created, updated string
	if err := row.Scan(&gid, &userID, &g.Word, &g.MaxAttempts, &guessesJSON, &g.Completed, &g.Won, &created, &updated); err != nil {
		return nil, wrapErr(err)
	}

	var err error
	if g.ID, err = uuid.Parse(gid); err != nil {
		return nil, fmt.Errorf("%w: game id: %v", repository.ErrInternal, err)
	}
	if g.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: user id: %v", repository.ErrInternal, err)
	}
	if err = json.Unmarshal([]byte(guessesJSON), &g.Guesses); err != nil {
		return nil, fmt.Errorf("%w: guesses: %v", repository.ErrInternal, err)
	}
	g.CreatedAt = parseTime(created)
	g.UpdatedAt = parseTime(updated)
	return &g, nil
}

func (r *GameRepository) SaveGame(ctx context.Context, g *game.Game) error {
	guesses, err := json.Marshal(g.Guesses)
	if err != nil {
		return fmt.Errorf("%w: guesses: %v", repository.ErrInternal, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO games (id, user_id, word, max_attempts, guesses, completed, won, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			guesses=excluded.guesses,
			completed=excluded.completed,
			won=excluded.won,
			updated_at=excluded.updated_at`,
		g.ID.String(), g.UserID.String(), g.Word, g.MaxAttempts, string(guesses),
		g.Completed, g.Won, formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
	return wrapErr(err)
}

func (r *GameRepository) ClearAllGames(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games`)
	if err != nil {
		return 0, wrapErr(err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// UserRepository persists users in the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository wraps an open database handle.
func NewUserRepository(db *sql.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*repository.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, created_at, updated_at, current_game_id
		FROM users WHERE id=?`, id.String())

	var u repository.User
	var uid, created, updated string
	var current sql.NullString
	if err := row.Scan(&uid, &u.Username, &created, &updated, &current); err != nil {
		return nil, wrapErr(err)
	}
	var err error
	if u.ID, err = uuid.Parse(uid); err != nil {
		return nil, fmt.Errorf("%w: user id: %v", repository.ErrInternal, err)
	}
	if current.Valid && current.String != "" {
		gid, err := uuid.Parse(current.String)
		if err != nil {
			return nil, fmt.Errorf("%w: current game id: %v", repository.ErrInternal, err)
		}
		u.CurrentGameID = &gid
	}
	u.CreatedAt = parseTime(created)
	u.UpdatedAt = parseTime(updated)
	return &u, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, u *repository.User) error {
	var current any
	if u.CurrentGameID != nil {
		current = u.CurrentGameID.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, created_at, updated_at, current_game_id)
		VALUES (?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			username=excluded.username,
			updated_at=excluded.updated_at,
			current_game_id=excluded.current_game_id`,
		u.ID.String(), u.Username, formatTime(u.CreatedAt), formatTime(u.UpdatedAt), current)
	return wrapErr(err)
}

func (r *UserRepository) UpdateUserCurrentGame(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET current_game_id=?, updated_at=? WHERE id=?`,
		gameID.String(), formatTime(time.Now().UTC()), userID.String())
	if err != nil {
		return false, wrapErr(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *UserRepository) ResetAllUsersCurrentGame(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET current_game_id=NULL, updated_at=?`, formatTime(time.Now().UTC()))
	if err != nil {
		return 0, wrapErr(err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// parseTime parses stored timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
