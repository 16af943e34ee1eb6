// internal/httpserver/server.go
//
// HTTP wiring for the daily word game API.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON, CORS).
//   - Public endpoint: GET /api/health.
//   - Game endpoints (auth required): POST /api/game/new,
//     GET /api/game/{id}, POST /api/game/{id}/guess.
//   - Mapping core failures onto transport statuses and safe messages.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wordled/internal/auth"
	"wordled/internal/game"
	"wordled/internal/repository"
	"wordled/internal/session"
)

// Server bundles the router, the session coordinator and the token verifier.
type Server struct {
	r        *chi.Mux
	sessions *session.Coordinator
	verifier *auth.Verifier
	log      zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(sessions *session.Coordinator, verifier *auth.Verifier, log zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), sessions: sessions, verifier: verifier, log: log}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.verifier.Middleware)
			r.Post("/game/new", s.handleNewGame)
			r.Get("/game/{id}", s.handleGetGame)
			r.Post("/game/{id}/guess", s.handleGuess)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests and custom listeners).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleNewGame returns the caller's game for today, creating one if needed.
// Idempotent within a day: calling twice yields the same game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"invalid or missing token"}`, http.StatusUnauthorized)
		return
	}
	g, err := s.sessions.GetOrCreateTodayGame(r.Context(), id.UserID, id.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(gameResponse(g))
}

// handleGetGame returns game state, read-only. Ownership mismatches and
// unparseable IDs are indistinguishable from missing games.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"invalid or missing token"}`, http.StatusUnauthorized)
		return
	}
	gameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, session.ErrGameNotFound)
		return
	}
	g, err := s.sessions.FetchGame(r.Context(), id.UserID, gameID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(gameResponse(g))
}

type guessRequest struct {
	Word string `json:"word"`
}

// handleGuess applies one guess to the caller's game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"invalid or missing token"}`, http.StatusUnauthorized)
		return
	}
	gameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, session.ErrGameNotFound)
		return
	}
	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	g, err := s.sessions.SubmitGuess(r.Context(), id.UserID, gameID, req.Word)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(gameResponse(g))
}

// writeError maps a core failure to a status code and a safe JSON message.
// Internal detail is logged server-side only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var iw *game.InvalidWordError
	switch {
	case errors.Is(err, game.ErrGameCompleted):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &iw):
		writeJSONError(w, http.StatusBadRequest, iw.Reason)
	case errors.Is(err, session.ErrGameNotFound), errors.Is(err, repository.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, repository.ErrUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
