package main

import (
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordled/internal/auth"
	"wordled/internal/config"
	"wordled/internal/game"
	"wordled/internal/httpserver"
	"wordled/internal/repository"
	"wordled/internal/repository/sqlite"
	"wordled/internal/session"
	"wordled/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	list, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", list.Len()).Msg("word list loaded")

	games, users, err := openRepositories(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	key, err := cfg.JWT.Key()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load JWT key material")
	}
	verifier, err := auth.NewVerifier(auth.Config{
		AuthType: cfg.JWT.AuthType,
		Key:      key,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build JWT verifier")
	}

	coordinator := session.NewCoordinator(games, users, game.NewService(list), log.Logger)
	srv := httpserver.New(coordinator, verifier, log.Logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	if cfg.TLS.Enabled {
		log.Info().Str("addr", addr).Msg("starting server with TLS")
		err = http.ListenAndServeTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile, srv.Router())
	} else {
		log.Warn().Msg("TLS is disabled, serving plain HTTP")
		log.Info().Str("addr", addr).Msg("starting server")
		err = http.ListenAndServe(addr, srv.Router())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openRepositories selects the persistence backend from config.
func openRepositories(cfg config.StoreConfig) (repository.GameRepository, repository.UserRepository, error) {
	switch cfg.Backend {
	case "", "memory":
		return repository.NewMemoryGameRepository(), repository.NewMemoryUserRepository(), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewGameRepository(db), sqlite.NewUserRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
