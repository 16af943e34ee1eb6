// internal/config/config.go
//
// Environment-driven configuration. Values are parsed into structs with
// caarlos0/env; cmd/server loads a .env file first via godotenv so local
// development works without exported variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// JWTConfig holds token verification settings.
type JWTConfig struct {
	// AuthType selects the signature scheme: "secret", "rsa" or "ed25519".
	AuthType string `env:"JWT_AUTH_TYPE" envDefault:"secret"`

	// Secret is the HS256 shared secret (AuthType "secret").
	Secret string `env:"JWT_SECRET"`

	// PublicKey is a PEM public key value; PublicKeyFile is read when the
	// direct value is unset (AuthType "rsa"/"ed25519").
	PublicKey     string `env:"JWT_PUBLIC_KEY"`
	PublicKeyFile string `env:"JWT_PUBLIC_KEY_FILE" envDefault:"./keys/jwt/public.pem"`

	Issuer   string `env:"JWT_ISSUER" envDefault:"wordled"`
	Audience string `env:"JWT_AUDIENCE" envDefault:"users"`
}

// Key resolves the verification key material for the configured auth type.
func (c JWTConfig) Key() (string, error) {
	if c.AuthType == "secret" || c.AuthType == "" {
		return c.Secret, nil
	}
	if c.PublicKey != "" {
		return c.PublicKey, nil
	}
	b, err := os.ReadFile(c.PublicKeyFile)
	if err != nil {
		return "", fmt.Errorf("read JWT public key from %s: %w", c.PublicKeyFile, err)
	}
	return string(b), nil
}

// TLSConfig holds the HTTPS settings.
type TLSConfig struct {
	Enabled  bool   `env:"TLS_ENABLED" envDefault:"false"`
	CertFile string `env:"TLS_CERT_FILE" envDefault:"keys/cert.pem"`
	KeyFile  string `env:"TLS_KEY_FILE" envDefault:"keys/key.pem"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `env:"STORE_BACKEND" envDefault:"memory"`

	// DatabaseURL is the SQLite file path when Backend is "sqlite".
	DatabaseURL string `env:"DATABASE_URL" envDefault:"./data/wordled.db"`
}

// Config is the full server configuration.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWT   JWTConfig
	TLS   TLSConfig
	Store StoreConfig
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
