package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "secret", cfg.JWT.AuthType)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.False(t, cfg.TLS.Enabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("JWT_AUTH_TYPE", "rsa")
	t.Setenv("JWT_ISSUER", "issuer")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DATABASE_URL", "/tmp/x.db")
	t.Setenv("TLS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "rsa", cfg.JWT.AuthType)
	assert.Equal(t, "issuer", cfg.JWT.Issuer)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Store.DatabaseURL)
	assert.True(t, cfg.TLS.Enabled)
}

func TestJWTConfig_Key(t *testing.T) {
	// Secret mode returns the shared secret as-is.
	c := JWTConfig{AuthType: "secret", Secret: "s3cret"}
	key, err := c.Key()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)

	// Direct PEM value wins over the file.
	c = JWTConfig{AuthType: "rsa", PublicKey: "pem-data"}
	key, err = c.Key()
	require.NoError(t, err)
	assert.Equal(t, "pem-data", key)

	// Falls back to reading the key file.
	path := filepath.Join(t.TempDir(), "public.pem")
	require.NoError(t, os.WriteFile(path, []byte("file-pem"), 0o600))
	c = JWTConfig{AuthType: "ed25519", PublicKeyFile: path}
	key, err = c.Key()
	require.NoError(t, err)
	assert.Equal(t, "file-pem", key)

	// Missing file is an error.
	c = JWTConfig{AuthType: "rsa", PublicKeyFile: filepath.Join(t.TempDir(), "absent.pem")}
	_, err = c.Key()
	require.Error(t, err)
}
