package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesAndFilters(t *testing.T) {
	list, err := New([]string{" CRANE ", "speed", "ab", "toolong", "ha5ty", "", "hello"})
	require.NoError(t, err)

	assert.Equal(t, 3, list.Len())
	assert.True(t, list.Contains("crane"))
	assert.True(t, list.Contains("speed"))
	assert.True(t, list.Contains("hello"))
	assert.False(t, list.Contains("ab"))
	assert.False(t, list.Contains("ha5ty"))
}

func TestNew_EmptyListRejected(t *testing.T) {
	_, err := New([]string{"ab", "123"})
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("CRANE\nspeed\nnope!\nhello\n"), 0o600))

	list, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())
	assert.True(t, list.Contains("crane"))
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	t.Setenv("WORDS_FILE", "")

	list, err := Load()
	require.NoError(t, err)
	assert.Greater(t, list.Len(), 100, "embedded default list should be substantial")
	for _, w := range list.Words() {
		assert.Len(t, w, Length)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("crane\nspeed\n"), 0o600))
	t.Setenv("WORDS_FILE", path)

	list, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())
}
