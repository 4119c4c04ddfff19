package wordset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSubstring(t *testing.T) {
	assert := assert.New(t)

	ws := New([]string{"badger", "Wolf"})

	assert.Equal("badger", ws.MatchSubstring("a badger appeared"))
	// substring match inside a longer token still triggers
	assert.Equal("badger", ws.MatchSubstring("xxbadgerxx"))
	// case-sensitive
	assert.Equal("", ws.MatchSubstring("a wolf appeared"))
	assert.Equal("Wolf", ws.MatchSubstring("Wolfhound"))
	assert.Equal("", ws.MatchSubstring(""))
	assert.Equal("", ws.MatchSubstring("perfectly clean"))
}

func TestDefaultNonEmpty(t *testing.T) {
	assert.Greater(t, Default().Size(), 0)
}

func TestLoadFromFileJSON(t *testing.T) {
	assert := assert.New(t)

	p := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"disallowed": ["alpha", "beta"], "extra": ["gamma"]}`), 0644))

	ws := New([]string{"zeta"})
	require.NoError(t, ws.LoadFromFileJSON(p))
	assert.Equal(4, ws.Size())
	assert.Equal("zeta", ws.MatchSubstring("zeta stays"))
	assert.Equal("beta", ws.MatchSubstring("betamax"))
	assert.Equal("gamma", ws.MatchSubstring("says gamma rays"))
	assert.Equal("", ws.MatchSubstring("delta"))

	assert.Error(New(nil).LoadFromFileJSON(filepath.Join(t.TempDir(), "missing.json")))
}
