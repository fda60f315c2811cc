package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogResolve(t *testing.T) {
	c := NewCatalog([]Card{
		{Name: "Zombiant", Cost: 1, Effects: []string{"atk:1"}},
		{Name: "Cactiling", Cost: 3, Effects: []string{"def:3"}},
	})

	got, ok := c.Resolve("Zombiant")
	require.True(t, ok)
	assert.Equal(t, 1, got.Cost)

	_, ok = c.Resolve("Dragon")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Size())
	assert.ElementsMatch(t, []string{"Zombiant", "Cactiling"}, c.Names())
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bestiary.yaml")
	data := `cards:
  - name: Zombiant
    cost: 1
    effects: ["atk:1"]
  - name: Plumpling
    cost: 4
    effects: ["heal:1", "def:2"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Size())

	got, ok := c.Resolve("Plumpling")
	require.True(t, ok)
	assert.Equal(t, []string{"heal:1", "def:2"}, got.Effects)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalogEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cards: []\n"), 0o644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadCatalogMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cards: [unclosed"), 0o644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
