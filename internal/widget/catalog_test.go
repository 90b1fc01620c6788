package widget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWidget(t *testing.T, root, id, manifest string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "deskulpt.json"), []byte(manifest), 0o644))
	}
}

func TestRescan(t *testing.T) {
	root := t.TempDir()
	writeWidget(t, root, "clock", `{"name":"Wall Clock","entry":"index.html"}`)
	writeWidget(t, root, "cpu", "")
	writeWidget(t, root, "broken", `{not json`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	c := NewCatalog(root)
	require.NoError(t, c.Rescan())

	ws := c.Widgets()
	require.Len(t, ws, 3, "files are ignored, malformed manifests fall back to defaults")
	assert.Equal(t, "broken", ws[0].ID)
	assert.Equal(t, "broken", ws[0].Name)
	assert.Equal(t, "Wall Clock", ws[1].Name)
	assert.Equal(t, "index.html", ws[1].Entry)
	assert.Equal(t, "cpu", ws[2].Name)
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	writeWidget(t, root, "clock", "")

	c := NewCatalog(root)
	require.NoError(t, c.Rescan())

	dir, err := c.Dir("clock")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "clock", filepath.Base(dir))

	_, err = c.Dir("ghost")
	assert.ErrorIs(t, err, ErrWidgetNotFound)
}

func TestRescanReplacesSet(t *testing.T) {
	root := t.TempDir()
	writeWidget(t, root, "old", "")

	c := NewCatalog(root)
	require.NoError(t, c.Rescan())
	require.Len(t, c.Widgets(), 1)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "old")))
	writeWidget(t, root, "new", "")
	require.NoError(t, c.Rescan())

	ws := c.Widgets()
	require.Len(t, ws, 1)
	assert.Equal(t, "new", ws[0].ID)
	_, err := c.Dir("old")
	assert.ErrorIs(t, err, ErrWidgetNotFound)
}

func TestRescanMissingRoot(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, c.Rescan())
}
