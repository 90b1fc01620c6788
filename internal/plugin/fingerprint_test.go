package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.so")
	require.NoError(t, os.WriteFile(path, []byte("library bytes"), 0o644))

	sum, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Len(t, sum, 64, "BLAKE3-256 hex digest")

	again, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, sum, again)

	other := filepath.Join(dir, "other.so")
	require.NoError(t, os.WriteFile(other, []byte("different bytes"), 0o644))
	otherSum, err := Fingerprint(other)
	require.NoError(t, err)
	assert.NotEqual(t, sum, otherSum)
}

func TestFingerprintMissingFile(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "absent.so"))
	assert.Error(t, err)
}
