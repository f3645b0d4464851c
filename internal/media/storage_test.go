package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)

	headers := buildHeaders(t,
		fakeFile{"photo.png", "image/png", pngHeader},
		fakeFile{"clip.mp4", "video/mp4", mp4Header},
	)

	paths, err := storage.Store(headers)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for i, p := range paths {
		assert.True(t, strings.HasPrefix(p, PublicPrefix), p)
		filename := strings.TrimPrefix(p, PublicPrefix)
		assert.True(t, strings.HasSuffix(filename, "_"+headers[i].Filename), filename)

		data, err := os.ReadFile(filepath.Join(dir, filename))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}

	storage.Delete(paths)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreEmptyBatch(t *testing.T) {
	storage := NewStorage(t.TempDir())

	paths, err := storage.Store(nil)
	require.NoError(t, err)
	assert.Nil(t, paths)
}

func TestDeleteIgnoresForeignPaths(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)

	keep := filepath.Join(dir, "keep.png")
	require.NoError(t, os.WriteFile(keep, pngHeader, 0o644))

	// Paths outside the public prefix and already-missing files are skipped.
	storage.Delete([]string{"/etc/passwd", PublicPrefix + "missing.png", "", "keep.png"})

	_, err := os.Stat(keep)
	assert.NoError(t, err)
}
