package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

func TestLoad_CreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "archive")

	lib, err := NewLibraryStore().Load(root)
	require.NoError(t, err)

	assert.Empty(t, lib.Records)
	for _, dir := range []string{lib.RawDir(), lib.EditDir(), lib.CacheDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewLibraryStore()

	lib, err := store.Load(root)
	require.NoError(t, err)

	lib.Records = append(lib.Records, domain.Record{
		Checksum:    "abc123",
		Identifiers: []string{"arXiv:2001.00001", "https://example.org/p.pdf"},
		Filename:    "AL 2020 paper abc123",
		Title:       "A Paper",
		Authors:     []string{"Alice"},
		Year:        "2020",
		Publisher:   "Example Press",
	})
	require.NoError(t, store.Save(lib))

	reloaded, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, lib.Records, reloaded.Records)
}

func TestLoad_EmptyIndexFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.IndexFile), nil, 0o644))

	lib, err := NewLibraryStore().Load(root)
	require.NoError(t, err)
	assert.Empty(t, lib.Records)
}

func TestLoad_MalformedIndex(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.IndexFile), []byte(":\tnot yaml"), 0o644))

	_, err := NewLibraryStore().Load(root)
	assert.Error(t, err)
}

func TestSave_OverwritesWholeIndex(t *testing.T) {
	root := t.TempDir()
	store := NewLibraryStore()

	lib, err := store.Load(root)
	require.NoError(t, err)
	lib.Records = []domain.Record{{Checksum: "one"}, {Checksum: "two"}}
	require.NoError(t, store.Save(lib))

	lib.Records = lib.Records[:1]
	require.NoError(t, store.Save(lib))

	reloaded, err := store.Load(root)
	require.NoError(t, err)
	require.Len(t, reloaded.Records, 1)
	assert.Equal(t, "one", reloaded.Records[0].Checksum)

	// No temp files linger after a save.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}
