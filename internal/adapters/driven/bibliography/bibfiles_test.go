package bibliography

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

const sampleBib = `@article{smith2020,
  title = {A {Great} Result},
  author = {Smith, Jane},
  year = {2020},
  url = {https://example.org/smith.pdf},
}

@inproceedings{doe2019,
  title = {Another Result},
  author = {Doe, John},
  year = {2019},
  doi = {10.1000/doe},
}
`

func writeBib(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEntries_WalksNestedDirectories(t *testing.T) {
	root := t.TempDir()
	writeBib(t, root, "refs.bib", sampleBib)
	writeBib(t, root, "chapters/ch1/local.bib", "@misc{note1,\n  title = {A Note},\n}\n")

	entries, err := New().Entries(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	assert.ElementsMatch(t, []string{"smith2020", "doe2019", "note1"}, keys)
}

func TestEntries_FieldsAndBraceStripping(t *testing.T) {
	root := t.TempDir()
	writeBib(t, root, "refs.bib", sampleBib)

	entries, err := New().Entries(root)
	require.NoError(t, err)

	var smith driven.BibEntry
	for _, e := range entries {
		if e.Key == "smith2020" {
			smith = e
		}
	}
	assert.Equal(t, "A Great Result", smith.Title)
	assert.Equal(t, "Smith, Jane", smith.Authors)
	assert.Equal(t, "2020", smith.Year)
	assert.Equal(t, "https://example.org/smith.pdf", smith.URL)
}

func TestEntries_SkipsUnparsableFiles(t *testing.T) {
	root := t.TempDir()
	writeBib(t, root, "good.bib", sampleBib)
	writeBib(t, root, "bad.bib", "@article{broken")

	entries, err := New().Entries(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEntries_EmptyRoot(t *testing.T) {
	entries, err := New().Entries(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBibEntry_Link(t *testing.T) {
	assert.Equal(t, "https://x.org/p", driven.BibEntry{URL: "https://x.org/p", DOI: "10.1/x"}.Link())
	assert.Equal(t, "https://dx.doi.org/10.1/x", driven.BibEntry{DOI: "10.1/x"}.Link())
	assert.Equal(t, "", driven.BibEntry{}.Link())
}
