// Package bibliography discovers BibTeX entries under a TeX project
// root.
package bibliography

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nickng/bibtex"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/logger"
)

// Ensure FileBibliography implements the interface.
var _ driven.Bibliography = (*FileBibliography)(nil)

// FileBibliography collects entries from every .bib file below a root
// directory, however deeply nested.
type FileBibliography struct{}

// New creates a file-walking bibliography.
func New() *FileBibliography {
	return &FileBibliography{}
}

// Entries parses every **/*.bib under root and returns their entries
// in file order. A file that fails to parse is skipped with a warning
// rather than failing the whole scan.
func (b *FileBibliography) Entries(root string) ([]driven.BibEntry, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.bib")
	if err != nil {
		return nil, err
	}

	var entries []driven.BibEntry
	for _, match := range matches {
		path := filepath.Join(root, match)
		parsed, err := parseFile(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		entries = append(entries, parsed...)
	}
	return entries, nil
}

func parseFile(path string) ([]driven.BibEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bib, err := bibtex.Parse(f)
	if err != nil {
		return nil, err
	}

	entries := make([]driven.BibEntry, 0, len(bib.Entries))
	for _, entry := range bib.Entries {
		entries = append(entries, driven.BibEntry{
			Key:     entry.CiteName,
			Title:   field(entry, "title"),
			Authors: field(entry, "author"),
			Year:    field(entry, "year"),
			URL:     field(entry, "url"),
			DOI:     field(entry, "doi"),
		})
	}
	return entries, nil
}

// field extracts a BibTeX field with brace clutter stripped.
func field(entry *bibtex.BibEntry, name string) string {
	value, ok := entry.Fields[name]
	if !ok {
		return ""
	}
	s := value.String()
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return strings.TrimSpace(s)
}
