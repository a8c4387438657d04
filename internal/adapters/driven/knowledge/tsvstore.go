// Package knowledge persists url to citation-anchor bindings in a
// tab-separated sidecar file, one binding per line: url, key, tag.
package knowledge

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

// Ensure TSVStore implements the interface.
var _ driven.KnowledgeStore = (*TSVStore)(nil)

// TSVStore is the file-backed knowledge store. Every call reads or
// rewrites the whole file; the sidecar stays small enough that this is
// never a concern.
type TSVStore struct {
	path string
}

// New creates a store over the sidecar file at path.
func New(path string) *TSVStore {
	return &TSVStore{path: path}
}

// Lookup returns the anchor recorded for url, or domain.ErrNotFound.
func (s *TSVStore) Lookup(url string) (driven.Anchor, error) {
	bindings, _, err := s.read()
	if err != nil {
		return driven.Anchor{}, err
	}
	anchor, ok := bindings[url]
	if !ok {
		return driven.Anchor{}, fmt.Errorf("%w: no anchor for %q", domain.ErrNotFound, url)
	}
	return anchor, nil
}

// Record binds url to anchor, replacing any previous binding. The line
// order of unrelated bindings is preserved.
func (s *TSVStore) Record(url string, anchor driven.Anchor) error {
	bindings, order, err := s.read()
	if err != nil {
		return err
	}
	if _, known := bindings[url]; !known {
		order = append(order, url)
	}
	bindings[url] = anchor

	var sb strings.Builder
	for _, u := range order {
		a := bindings[u]
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", u, a.Key, a.Tag)
	}
	return os.WriteFile(s.path, []byte(sb.String()), 0o644)
}

// read loads all bindings plus their line order. A missing file is an
// empty store.
func (s *TSVStore) read() (map[string]driven.Anchor, []string, error) {
	bindings := make(map[string]driven.Anchor)
	var order []string

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return bindings, order, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		url := fields[0]
		if _, known := bindings[url]; !known {
			order = append(order, url)
		}
		bindings[url] = driven.Anchor{Key: fields[1], Tag: fields[2]}
	}
	return bindings, order, scanner.Err()
}
