package yamlfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/logger"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is the YAML-file implementation of driven.LibraryStore.
type LibraryStore struct{}

// NewLibraryStore creates a YAML-backed library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{}
}

// Load binds a library to root, creating the directory layout when
// missing. An absent or empty index yields an empty record list.
func (s *LibraryStore) Load(root string) (*domain.Library, error) {
	lib := &domain.Library{Root: root}

	for _, dir := range []string{root, lib.RawDir(), lib.EditDir(), lib.CacheDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage layout: %w", err)
		}
	}

	data, err := os.ReadFile(lib.IndexPath())
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no index at %s, starting empty", lib.IndexPath())
			return lib, nil
		}
		return nil, fmt.Errorf("reading index: %w", err)
	}

	if err := yaml.Unmarshal(data, &lib.Records); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	logger.Debug("loaded %d records from %s", len(lib.Records), lib.IndexPath())
	return lib, nil
}

// Save serialises the full record list back to the index resource. The
// write goes to a uniquely named sibling file first and is renamed into
// place, so a crash never leaves a truncated index behind.
func (s *LibraryStore) Save(lib *domain.Library) error {
	data, err := yaml.Marshal(lib.Records)
	if err != nil {
		return fmt.Errorf("serialising index: %w", err)
	}

	tmp := filepath.Join(lib.Root, ".index."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err := os.Rename(tmp, lib.IndexPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing index: %w", err)
	}
	logger.Debug("saved %d records to %s", len(lib.Records), lib.IndexPath())
	return nil
}
