package driven

import "github.com/aluminium-labs/akl/internal/core/domain"

// LibraryStore persists the archive's record list. Load must be
// tolerant of an absent or empty backing resource and must ensure the
// storage layout (raw originals, derivatives, cache, record resource)
// exists. Save rewrites the whole resource; there are no partial
// updates.
type LibraryStore interface {
	// Load binds a Library to a storage root, creating the directory
	// layout when missing.
	Load(root string) (*domain.Library, error)

	// Save serialises the full in-memory record list back to the
	// library's record resource, overwriting it.
	Save(lib *domain.Library) error
}
