package driven

import (
	"context"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

// Fetcher downloads raw document bytes. Any non-success status is an
// error; retry policy, if any, belongs to the implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Viewer shows a document, optionally jumping to a named destination or
// a page. Blocking: returns when the external viewer exits.
type Viewer interface {
	Show(path string, dest *string, page *int) error
}

// Opener hands a reference the archive cannot resolve to the operating
// system's default handler.
type Opener interface {
	OpenDefault(reference string) error
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	Copy(text string) error
	Read() (string, error)
}

// Rewriter builds the annotated derivative of a document: every link
// target rewritten through the command protocol, every internal
// destination promoted to a citation anchor. Pure bytes to bytes.
type Rewriter interface {
	Rewrite(raw []byte, open domain.OpenCommand) ([]byte, error)
}

// BibEntry is one bibliography entry discovered under a TeX root.
type BibEntry struct {
	Key     string
	Title   string
	Authors string
	Year    string
	URL     string
	DOI     string
}

// Link returns the entry's best opening reference: the explicit URL if
// present, otherwise a DOI resolver URL, otherwise empty.
func (e BibEntry) Link() string {
	if e.URL != "" {
		return e.URL
	}
	if e.DOI != "" {
		return "https://dx.doi.org/" + e.DOI
	}
	return ""
}

// Bibliography discovers and parses bibliography entries under a root
// directory.
type Bibliography interface {
	Entries(root string) ([]BibEntry, error)
}

// Anchor is a knowledge-sidecar entry: the citation key and tag bound
// to a URL, used to shortcut repeat citation lookups.
type Anchor struct {
	Key string
	Tag string
}

// KnowledgeStore persists url -> anchor pairs.
type KnowledgeStore interface {
	// Lookup returns the anchor for a URL, or domain.ErrNotFound.
	Lookup(url string) (Anchor, error)

	// Record binds a URL to an anchor, replacing a previous binding.
	Record(url string, anchor Anchor) error
}
