// Package driving defines the interfaces that external actors (the
// CLI, the protocol handler, the companion editor tool) use to drive
// the application. Implementations live in internal/core/services.
package driving

import (
	"context"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

// Dispatcher orchestrates the three protocol commands against the
// record store, the resolver, the rewriter and the collaborators, plus
// the auxiliary library operations exposed by the CLI.
type Dispatcher interface {
	// Dispatch routes a decoded command to Open, Import or Cite.
	Dispatch(ctx context.Context, cmd domain.Command) error

	// Open resolves a reference and shows its derivative, building it
	// on first use; unresolved local files go through the cache path,
	// anything else to the default opener.
	Open(ctx context.Context, cmd domain.OpenCommand) error

	// Import brings a document into the library, deduplicating by
	// similarity before download and by checksum after.
	Import(ctx context.Context, cmd domain.ImportCommand) (*domain.Record, error)

	// Cite places a citation string for a destination on the clipboard.
	Cite(ctx context.Context, cmd domain.CiteCommand) error

	// ResolvePath returns the derivative path a reference resolves to.
	ResolvePath(ctx context.Context, reference, storageRoot string) (string, error)

	// List returns every record's derivative path in record order.
	List(ctx context.Context, storageRoot string) ([]string, error)

	// Convert rewrites a local document into an explicit output path
	// without touching the library.
	Convert(ctx context.Context, source, output, storageRoot string) error
}
