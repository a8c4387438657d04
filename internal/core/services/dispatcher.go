package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/core/ports/driven"
	"github.com/aluminium-labs/akl/internal/core/ports/driving"
	"github.com/aluminium-labs/akl/internal/logger"
)

// Ensure DispatcherService implements the interface.
var _ driving.Dispatcher = (*DispatcherService)(nil)

// DispatcherService orchestrates Open, Import and Cite against the
// record store, the resolver, the rewriter and the collaborators.
type DispatcherService struct {
	store     driven.LibraryStore
	fetcher   driven.Fetcher
	rewriter  driven.Rewriter
	viewer    driven.Viewer
	opener    driven.Opener
	clipboard driven.Clipboard
}

// NewDispatcher creates a dispatcher service. The viewer and opener
// strategies are resolved once at process start and injected here.
func NewDispatcher(
	store driven.LibraryStore,
	fetcher driven.Fetcher,
	rewriter driven.Rewriter,
	viewer driven.Viewer,
	opener driven.Opener,
	clipboard driven.Clipboard,
) *DispatcherService {
	return &DispatcherService{
		store:     store,
		fetcher:   fetcher,
		rewriter:  rewriter,
		viewer:    viewer,
		opener:    opener,
		clipboard: clipboard,
	}
}

// Dispatch routes a decoded command to its handler. The command set is
// closed; anything else is a programming error surfaced as one.
func (s *DispatcherService) Dispatch(ctx context.Context, cmd domain.Command) error {
	switch c := cmd.(type) {
	case domain.OpenCommand:
		return s.Open(ctx, c)
	case domain.ImportCommand:
		_, err := s.Import(ctx, c)
		return err
	case domain.CiteCommand:
		return s.Cite(ctx, c)
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
	}
}

// Open resolves the reference and shows the corresponding derivative,
// building it through the rewriter only when absent. Unresolved local
// files are rewritten into the content-hash cache; anything else falls
// back to the system's default opener.
func (s *DispatcherService) Open(ctx context.Context, cmd domain.OpenCommand) (err error) {
	session, err := Begin(s.store, cmd.StorageRoot)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := session.Close(); err == nil {
			err = cerr
		}
	}()
	lib := session.Lib

	if rec := ResolveReference(cmd.Reference, lib); rec != nil {
		logger.Debug("%s resolved to record %s", cmd.Reference, rec.Filename)
		derivative := lib.DerivativePath(*rec)
		if err := s.buildIfAbsent(lib.RawPath(*rec), derivative, cmd); err != nil {
			return err
		}
		return s.viewer.Show(derivative, cmd.Dest, cmd.Page)
	}

	if info, statErr := os.Stat(cmd.Reference); statErr == nil && !info.IsDir() {
		logger.Debug("%s is a foreign local file; using the cache path", cmd.Reference)
		sum, err := domain.ChecksumFile(cmd.Reference)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", cmd.Reference, err)
		}
		cached := lib.CachePath(sum)
		if err := s.buildIfAbsent(cmd.Reference, cached, cmd); err != nil {
			return err
		}
		return s.viewer.Show(cached, cmd.Dest, cmd.Page)
	}

	logger.Debug("%s is not in the library; delegating to the default opener", cmd.Reference)
	return s.opener.OpenDefault(cmd.Reference)
}

// buildIfAbsent memoizes derivative construction by existence: a
// derivative is never rebuilt once present.
func (s *DispatcherService) buildIfAbsent(source, target string, cmd domain.OpenCommand) error {
	if _, err := os.Stat(target); err == nil {
		logger.Debug("derivative %s already built", target)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking derivative %s: %w", target, err)
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}
	rewritten, err := s.rewriter.Rewrite(raw, cmd)
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", source, err)
	}
	if err := os.WriteFile(target, rewritten, 0o644); err != nil {
		return fmt.Errorf("writing derivative %s: %w", target, err)
	}
	logger.Info("built derivative %s", target)
	return nil
}

// Import brings a document into the library. A record similar to the
// candidate short-circuits the download entirely; a checksum collision
// discovered after download merges identifiers without touching the
// raw store. Only a genuinely new document is written and appended.
func (s *DispatcherService) Import(ctx context.Context, cmd domain.ImportCommand) (rec *domain.Record, err error) {
	session, err := Begin(s.store, cmd.StorageRoot)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); err == nil {
			err = cerr
		}
	}()
	lib := session.Lib

	if similar := lib.FindSimilar(cmd.Record); similar != nil {
		logger.Warn("import of %s matches existing record %s; merging identifiers", cmd.DownloadRef, similar.Filename)
		similar.MergeIdentifiers(cmd.Record.Identifiers...)
		merged := *similar
		if err := session.Close(); err != nil {
			return nil, err
		}
		if len(merged.Identifiers) > 0 {
			if err := s.Open(ctx, domain.OpenCommand{Reference: merged.Identifiers[0], StorageRoot: cmd.StorageRoot}); err != nil {
				return nil, err
			}
		}
		return &merged, nil
	}

	content, err := s.obtain(ctx, cmd.DownloadRef)
	if err != nil {
		return nil, err
	}

	sum := domain.ChecksumBytes(content)
	if dups := lib.DuplicatesByChecksum(sum); len(dups) == 1 {
		logger.Info("downloaded content of %s collides with record %s", cmd.DownloadRef, dups[0].Filename)
		dups[0].MergeIdentifiers(cmd.Record.Identifiers...)
		dups[0].MergeIdentifiers(cmd.DownloadRef)
		merged := *dups[0]
		return &merged, nil
	}

	candidate := cmd.Record
	candidate.Checksum = sum
	name, err := candidate.DeriveFilename()
	if err != nil {
		return nil, err
	}
	candidate.Filename = name

	if err := os.WriteFile(lib.RawPath(candidate), content, 0o644); err != nil {
		return nil, fmt.Errorf("writing original %s: %w", name, err)
	}
	lib.Records = append(lib.Records, candidate)
	logger.Info("%s added to the library as %q", sum, name)

	if err := session.Close(); err != nil {
		return nil, err
	}

	reference := cmd.DownloadRef
	if len(candidate.Identifiers) > 0 {
		reference = candidate.Identifiers[0]
	}
	if err := s.Open(ctx, domain.OpenCommand{Reference: reference, StorageRoot: cmd.StorageRoot}); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// obtain reads the download reference from the local filesystem when it
// names an existing file, and fetches it otherwise. A failed fetch
// aborts the import with no side effects.
func (s *DispatcherService) obtain(ctx context.Context, downloadRef string) ([]byte, error) {
	if info, err := os.Stat(downloadRef); err == nil && !info.IsDir() {
		logger.Debug("%s is a local file", downloadRef)
		content, err := os.ReadFile(downloadRef)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", downloadRef, err)
		}
		return content, nil
	}

	logger.Debug("fetching %s", downloadRef)
	content, err := s.fetcher.Fetch(ctx, downloadRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, downloadRef, err)
	}
	return content, nil
}

// Cite copies a citation string for the destination to the clipboard.
// No store mutation.
func (s *DispatcherService) Cite(_ context.Context, cmd domain.CiteCommand) error {
	citation := fmt.Sprintf("\\url{%s?page=%d&dest=%s}", cmd.Reference, cmd.Page, cmd.Dest)
	logger.Debug("copying citation %s", citation)
	return s.clipboard.Copy(citation)
}

// ResolvePath reports the derivative path a reference resolves to.
func (s *DispatcherService) ResolvePath(_ context.Context, reference, storageRoot string) (path string, err error) {
	session, err := Begin(s.store, storageRoot)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := session.Close(); err == nil {
			err = cerr
		}
	}()

	rec := ResolveReference(reference, session.Lib)
	if rec == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, reference)
	}
	return session.Lib.DerivativePath(*rec), nil
}

// List returns every record's derivative path in record order.
func (s *DispatcherService) List(_ context.Context, storageRoot string) (paths []string, err error) {
	session, err := Begin(s.store, storageRoot)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); err == nil {
			err = cerr
		}
	}()

	for _, rec := range session.Lib.Records {
		paths = append(paths, session.Lib.DerivativePath(rec))
	}
	return paths, nil
}

// Convert rewrites a local document into output without touching the
// library.
func (s *DispatcherService) Convert(_ context.Context, source, output, storageRoot string) error {
	raw, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}
	rewritten, err := s.rewriter.Rewrite(raw, domain.OpenCommand{Reference: source, StorageRoot: storageRoot})
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", source, err)
	}
	if err := os.WriteFile(output, rewritten, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}
