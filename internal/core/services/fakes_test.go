package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/adapters/driven/storage/memory"
	"github.com/aluminium-labs/akl/internal/core/domain"
)

type fakeFetcher struct {
	responses map[string][]byte
	calls     int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls++
	body, ok := f.responses[url]
	if !ok {
		return nil, errors.New("no such url")
	}
	return body, nil
}

type fakeRewriter struct {
	calls int
}

func (f *fakeRewriter) Rewrite(raw []byte, _ domain.OpenCommand) ([]byte, error) {
	f.calls++
	return append([]byte("rewritten:"), raw...), nil
}

type fakeViewer struct {
	path string
	dest *string
	page *int
}

func (f *fakeViewer) Show(path string, dest *string, page *int) error {
	f.path = path
	f.dest = dest
	f.page = page
	return nil
}

type fakeOpener struct {
	reference string
}

func (f *fakeOpener) OpenDefault(reference string) error {
	f.reference = reference
	return nil
}

type fakeClipboard struct {
	copied string
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = text
	return nil
}

func (f *fakeClipboard) Read() (string, error) {
	return f.copied, nil
}

// harness bundles a dispatcher over fakes with an on-disk storage root.
type harness struct {
	root      string
	store     *memory.LibraryStore
	fetcher   *fakeFetcher
	rewriter  *fakeRewriter
	viewer    *fakeViewer
	opener    *fakeOpener
	clipboard *fakeClipboard
	svc       *DispatcherService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	root := t.TempDir()
	for _, dir := range []string{domain.RawDirName, domain.EditDirName, domain.CacheDirName} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	h := &harness{
		root:      root,
		store:     memory.NewLibraryStore(),
		fetcher:   &fakeFetcher{responses: map[string][]byte{}},
		rewriter:  &fakeRewriter{},
		viewer:    &fakeViewer{},
		opener:    &fakeOpener{},
		clipboard: &fakeClipboard{},
	}
	h.svc = NewDispatcher(h.store, h.fetcher, h.rewriter, h.viewer, h.opener, h.clipboard)
	return h
}

// seedRecord stores a record and writes its raw bytes to disk.
func (h *harness) seedRecord(t *testing.T, rec domain.Record, raw []byte) {
	t.Helper()

	lib := domain.Library{Root: h.root}
	require.NoError(t, os.WriteFile(lib.RawPath(rec), raw, 0o644))
	records := append(h.store.Records(), rec)
	h.store.Seed(records...)
}
