package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

func TestOpen_LibraryRecordBuildsDerivativeOnce(t *testing.T) {
	h := newHarness(t)
	raw := []byte("%PDF raw bytes")
	rec := domain.Record{
		Checksum:    domain.ChecksumBytes(raw),
		Identifiers: []string{"doi:10.1/x"},
		Filename:    "XX 2020 paper abc",
	}
	h.seedRecord(t, rec, raw)

	open := domain.OpenCommand{Reference: "https://doi.org/10.1/x", StorageRoot: h.root}
	require.NoError(t, h.svc.Open(context.Background(), open))

	derivative := filepath.Join(h.root, domain.EditDirName, rec.Filename)
	assert.Equal(t, derivative, h.viewer.path)
	content, err := os.ReadFile(derivative)
	require.NoError(t, err)
	assert.Equal(t, "rewritten:%PDF raw bytes", string(content))
	assert.Equal(t, 1, h.rewriter.calls)

	// A second open reuses the existing derivative.
	require.NoError(t, h.svc.Open(context.Background(), open))
	assert.Equal(t, 1, h.rewriter.calls)
}

func TestOpen_PassesNavigationToViewer(t *testing.T) {
	h := newHarness(t)
	raw := []byte("raw")
	rec := domain.Record{
		Checksum:    domain.ChecksumBytes(raw),
		Identifiers: []string{"doi:10.1/x"},
		Filename:    "XX 2020 paper abc",
	}
	h.seedRecord(t, rec, raw)

	dest := "fig:1"
	page := 3
	open := domain.OpenCommand{Reference: "doi:10.1/x", StorageRoot: h.root, Dest: &dest, Page: &page}
	require.NoError(t, h.svc.Open(context.Background(), open))

	require.NotNil(t, h.viewer.dest)
	assert.Equal(t, "fig:1", *h.viewer.dest)
	require.NotNil(t, h.viewer.page)
	assert.Equal(t, 3, *h.viewer.page)
}

func TestOpen_ForeignLocalFileUsesCache(t *testing.T) {
	h := newHarness(t)
	foreign := filepath.Join(t.TempDir(), "foreign.pdf")
	content := []byte("not in the library")
	require.NoError(t, os.WriteFile(foreign, content, 0o644))

	open := domain.OpenCommand{Reference: foreign, StorageRoot: h.root}
	require.NoError(t, h.svc.Open(context.Background(), open))

	cached := filepath.Join(h.root, domain.CacheDirName, domain.ChecksumBytes(content)+".pdf")
	assert.Equal(t, cached, h.viewer.path)
	assert.FileExists(t, cached)
	assert.Empty(t, h.opener.reference)
}

func TestOpen_UnknownReferenceFallsBackToDefaultOpener(t *testing.T) {
	h := newHarness(t)

	open := domain.OpenCommand{Reference: "https://example.org/talk", StorageRoot: h.root}
	require.NoError(t, h.svc.Open(context.Background(), open))

	assert.Equal(t, "https://example.org/talk", h.opener.reference)
	assert.Empty(t, h.viewer.path)
}

func TestImport_NewDocument(t *testing.T) {
	h := newHarness(t)
	body := []byte("downloaded bytes")
	h.fetcher.responses["https://arxiv.org/pdf/2001.00001"] = body

	imported, err := h.svc.Import(context.Background(), domain.ImportCommand{
		DownloadRef: "https://arxiv.org/pdf/2001.00001",
		Record: domain.Record{
			Identifiers: []string{"arXiv:2001.00001"},
			Title:       "Monadic Theories of Algebra",
			Authors:     []string{"Albo", "Bruno"},
			Year:        "1975",
			Publisher:   "Logic Conference Series",
		},
		StorageRoot: h.root,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ChecksumBytes(body), imported.Checksum)
	expected := *imported
	name, err := expected.DeriveFilename()
	require.NoError(t, err)
	assert.Equal(t, name, imported.Filename)

	// Raw bytes written, record persisted, derivative shown.
	rawPath := filepath.Join(h.root, domain.RawDirName, imported.Filename)
	written, err := os.ReadFile(rawPath)
	require.NoError(t, err)
	assert.Equal(t, body, written)

	records := h.store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, imported.Checksum, records[0].Checksum)
	assert.Equal(t, filepath.Join(h.root, domain.EditDirName, imported.Filename), h.viewer.path)
}

func TestImport_SimilarRecordSkipsDownload(t *testing.T) {
	h := newHarness(t)
	raw := []byte("already here")
	rec := domain.Record{
		Checksum:    domain.ChecksumBytes(raw),
		Identifiers: []string{"doi:10.1/x"},
		Filename:    "XX 2020 paper abc",
	}
	h.seedRecord(t, rec, raw)

	imported, err := h.svc.Import(context.Background(), domain.ImportCommand{
		DownloadRef: "https://mirror.example.org/paper.pdf",
		Record:      domain.Record{Identifiers: []string{"doi:10.1/x", "arXiv:2001.00001"}},
		StorageRoot: h.root,
	})
	require.NoError(t, err)

	assert.Zero(t, h.fetcher.calls)
	assert.Equal(t, []string{"doi:10.1/x", "arXiv:2001.00001"}, imported.Identifiers)

	records := h.store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, imported.Identifiers, records[0].Identifiers)
}

func TestImport_ChecksumCollisionMergesIdentifiers(t *testing.T) {
	h := newHarness(t)
	body := []byte("same bytes either way")
	h.fetcher.responses["https://mirror.example.org/paper.pdf"] = body

	rec := domain.Record{
		Checksum:    domain.ChecksumBytes(body),
		Identifiers: []string{"doi:10.1/x"},
		Filename:    "XX 2020 paper abc",
	}
	h.seedRecord(t, rec, body)

	imported, err := h.svc.Import(context.Background(), domain.ImportCommand{
		DownloadRef: "https://mirror.example.org/paper.pdf",
		Record:      domain.Record{Identifiers: []string{"arXiv:2001.00001"}},
		StorageRoot: h.root,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, h.fetcher.calls)
	assert.Contains(t, imported.Identifiers, "doi:10.1/x")
	assert.Contains(t, imported.Identifiers, "arXiv:2001.00001")
	assert.Contains(t, imported.Identifiers, "https://mirror.example.org/paper.pdf")

	records := h.store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "XX 2020 paper abc", records[0].Filename)
}

func TestImport_FetchFailureLeavesLibraryUntouched(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Import(context.Background(), domain.ImportCommand{
		DownloadRef: "https://gone.example.org/paper.pdf",
		Record:      domain.Record{Identifiers: []string{"doi:10.1/x"}},
		StorageRoot: h.root,
	})

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Empty(t, h.store.Records())
}

func TestCite_CopiesCitationTemplate(t *testing.T) {
	h := newHarness(t)

	err := h.svc.Cite(context.Background(), domain.CiteCommand{
		Reference:   "doi:10.1/x",
		StorageRoot: h.root,
		Dest:        "fig:1",
		Page:        2,
	})
	require.NoError(t, err)

	assert.Equal(t, "\\url{doi:10.1/x?page=2&dest=fig:1}", h.clipboard.copied)
}

func TestResolvePath(t *testing.T) {
	h := newHarness(t)
	raw := []byte("raw")
	rec := domain.Record{
		Checksum:    domain.ChecksumBytes(raw),
		Identifiers: []string{"doi:10.1/x"},
		Filename:    "XX 2020 paper abc",
	}
	h.seedRecord(t, rec, raw)

	path, err := h.svc.ResolvePath(context.Background(), "doi:10.1/x", h.root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.root, domain.EditDirName, rec.Filename), path)

	_, err = h.svc.ResolvePath(context.Background(), "doi:10.1/missing", h.root)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_ReturnsDerivativePathsInOrder(t *testing.T) {
	h := newHarness(t)
	h.store.Seed(
		domain.Record{Checksum: "a", Filename: "first"},
		domain.Record{Checksum: "b", Filename: "second"},
	)

	paths, err := h.svc.List(context.Background(), h.root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(h.root, domain.EditDirName, "first"),
		filepath.Join(h.root, domain.EditDirName, "second"),
	}, paths)
}

func TestConvert_WritesRewrittenOutput(t *testing.T) {
	h := newHarness(t)
	source := filepath.Join(t.TempDir(), "in.pdf")
	output := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, os.WriteFile(source, []byte("original"), 0o644))

	require.NoError(t, h.svc.Convert(context.Background(), source, output, h.root))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "rewritten:original", string(content))
	assert.Empty(t, h.store.Records())
}

func TestDispatch_RoutesByCommandType(t *testing.T) {
	h := newHarness(t)

	err := h.svc.Dispatch(context.Background(), domain.CiteCommand{
		Reference: "doi:10.1/x", StorageRoot: h.root, Dest: "d", Page: 0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, h.clipboard.copied)
}
