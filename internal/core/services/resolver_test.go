package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

func TestResolveReference_ByLocalFileChecksum(t *testing.T) {
	content := []byte("the document bytes")
	path := filepath.Join(t.TempDir(), "paper.pdf")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	lib := &domain.Library{Records: []domain.Record{
		{Checksum: domain.ChecksumBytes(content), Filename: "match"},
		{Checksum: "other", Filename: "other"},
	}}

	rec := ResolveReference(path, lib)
	require.NotNil(t, rec)
	assert.Equal(t, "match", rec.Filename)
}

func TestResolveReference_ChecksumAmbiguityFallsThrough(t *testing.T) {
	content := []byte("duplicated bytes")
	path := filepath.Join(t.TempDir(), "paper.pdf")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum := domain.ChecksumBytes(content)
	lib := &domain.Library{Records: []domain.Record{
		{Checksum: sum, Filename: "first"},
		{Checksum: sum, Filename: "second"},
	}}

	assert.Nil(t, ResolveReference(path, lib))
}

func TestResolveReference_ByNormalisedIdentifier(t *testing.T) {
	lib := &domain.Library{Records: []domain.Record{
		{Identifiers: []string{"arXiv:2001.00001"}, Filename: "match"},
	}}

	rec := ResolveReference("https://arxiv.org/pdf/2001.00001", lib)
	require.NotNil(t, rec)
	assert.Equal(t, "match", rec.Filename)
}

func TestResolveReference_IdentifierAmbiguity(t *testing.T) {
	lib := &domain.Library{Records: []domain.Record{
		{Identifiers: []string{"doi:10.1/x"}, Filename: "first"},
		{Identifiers: []string{"doi:10.1/x"}, Filename: "second"},
	}}

	assert.Nil(t, ResolveReference("https://doi.org/10.1/x", lib))
}

func TestResolveReference_Unknown(t *testing.T) {
	lib := &domain.Library{}

	assert.Nil(t, ResolveReference("https://example.org/nope.pdf", lib))
}
