package services

import (
	"os"

	"github.com/aluminium-labs/akl/internal/core/domain"
	"github.com/aluminium-labs/akl/internal/logger"
)

// ResolveReference maps an arbitrary reference to at most one record,
// trying in strict order: content checksum of an existing local file,
// then normalized identifier. Ambiguity at either step means no match;
// the caller decides what to do with an unresolved reference.
func ResolveReference(reference string, lib *domain.Library) *domain.Record {
	if info, err := os.Stat(reference); err == nil && !info.IsDir() {
		if sum, err := domain.ChecksumFile(reference); err == nil {
			if dups := lib.DuplicatesByChecksum(sum); len(dups) == 1 {
				logger.Debug("resolved %s by content checksum", reference)
				return dups[0]
			}
		}
	}

	id := domain.NormalizeIdentifier(reference)
	logger.Debug("normalised %s to %s", reference, id)
	return lib.FindByIdentifier(id)
}
