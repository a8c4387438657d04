package domain

import "path/filepath"

// Names of the persisted resources under a storage root.
const (
	IndexFile     = "index.yaml"
	RawDirName    = "raw"
	EditDirName   = "edit"
	CacheDirName  = "_cache"
	KnowledgeFile = "knowledge.tsv"
)

// Library is the full collection: a storage root plus the ordered
// record list persisted at the root's index resource. The only
// supported access pattern is load, mutate in memory, save whole.
type Library struct {
	Root    string
	Records []Record
}

// IndexPath returns the path of the persisted record list.
func (l *Library) IndexPath() string {
	return filepath.Join(l.Root, IndexFile)
}

// RawDir returns the directory holding immutable originals.
func (l *Library) RawDir() string {
	return filepath.Join(l.Root, RawDirName)
}

// EditDir returns the directory holding rewritten derivatives.
func (l *Library) EditDir() string {
	return filepath.Join(l.Root, EditDirName)
}

// CacheDir returns the directory holding content-hash-keyed rewrites
// of files that were never formally imported.
func (l *Library) CacheDir() string {
	return filepath.Join(l.Root, CacheDirName)
}

// RawPath returns where a record's original bytes live.
func (l *Library) RawPath(r Record) string {
	return filepath.Join(l.RawDir(), r.Filename)
}

// DerivativePath returns where a record's rewritten derivative lives.
func (l *Library) DerivativePath(r Record) string {
	return filepath.Join(l.EditDir(), r.Filename)
}

// CachePath returns the cache entry for a content checksum.
func (l *Library) CachePath(checksum string) string {
	return filepath.Join(l.CacheDir(), checksum+".pdf")
}

// DuplicatesByChecksum returns pointers to every record whose checksum
// equals sum, in record order.
func (l *Library) DuplicatesByChecksum(sum string) []*Record {
	var dups []*Record
	for i := range l.Records {
		if l.Records[i].Checksum == sum {
			dups = append(dups, &l.Records[i])
		}
	}
	return dups
}

// FindSimilar returns the single record sharing the candidate's
// checksum or intersecting its identifier set, if exactly one exists.
// Zero or several matches yield nil: ambiguity means no match.
func (l *Library) FindSimilar(candidate Record) *Record {
	var matches []*Record
	for i := range l.Records {
		r := &l.Records[i]
		if r.Checksum == candidate.Checksum || r.SharesIdentifier(candidate) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 1 {
		return matches[0]
	}
	return nil
}

// FindByIdentifier returns the single record whose identifier set
// contains id, if exactly one exists; nil otherwise.
func (l *Library) FindByIdentifier(id string) *Record {
	var matches []*Record
	for i := range l.Records {
		for _, known := range l.Records[i].Identifiers {
			if known == id {
				matches = append(matches, &l.Records[i])
				break
			}
		}
	}
	if len(matches) == 1 {
		return matches[0]
	}
	return nil
}
