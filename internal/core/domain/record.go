package domain

import (
	"strings"
	"unicode"
)

// Record is one archived document's identity and metadata.
// The checksum anchors its identity; identifiers accumulate every
// reference (URL, canonical ID, download link) known to denote it.
type Record struct {
	// Checksum is the hex SHA-256 digest of the document's raw bytes.
	// Non-empty and immutable once the record is persisted.
	Checksum string `json:"checksum" yaml:"checksum"`

	// Identifiers recognise the document independently of its content
	// hash. The set grows over time and never shrinks.
	Identifiers []string `json:"identifiers" yaml:"identifiers"`

	// Filename is the deterministic display name derived at import
	// time. Stable for the lifetime of the record.
	Filename string `json:"filename" yaml:"filename"`

	// Optional descriptive metadata.
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Authors   []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year      string   `json:"year,omitempty" yaml:"year,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
}

// Words excluded from the title fragment of a derived filename.
var titleStopWords = map[string]bool{
	"the": true, "all": true, "any": true, "a": true, "one": true,
	"on": true, "of": true, "in": true, "where": true, "when": true,
}

// Words excluded from the venue abbreviation of a derived filename.
var venueFillerWords = map[string]bool{
	"Annual": true, "Proceedings": true, "Symposium": true,
}

const (
	yearPlaceholder  = "____"
	titlePlaceholder = "untitled"
	venuePlaceholder = "L O C A L"
)

// DeriveFilename computes the deterministic display name of a record:
//
//	[AUTHORS] [YEAR] [TITLE] [VENUE] [CHECKSUM]
//
// Authors contribute their first two letters uppercased, the title a
// lowercased fragment with stop words removed and the first remaining
// token skipped, the publisher the initials of its capitalised words.
// Empty components are dropped; the rest are joined by single spaces.
// The checksum must already be assigned.
func (r Record) DeriveFilename() (string, error) {
	if r.Checksum == "" {
		return "", ErrNoChecksum
	}

	var authors strings.Builder
	for _, author := range r.Authors {
		runes := []rune(author)
		if len(runes) > 2 {
			runes = runes[:2]
		}
		authors.WriteString(strings.ToUpper(string(runes)))
	}

	year := r.Year
	if year == "" {
		year = yearPlaceholder
	}

	parts := []string{
		authors.String(),
		year,
		titleFragment(r.Title),
		venueAbbreviation(r.Publisher),
		r.Checksum,
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " "), nil
}

// titleFragment lowercases the title, drops stop words, skips the first
// remaining token and concatenates the rest with hyphens stripped.
func titleFragment(title string) string {
	var kept []string
	for _, word := range strings.Split(strings.ToLower(title), " ") {
		if word != "" && !titleStopWords[word] {
			kept = append(kept, word)
		}
	}
	fragment := ""
	if len(kept) > 1 {
		fragment = strings.Join(kept[1:], "")
	}
	fragment = strings.ReplaceAll(fragment, "-", "")
	if fragment == "" {
		return titlePlaceholder
	}
	return fragment
}

// venueAbbreviation keeps the first letter of each capitalised,
// mixed-case word of the publisher, excluding filler words. The
// placeholder used when no publisher is given collapses to nothing by
// construction, so the component is dropped from the joined name.
func venueAbbreviation(publisher string) string {
	if publisher == "" {
		publisher = venuePlaceholder
	}
	var initials strings.Builder
	for _, word := range strings.Split(publisher, " ") {
		if venueFillerWords[word] {
			continue
		}
		runes := []rune(word)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1]) {
			initials.WriteRune(runes[0])
		}
	}
	return initials.String()
}

// MergeIdentifiers unions extra identifiers into the record, preserving
// the order of the existing set and the encounter order of additions.
func (r *Record) MergeIdentifiers(extra ...string) {
	seen := make(map[string]bool, len(r.Identifiers))
	for _, id := range r.Identifiers {
		seen[id] = true
	}
	for _, id := range extra {
		if id != "" && !seen[id] {
			r.Identifiers = append(r.Identifiers, id)
			seen[id] = true
		}
	}
}

// SharesIdentifier reports whether the identifier sets of two records
// intersect non-trivially.
func (r Record) SharesIdentifier(other Record) bool {
	set := make(map[string]bool, len(r.Identifiers))
	for _, id := range r.Identifiers {
		set[id] = true
	}
	for _, id := range other.Identifiers {
		if set[id] {
			return true
		}
	}
	return false
}
