package domain

import (
	"net/url"
	"strings"
)

// Canonical prefixes per identifier authority host. Canonicalisation is
// host-based string slicing of the URL path, not semantic parsing.
var identifierAuthorities = map[string]struct {
	prefix string
	strip  int
}{
	"arxiv.org":  {prefix: "arXiv:", strip: len("/abs/")},
	"doi.org":    {prefix: "doi:", strip: len("/")},
	"dx.doi.org": {prefix: "doi:", strip: len("/")},
}

// NormalizeIdentifier canonicalises a reference to a stable identifier.
// Web URLs whose host is a known academic identifier authority are
// rewritten to their short form; any other reference is its own
// canonical identifier. Total: never fails.
func NormalizeIdentifier(reference string) string {
	u, err := url.Parse(reference)
	if err != nil {
		return reference
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return reference
	}
	authority, ok := identifierAuthorities[strings.ToLower(u.Host)]
	if !ok {
		return reference
	}
	path := u.Path
	if len(path) < authority.strip {
		return authority.prefix
	}
	return authority.prefix + path[authority.strip:]
}
