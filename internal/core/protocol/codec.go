// Package protocol implements the private akl command URI scheme.
//
// The grammar is shared bit-for-bit by every producer (the annotation
// rewriter, the CLI) and consumer (the protocol handler, the companion
// editor tool):
//
//	akl://<authority>/?<key>=<value>&...
//
// with authorities open-document, import-document and cite. Encode and
// Decode are inverses for every well-formed command.
package protocol

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/aluminium-labs/akl/internal/core/domain"
)

// Scheme is the custom URI scheme of the command protocol.
const Scheme = "akl"

// Authority selectors, one per command variant.
const (
	AuthorityOpen   = "open-document"
	AuthorityImport = "import-document"
	AuthorityCite   = "cite"
)

// Encode serialises a command into its akl URI. Query keys are emitted
// in canonical sorted order so encoding is deterministic.
func Encode(cmd domain.Command) (string, error) {
	q := url.Values{}
	var authority string

	switch c := cmd.(type) {
	case domain.OpenCommand:
		authority = AuthorityOpen
		q.Set("uri", c.Reference)
		q.Set("storage", c.StorageRoot)
		if c.Dest != nil {
			q.Set("dest", *c.Dest)
		}
		if c.Page != nil {
			q.Set("page", strconv.Itoa(*c.Page))
		}
		setOptional(q, "bibtex", c.Bibtex)
		setOptional(q, "knowledge", c.Knowledge)

	case domain.ImportCommand:
		authority = AuthorityImport
		doc, err := json.Marshal(c.Record)
		if err != nil {
			return "", fmt.Errorf("serialising record: %w", err)
		}
		q.Set("download", c.DownloadRef)
		q.Set("document", string(doc))
		q.Set("storage", c.StorageRoot)

	case domain.CiteCommand:
		authority = AuthorityCite
		q.Set("uri", c.Reference)
		q.Set("storage", c.StorageRoot)
		q.Set("dest", c.Dest)
		q.Set("page", strconv.Itoa(c.Page))
		setOptional(q, "bibtex", c.Bibtex)
		setOptional(q, "knowledge", c.Knowledge)

	default:
		return "", fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
	}

	return fmt.Sprintf("%s://%s/?%s", Scheme, authority, q.Encode()), nil
}

// Decode parses an akl URI back into its command. A non-akl scheme is a
// protocol error; an unknown authority, a missing required key or a
// repeated key in a single-value position is a command error. No
// partial command is ever returned.
func Decode(uri string) (domain.Command, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing command uri: %w", err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScheme, u.Scheme)
	}

	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("parsing command query: %w", err)
	}

	switch u.Host {
	case AuthorityOpen:
		return decodeOpen(q)
	case AuthorityImport:
		return decodeImport(q)
	case AuthorityCite:
		return decodeCite(q)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, u.Host)
	}
}

func decodeOpen(q url.Values) (domain.Command, error) {
	reference, err := single(q, "uri", true)
	if err != nil {
		return nil, err
	}
	storage, err := single(q, "storage", true)
	if err != nil {
		return nil, err
	}
	cmd := domain.OpenCommand{Reference: reference, StorageRoot: storage}

	if cmd.Dest, err = optionalString(q, "dest"); err != nil {
		return nil, err
	}
	if cmd.Page, err = optionalInt(q, "page"); err != nil {
		return nil, err
	}
	if cmd.Bibtex, err = single(q, "bibtex", false); err != nil {
		return nil, err
	}
	if cmd.Knowledge, err = single(q, "knowledge", false); err != nil {
		return nil, err
	}
	return cmd, nil
}

func decodeImport(q url.Values) (domain.Command, error) {
	download, err := single(q, "download", true)
	if err != nil {
		return nil, err
	}
	document, err := single(q, "document", true)
	if err != nil {
		return nil, err
	}
	storage, err := single(q, "storage", true)
	if err != nil {
		return nil, err
	}

	var record domain.Record
	if err := json.Unmarshal([]byte(document), &record); err != nil {
		return nil, fmt.Errorf("%w: document: %v", domain.ErrInvalidInput, err)
	}
	return domain.ImportCommand{
		DownloadRef: download,
		Record:      record,
		StorageRoot: storage,
	}, nil
}

func decodeCite(q url.Values) (domain.Command, error) {
	reference, err := single(q, "uri", true)
	if err != nil {
		return nil, err
	}
	storage, err := single(q, "storage", true)
	if err != nil {
		return nil, err
	}
	dest, err := single(q, "dest", true)
	if err != nil {
		return nil, err
	}
	pageValue, err := single(q, "page", true)
	if err != nil {
		return nil, err
	}
	page, err := strconv.Atoi(pageValue)
	if err != nil {
		return nil, fmt.Errorf("%w: page: %v", domain.ErrInvalidInput, err)
	}

	cmd := domain.CiteCommand{
		Reference:   reference,
		StorageRoot: storage,
		Dest:        dest,
		Page:        page,
	}
	if cmd.Bibtex, err = single(q, "bibtex", false); err != nil {
		return nil, err
	}
	if cmd.Knowledge, err = single(q, "knowledge", false); err != nil {
		return nil, err
	}
	return cmd, nil
}

// single extracts a single-valued query parameter. A repeated key is
// rejected; a missing key is an error only when required.
func single(q url.Values, key string, required bool) (string, error) {
	values, ok := q[key]
	if !ok || len(values) == 0 {
		if required {
			return "", fmt.Errorf("%w: %q", domain.ErrMissingField, key)
		}
		return "", nil
	}
	if len(values) > 1 {
		return "", fmt.Errorf("%w: repeated parameter %q", domain.ErrInvalidInput, key)
	}
	return values[0], nil
}

func optionalString(q url.Values, key string) (*string, error) {
	if _, ok := q[key]; !ok {
		return nil, nil
	}
	v, err := single(q, key, true)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	if _, ok := q[key]; !ok {
		return nil, nil
	}
	v, err := single(q, key, true)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return &n, nil
}

func setOptional(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
