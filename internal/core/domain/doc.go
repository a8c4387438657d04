// Package domain contains the pure types of the document archive:
// records, the library that owns them, grouped navigation destinations,
// and the protocol command variants. It has no dependencies outside the
// standard library and performs no I/O except content hashing helpers.
package domain
