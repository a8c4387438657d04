// Package file provides a TOML-file implementation of the config store
// port. Settings live under the akl config directory and are read as
// dot-notation keys: storage.root, viewer.command, viewer.page_flag,
// viewer.dest_flag, tex.root, tex.bibtex, tex.knowledge.
package file
