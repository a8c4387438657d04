// Package driven defines the interfaces that core calls OUT to
// infrastructure: the record store, the remote fetcher, the viewer and
// default-opener strategies, the clipboard, the bibliography scanner
// and the knowledge sidecar. Core services depend on these interfaces;
// the adapters under internal/adapters/driven implement them.
//
// Import rules: this package may import domain only, and no adapter
// may be imported from core.
package driven
