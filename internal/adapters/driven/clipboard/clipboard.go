// Package clipboard adapts the system clipboard port.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/aluminium-labs/akl/internal/core/ports/driven"
)

// Ensure SystemClipboard implements the interface.
var _ driven.Clipboard = (*SystemClipboard)(nil)

// SystemClipboard reads and writes the operating system clipboard.
type SystemClipboard struct{}

// New creates a system clipboard adapter.
func New() *SystemClipboard {
	return &SystemClipboard{}
}

// Copy writes text to the clipboard.
func (c *SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Read returns the clipboard's current text.
func (c *SystemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}
