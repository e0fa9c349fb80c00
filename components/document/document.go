// Package document loads source files for the index build and normalizes
// them to plain text or Markdown.
package document

import (
	"strings"
)

// Metadata keys set by Load
const (
	MetaSource = "source"
	MetaFormat = "format"
)

// Document is a loaded source document with metadata
type Document struct {
	Text string
	Meta map[string]string
}

// Source returns the path the document was loaded from
func (d Document) Source() string {
	return d.Meta[MetaSource]
}

// IsBlank reports whether the document has no text
func (d Document) IsBlank() bool {
	return strings.TrimSpace(d.Text) == ""
}
