package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupported is returned by Load for files no Parser handles
var ErrUnsupported = errors.New("unsupported document format")

// Formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// Loader picks a Parser by file extension and falls back to content sniffing
type Loader struct {
	parsers map[string]Parser
}

// NewLoader returns a Loader for text, Markdown, HTML and PDF files
func NewLoader() *Loader {
	return &Loader{
		parsers: map[string]Parser{
			FormatText:     TextParser{},
			FormatMarkdown: TextParser{},
			FormatHTML:     NewHTMLParser(),
			FormatPDF:      NewPDFParser(),
		},
	}
}

// SetParser overrides the parser of format
func (l *Loader) SetParser(format string, p Parser) {
	l.parsers[format] = p
}

// Format returns the format of the file at path or ErrUnsupported
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	switch {
	case mtype.Is("text/html"):
		return FormatHTML, nil
	case mtype.Is("application/pdf"):
		return FormatPDF, nil
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return FormatText, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupported, path, mtype.String())
}

// Load reads and parses the file at path
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	parser, ok := l.parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := new(bytes.Buffer)
	if err := parser.Parse(ctx, bytes.NewReader(bs), out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Document{
		Text: out.String(),
		Meta: map[string]string{
			MetaSource: path,
			MetaFormat: format,
		},
	}, nil
}
