package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMarkdownAndHTML(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader()
	ctx := context.Background()

	doc, err := l.Load(ctx, writeFile(t, dir, "notes.md", "# Agents\n\nPlanner then researcher."))
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, doc.Meta[MetaFormat])
	assert.Contains(t, doc.Text, "Planner then researcher.")

	doc, err = l.Load(ctx, writeFile(t, dir, "page.html", "<html><body><h1>Labs</h1><p>Run the <b>crew</b>.</p></body></html>"))
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "# Labs")
	assert.Contains(t, doc.Text, "**crew**")
	assert.Equal(t, filepath.Join(dir, "page.html"), doc.Source())
}

func TestFormatSniffsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	format, err := Format(writeFile(t, dir, "README", "plain words only"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = Format(writeFile(t, dir, "blob.bin", "\x00\x01\x02\x03\x89PNG"))
	assert.True(t, errors.Is(err, ErrUnsupported))
}
