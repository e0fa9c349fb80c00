package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownHeadings(t *testing.T) {
	doc := Markdown(`# Multi-Agent Systems Workshop

Intro paragraph.

## Goals
- learn

## Agenda

Hands-on Labs
-------------

text with a # that is not a heading
`)
	headings := doc.Headings()
	require.Len(t, headings, 4)
	assert.Equal(t, Heading{Level: 1, Text: "Multi-Agent Systems Workshop"}, headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "Goals"}, headings[1])
	assert.Equal(t, Heading{Level: 2, Text: "Hands-on Labs"}, headings[3])

	assert.True(t, doc.HasHeading("agenda"))
	assert.False(t, doc.HasHeading("Deployment"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "plain", Stringify(NewString("plain")))
	assert.Equal(t, "# md", Stringify(Markdown("# md")))
	assert.Equal(t, "", Stringify(nil))
	assert.True(t, String(" \n\t").IsBlank())
}
