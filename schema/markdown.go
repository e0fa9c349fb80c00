package schema

import (
	"strings"

	"gitlab.com/golang-commonmark/markdown"
)

// Markdown is a Markdown document produced by an agent
type Markdown string

// Heading is a single ATX or setext heading of a Markdown document
type Heading struct {
	Level int
	Text  string
}

func (m Markdown) String() string {
	return string(m)
}

// Headings returns the headings of the document in order of appearance
func (m Markdown) Headings() []Heading {
	tokens := markdown.New().Parse([]byte(m))
	var (
		ret     []Heading
		current *Heading
	)
	for _, tok := range tokens {
		switch t := tok.(type) {
		case *markdown.HeadingOpen:
			current = &Heading{Level: t.HLevel}
		case *markdown.Inline:
			if current != nil {
				current.Text = strings.TrimSpace(t.Content)
			}
		case *markdown.HeadingClose:
			if current != nil {
				ret = append(ret, *current)
				current = nil
			}
		}
	}
	return ret
}

// HasHeading reports whether a heading contains title, ignoring case
func (m Markdown) HasHeading(title string) bool {
	title = strings.ToLower(title)
	for _, h := range m.Headings() {
		if strings.Contains(strings.ToLower(h.Text), title) {
			return true
		}
	}
	return false
}
