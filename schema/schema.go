// Package schema holds the text artifacts exchanged between agents.
package schema

import "encoding/json"

// Schema is message schema interface
type Schema interface {
	String() string
}

// Stringify renders a schema as message content. String values are used
// verbatim, anything else is JSON encoded.
func Stringify(s Schema) string {
	switch v := s.(type) {
	case nil:
		return ""
	case String:
		return string(v)
	case *String:
		if v == nil {
			return ""
		}
		return string(*v)
	case Markdown:
		return string(v)
	}
	bs, err := json.Marshal(s)
	if err != nil {
		return s.String()
	}
	return string(bs)
}
