package schema

import "strings"

// String is plain text content
type String string

// NewString returns a new String
func NewString(v string) String {
	return String(v)
}

func (s String) String() string {
	return string(s)
}

// IsBlank reports whether s is empty or only whitespace
func (s String) IsBlank() bool {
	return strings.TrimSpace(string(s)) == ""
}

func (s *String) Unmarshal(bs []byte) error {
	*s = String(bs)
	return nil
}
