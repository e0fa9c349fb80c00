package tools

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Argument returns the string value of key when input is a JSON object,
// otherwise the trimmed input itself.
func Argument(input, key string) string {
	args, ok := decodeObject(input)
	if !ok {
		return strings.TrimSpace(input)
	}
	raw, found := args[key]
	if !found {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// NamedArgument returns the string value of key only when input is a JSON
// object carrying it.
func NamedArgument(input, key string) string {
	if _, ok := decodeObject(input); !ok {
		return ""
	}
	return Argument(input, key)
}

// IntArgument returns the integer value of key when input is a JSON object
// carrying it. Numeric strings are accepted.
func IntArgument(input, key string) (int, bool) {
	args, ok := decodeObject(input)
	if !ok {
		return 0, false
	}
	raw, found := args[key]
	if !found {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func decodeObject(input string) (map[string]json.RawMessage, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var args map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, false
	}
	return args, true
}
