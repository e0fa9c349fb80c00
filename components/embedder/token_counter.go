package embedder

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// WordCounterName selects DefaultTokenCounter in NewTokenCounter
const WordCounterName = "words"

// TokenCounter counts tokens in a string.
type TokenCounter interface {
	Count(text string) int
}

// DefaultTokenCounter approximates tokens with whitespace separated words.
type DefaultTokenCounter struct{}

// Count returns the number of words in the text, using whitespace as a delimiter.
func (dtc *DefaultTokenCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// TikTokenCounter counts tokens with a tiktoken encoding.
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTikTokenCounter creates a new TikTokenCounter using the specified encoding,
// e.g. "cl100k_base".
func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}
	return &TikTokenCounter{tke: tke}, nil
}

// Count returns the exact number of tokens in the text according to the
// specified tiktoken encoding.
func (ttc *TikTokenCounter) Count(text string) int {
	return len(ttc.tke.Encode(text, nil, nil))
}

// NewTokenCounter returns the word counter for "words" (or an empty name) and
// a TikTokenCounter for any other encoding name.
func NewTokenCounter(name string) (TokenCounter, error) {
	if name == "" || name == WordCounterName {
		return new(DefaultTokenCounter), nil
	}
	return NewTikTokenCounter(name)
}
