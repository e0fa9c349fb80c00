// Package tools defines the capabilities an agent may invoke during a task.
//
// The set of tools is closed: arithmetic evaluation, local retrieval and web
// search. Every tool takes text in and returns text out; structured arguments
// arrive as a JSON object and plain text is accepted as the primary argument.
package tools

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Kind tags the capability of a Tool
type Kind string

const (
	Arithmetic Kind = "arithmetic"
	Retrieval  Kind = "retrieval"
	WebSearch  Kind = "web_search"
)

// Tool is a named capability with a text-in/text-out contract
type Tool interface {
	Name() string
	Description() string
	Kind() Kind
	// Parameters is the JSON schema of the function-calling arguments
	Parameters() *jsonschema.Definition
	Invoke(ctx context.Context, input string) (string, error)
	// InvokeAsync delivers exactly one Result on the returned channel. Tools
	// without asynchronous support return an UnsupportedOperationError.
	InvokeAsync(ctx context.Context, input string) (<-chan Result, error)
}

// Result of an asynchronous invocation
type Result struct {
	Output string
	Err    error
}
