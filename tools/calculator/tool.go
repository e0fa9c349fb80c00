// Package calculator is the deterministic arithmetic tool.
package calculator

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

const (
	Name        = "deterministic_calculator"
	Description = "Perform precise arithmetic on simple expressions. " +
		"Supports addition, subtraction, multiplication, division, modulus, and powers."
)

type Tool struct {
	tools.Config
}

var _ tools.Tool = (*Tool)(nil)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName(Name)
	}
	if ret.Description() == "" {
		ret.SetDescription(Description)
	}
	return ret
}

func (t *Tool) Kind() tools.Kind {
	return tools.Arithmetic
}

func (t *Tool) Parameters() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"expression": {
				Type:        jsonschema.String,
				Description: "Arithmetic expression to evaluate, for example '2 + 3 * 4'.",
			},
		},
		Required: []string{"expression"},
	}
}

// Invoke evaluates the expression in input, a plain expression or
// {"expression": "..."}. Rejected or failing expressions return a
// ToolInputError.
func (t *Tool) Invoke(ctx context.Context, input string) (string, error) {
	return t.Run(ctx, t, input, t.invoke)
}

func (t *Tool) InvokeAsync(ctx context.Context, input string) (<-chan tools.Result, error) {
	return t.Unsupported(ctx, input)
}

func (t *Tool) invoke(_ context.Context, input string) (string, error) {
	expression := tools.Argument(input, "expression")
	v, err := Evaluate(expression)
	if err != nil {
		return "", errs.ToolInput(t.Name(), expression, err)
	}
	return Format(v), nil
}
