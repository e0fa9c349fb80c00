package tools

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

// Toolkit is an ordered set of tools with unique names
type Toolkit struct {
	tools []Tool
	index map[string]Tool
}

// NewToolkit returns a Toolkit of tools in the given order
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]Tool, len(tools)),
	}
	for _, t := range tools {
		if _, found := tk.index[t.Name()]; found {
			return nil, fmt.Errorf("duplicate tool name %q", t.Name())
		}
		tk.tools = append(tk.tools, t)
		tk.index[t.Name()] = t
	}
	return tk, nil
}

// Tools returns the tools in order
func (tk *Toolkit) Tools() []Tool {
	if tk == nil {
		return nil
	}
	ret := make([]Tool, len(tk.tools))
	copy(ret, tk.tools)
	return ret
}

// Len returns the number of tools
func (tk *Toolkit) Len() int {
	if tk == nil {
		return 0
	}
	return len(tk.tools)
}

// Names returns the tool names in order
func (tk *Toolkit) Names() []string {
	ret := make([]string, 0, tk.Len())
	for _, t := range tk.Tools() {
		ret = append(ret, t.Name())
	}
	return ret
}

// Get returns the tool named name
func (tk *Toolkit) Get(name string) (Tool, bool) {
	if tk == nil {
		return nil, false
	}
	t, ok := tk.index[name]
	return t, ok
}

// Definitions returns the function-calling definitions of the tools
func (tk *Toolkit) Definitions() []openai.Tool {
	ret := make([]openai.Tool, 0, tk.Len())
	for _, t := range tk.Tools() {
		ret = append(ret, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return ret
}

// Dispatch runs a tool call requested by the model. Errors the model can act
// on (bad input, unknown tool) come back as an error callback; any other
// failure is returned as err and aborts the run.
func (tk *Toolkit) Dispatch(ctx context.Context, call components.ToolCall) (components.ToolCallback, error) {
	cb := components.ToolCallback{
		ID:   call.ID,
		Name: call.Name,
	}
	t, ok := tk.Get(call.Name)
	if !ok {
		cb.IsError = true
		cb.Content = errs.ToolInput(call.Name, call.Arguments, fmt.Errorf("unknown tool, available tools: %v", tk.Names())).Error()
		return cb, nil
	}
	output, err := t.Invoke(ctx, call.Arguments)
	if err != nil {
		if errs.IsToolInput(err) {
			cb.IsError = true
			cb.Content = err.Error()
			return cb, nil
		}
		return cb, err
	}
	cb.Content = output
	return cb, nil
}
