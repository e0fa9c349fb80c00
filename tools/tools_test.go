package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/calculator"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/websearch"
)

type brokenBackend struct{}

func (brokenBackend) Search(context.Context, string, int) ([]websearch.Item, error) {
	return nil, errors.New("connection refused")
}

func TestNewToolkitRejectsDuplicates(t *testing.T) {
	_, err := tools.NewToolkit(calculator.New(), calculator.New())
	assert.Error(t, err)

	tk, err := tools.NewToolkit(calculator.New(), websearch.New(websearch.WithBackend(brokenBackend{})))
	require.NoError(t, err)
	assert.Equal(t, []string{calculator.Name, websearch.Name}, tk.Names())
	defs := tk.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, calculator.Name, defs[0].Function.Name)
	assert.Equal(t, calculator.Description, defs[0].Function.Description)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	tk, err := tools.NewToolkit(calculator.New(), websearch.New(websearch.WithBackend(brokenBackend{})))
	require.NoError(t, err)

	cb, err := tk.Dispatch(ctx, components.ToolCall{ID: "call_1", Name: calculator.Name, Arguments: `{"expression": "(2 + 3) * 4"}`})
	require.NoError(t, err)
	assert.Equal(t, components.ToolCallback{ID: "call_1", Name: calculator.Name, Content: "20.0"}, cb)

	cb, err = tk.Dispatch(ctx, components.ToolCall{ID: "call_2", Name: calculator.Name, Arguments: `{"expression": "__import__('os')"}`})
	require.NoError(t, err)
	assert.True(t, cb.IsError)

	cb, err = tk.Dispatch(ctx, components.ToolCall{ID: "call_3", Name: "python_repl", Arguments: "{}"})
	require.NoError(t, err)
	assert.True(t, cb.IsError)
	assert.Contains(t, cb.Content, calculator.Name)

	_, err = tk.Dispatch(ctx, components.ToolCall{ID: "call_4", Name: websearch.Name, Arguments: "agents"})
	var upstream *errs.UpstreamServiceError
	assert.ErrorAs(t, err, &upstream)
}

func TestHooks(t *testing.T) {
	var started, ended, failed []string
	calc := calculator.New(
		tools.WithStartHook(func(_ context.Context, tool tools.Tool, input string) {
			started = append(started, tool.Name()+":"+input)
		}),
		tools.WithEndHook(func(_ context.Context, _ tools.Tool, _ string, output string) {
			ended = append(ended, output)
		}),
		tools.WithErrorHook(func(_ context.Context, _ tools.Tool, _ string, err error) {
			failed = append(failed, err.Error())
		}),
	)
	ctx := context.Background()
	_, err := calc.Invoke(ctx, "2 ** 10")
	require.NoError(t, err)
	_, err = calc.Invoke(ctx, "1 / 0")
	require.Error(t, err)

	assert.Equal(t, []string{calculator.Name + ":2 ** 10", calculator.Name + ":1 / 0"}, started)
	assert.Equal(t, []string{"1024.0"}, ended)
	assert.Len(t, failed, 1)
	assert.Equal(t, int64(2), calc.Calls())
	assert.Equal(t, int64(1), calc.Failures())
}

func TestArgument(t *testing.T) {
	assert.Equal(t, "2 + 2", tools.Argument(" 2 + 2 ", "expression"))
	assert.Equal(t, "2 + 2", tools.Argument(`{"expression": "2 + 2"}`, "expression"))
	assert.Equal(t, "", tools.Argument(`{"query": "x"}`, "expression"))
	assert.Equal(t, "{not json", tools.Argument("{not json", "expression"))
	assert.Equal(t, "guide.md", tools.NamedArgument(`{"query": "x", "source": " guide.md"}`, "source"))
	assert.Equal(t, "", tools.NamedArgument("guide.md", "source"))

	n, ok := tools.IntArgument(`{"top_k": "3"}`, "top_k")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = tools.IntArgument("3", "top_k")
	assert.False(t, ok)
}
