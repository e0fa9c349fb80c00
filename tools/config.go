package tools

import (
	"context"

	"go.uber.org/atomic"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

// Config holds what every tool shares: its name, description, hooks and call
// counters.
type Config struct {
	name        string
	description string
	startHook   func(context.Context, Tool, string)
	endHook     func(context.Context, Tool, string, string)
	errorHook   func(context.Context, Tool, string, error)
	calls       atomic.Int64
	failures    atomic.Int64
}

func (c *Config) SetName(v string) {
	c.name = v
}

func (c *Config) Name() string {
	return c.name
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c *Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, Tool, string)) {
	c.startHook = fn
}

func (c *Config) SetEndHook(fn func(context.Context, Tool, string, string)) {
	c.endHook = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, Tool, string, error)) {
	c.errorHook = fn
}

// Calls returns the number of invocations so far
func (c *Config) Calls() int64 {
	return c.calls.Load()
}

// Failures returns the number of invocations that returned an error
func (c *Config) Failures() int64 {
	return c.failures.Load()
}

// Run invokes fn for tool t, firing the hooks and counting the call.
func (c *Config) Run(ctx context.Context, t Tool, input string, fn func(context.Context, string) (string, error)) (string, error) {
	c.calls.Inc()
	if hook := c.startHook; hook != nil {
		hook(ctx, t, input)
	}
	output, err := fn(ctx, input)
	if err != nil {
		c.failures.Inc()
		if hook := c.errorHook; hook != nil {
			hook(ctx, t, input, err)
		}
		return "", err
	}
	if hook := c.endHook; hook != nil {
		hook(ctx, t, input, output)
	}
	return output, nil
}

// Unsupported is the InvokeAsync of tools that only run synchronously
func (c *Config) Unsupported(context.Context, string) (<-chan Result, error) {
	return nil, errs.Unsupported(c.name, "async execution")
}

// Async runs fn for tool t in a goroutine and delivers its result.
func (c *Config) Async(ctx context.Context, t Tool, input string, fn func(context.Context, string) (string, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		output, err := c.Run(ctx, t, input, fn)
		ch <- Result{Output: output, Err: err}
	}()
	return ch
}
