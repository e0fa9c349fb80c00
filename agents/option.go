package agents

import (
	"context"
	"log/slog"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/systemprompt"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

type Option func(a *Agent)

// WithLLM uses clt instead of building a client from the configuration
func WithLLM(clt components.LLM) Option {
	return func(a *Agent) {
		a.llm = clt
	}
}

// WithLLMFactory builds the client with factory
func WithLLMFactory(factory components.LLMFactory) Option {
	return func(a *Agent) {
		a.llmFactory = factory
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(a *Agent) {
		a.systemPromptGenerator = g
	}
}

func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(a *Agent) {
		a.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(a *Agent) {
		a.maxTokens = maxTokens
	}
}

func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		a.maxIterations = n
	}
}

func WithName(name string) Option {
	return func(a *Agent) {
		a.name = name
	}
}

func WithToolkit(tk *tools.Toolkit) Option {
	return func(a *Agent) {
		a.toolkit = tk
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = l
	}
}

func WithStartHook(fn func(context.Context, *Agent, *Input)) Option {
	return func(a *Agent) {
		a.SetStartHook(fn)
	}
}

func WithEndHook(fn func(context.Context, *Agent, *Input, *schema.String, *components.LLMResponse)) Option {
	return func(a *Agent) {
		a.SetEndHook(fn)
	}
}

func WithErrorHook(fn func(context.Context, *Agent, *Input, *components.LLMResponse, error)) Option {
	return func(a *Agent) {
		a.SetErrorHook(fn)
	}
}
