package crew

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/agents"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

type Option func(*Crew)

// WithStageHook calls fn on every stage transition, including Done
func WithStageHook(fn func(ctx context.Context, runID string, stage Stage)) Option {
	return func(c *Crew) {
		c.stageHook = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Crew) {
		c.logger = l
	}
}

// WithTimeout bounds a whole run; zero means no limit
func WithTimeout(d time.Duration) Option {
	return func(c *Crew) {
		c.timeout = d
	}
}

// WithLLMFactory is used by NewWorkshopCrew to build the agents' clients
func WithLLMFactory(factory components.LLMFactory) Option {
	return func(c *Crew) {
		c.llmFactory = factory
	}
}

// WithAgentOptions are applied by NewWorkshopCrew to every agent
func WithAgentOptions(opts ...agents.Option) Option {
	return func(c *Crew) {
		c.agentOptions = append(c.agentOptions, opts...)
	}
}

// WithToolkit replaces the research toolkit NewWorkshopCrew would build
func WithToolkit(tk *tools.Toolkit) Option {
	return func(c *Crew) {
		c.toolkit = tk
	}
}

// WithEmbedder sets the embedder the retrieval tool queries the index with
func WithEmbedder(e embedder.Embedder) Option {
	return func(c *Crew) {
		c.embedder = e
	}
}
