package crew

import (
	"context"
	"log/slog"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/agents"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder/providers"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tasks"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/calculator"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/retrieval"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools/websearch"
)

// NewWorkshopCrew assembles the workshop pipeline from cfg: the research
// toolkit, the four agents and their tasks. A missing LLM API key fails here
// with a ConfigurationError, before any request is made.
func NewWorkshopCrew(cfg *config.Config, opts ...Option) (*Crew, error) {
	c := newCrew(opts...)
	if c.timeout == 0 {
		c.timeout = cfg.Pipeline.Timeout
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, err
	}
	toolkit := c.toolkit
	if toolkit == nil {
		tk, err := c.buildToolkit(cfg)
		if err != nil {
			return nil, err
		}
		toolkit = tk
	}
	agentOptions := []agents.Option{
		agents.WithMaxIterations(cfg.Pipeline.MaxIterations),
		agents.WithLogger(c.logger),
	}
	if c.llmFactory != nil {
		agentOptions = append(agentOptions, agents.WithLLMFactory(c.llmFactory))
	}
	agentOptions = append(agentOptions, c.agentOptions...)

	planner, err := agents.NewPlanner(cfg.LLM, agentOptions...)
	if err != nil {
		return nil, err
	}
	researcher, err := agents.NewResearcher(cfg.LLM, append(agentOptions, agents.WithToolkit(toolkit))...)
	if err != nil {
		return nil, err
	}
	writer, err := agents.NewWriter(cfg.LLM, agentOptions...)
	if err != nil {
		return nil, err
	}
	reviewer, err := agents.NewReviewer(cfg.LLM, agentOptions...)
	if err != nil {
		return nil, err
	}
	list, err := tasks.Build(planner, researcher, writer, reviewer, toolkit)
	if err != nil {
		return nil, err
	}
	if err := validate(list); err != nil {
		return nil, err
	}
	c.tasks = list
	return c, nil
}

func (c *Crew) buildToolkit(cfg *config.Config) (*tools.Toolkit, error) {
	return DefaultToolkit(cfg, c.embedder, c.toolHooks()...)
}

// DefaultToolkit returns the standard research tools in the order retrieval,
// web search, calculator. A nil embedder is built from cfg.Index. opts are
// applied to every tool.
func DefaultToolkit(cfg *config.Config, e embedder.Embedder, opts ...tools.Option) (*tools.Toolkit, error) {
	if e == nil {
		var err error
		if e, err = providers.New(cfg.Index, nil); err != nil {
			return nil, err
		}
	}
	search, err := websearch.FromConfig(cfg.Search, websearch.WithToolOptions(opts...))
	if err != nil {
		return nil, err
	}
	return tools.NewToolkit(
		retrieval.New(retrieval.ChromemOpener(cfg.Index.Dir, vectordb.WithMinScore(cfg.Index.MinScore)), e,
			retrieval.WithTopK(cfg.Index.TopK),
			retrieval.WithCollection(cfg.Index.Collection),
			retrieval.WithToolOptions(opts...),
		),
		search,
		calculator.New(opts...),
	)
}

func (c *Crew) toolHooks() []tools.Option {
	return []tools.Option{
		tools.WithStartHook(func(ctx context.Context, t tools.Tool, input string) {
			c.logger.DebugContext(ctx, "tool started", slog.String("tool", t.Name()), slog.String("input", input))
		}),
		tools.WithErrorHook(func(ctx context.Context, t tools.Tool, _ string, err error) {
			c.logger.WarnContext(ctx, "tool failed", slog.String("tool", t.Name()), slog.Any("error", err))
		}),
	}
}

// RunWorkshopPipeline builds the workshop crew for cfg and runs it for topic.
// It returns the final review text.
func RunWorkshopPipeline(ctx context.Context, cfg *config.Config, topic string, opts ...Option) (string, error) {
	c, err := NewWorkshopCrew(cfg, opts...)
	if err != nil {
		return "", err
	}
	return c.Run(ctx, topic)
}
