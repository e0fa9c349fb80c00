// Package websearch is the live web search tool.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

const (
	Name        = "duckduckgo_search"
	Description = "A wrapper around DuckDuckGo search. Useful for answering questions about current events " +
		"or verifying facts on the live web. Input should be a search query."
	// NoResults is returned when the engine finds nothing
	NoResults = "No good search results found."

	DefaultMaxResults = 5
)

type Tool struct {
	tools.Config
	backend    Backend
	maxResults int
}

var _ tools.Tool = (*Tool)(nil)

// New returns a search tool backed by DuckDuckGo unless WithBackend is given.
func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.Name() == "" {
		ret.SetName(Name)
	}
	if ret.Description() == "" {
		ret.SetDescription(Description)
	}
	if ret.maxResults <= 0 {
		ret.maxResults = DefaultMaxResults
	}
	if ret.backend == nil {
		ret.backend = NewDuckDuckGo("", "", nil)
	}
	return ret
}

// FromConfig returns a tool using the backend selected by cfg.
func FromConfig(cfg config.Search, opts ...Option) (*Tool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clt := &http.Client{Timeout: cfg.Timeout}
	var backend Backend
	switch cfg.Backend {
	case config.BackendDuckDuckGo, "":
		backend = NewDuckDuckGo(cfg.BaseURL, cfg.Language, clt)
	case config.BackendSearxng:
		backend = NewSearxng(cfg.BaseURL, cfg.Language, clt)
	default:
		return nil, errs.Config("search.backend", fmt.Sprintf("unknown backend %q", cfg.Backend))
	}
	opts = append([]Option{WithBackend(backend), WithMaxResults(cfg.MaxResults)}, opts...)
	return New(opts...), nil
}

func (t *Tool) Kind() tools.Kind {
	return tools.WebSearch
}

func (t *Tool) Parameters() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "The search query.",
			},
		},
		Required: []string{"query"},
	}
}

func (t *Tool) Invoke(ctx context.Context, input string) (string, error) {
	return t.Run(ctx, t, input, t.invoke)
}

func (t *Tool) InvokeAsync(ctx context.Context, input string) (<-chan tools.Result, error) {
	return t.Async(ctx, t, input, t.invoke), nil
}

func (t *Tool) invoke(ctx context.Context, input string) (string, error) {
	query := tools.Argument(input, "query")
	if query == "" {
		return "", errs.ToolInput(t.Name(), input, errors.New("query is empty"))
	}
	items, err := t.backend.Search(ctx, query, t.maxResults)
	if err != nil {
		return "", errs.Upstream("web search", err)
	}
	return Format(items), nil
}
