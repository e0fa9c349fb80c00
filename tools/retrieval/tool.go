// Package retrieval is the local knowledge base search tool.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/atomic"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/document"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb/engines/chromem"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/tools"
)

const (
	Name        = "local_rag_search"
	Description = "Access the local vector store built from workshop materials. " +
		"Use this to retrieve background information, code snippets, and deployment tips."
	// NoResults is returned when the index holds nothing relevant
	NoResults = "No relevant documents found in the local knowledge base."
	// Remediation tells the operator how to create a missing index
	Remediation = "Run 'workshop index --source <docs-dir>' first."

	DefaultTopK       = 4
	DefaultCollection = "workshop"
)

// Opener opens the vector index. It is called until it succeeds once.
type Opener func(ctx context.Context) (vectordb.Engine, error)

// ChromemOpener opens the persisted chromem index at dir. A missing
// directory is reported as a ResourceNotFoundError.
func ChromemOpener(dir string, opts ...vectordb.Option) Opener {
	return func(context.Context) (vectordb.Engine, error) {
		engine, err := chromem.Open(dir, opts...)
		if errors.Is(err, chromem.ErrIndexNotFound) {
			return nil, errs.NotFound("vector store", dir, Remediation)
		}
		return engine, err
	}
}

type Tool struct {
	tools.Config
	opener     Opener
	embedder   embedder.Embedder
	collection string
	topK       int

	mtx    sync.Mutex
	engine vectordb.Engine
	loaded atomic.Bool
	loads  atomic.Int64
}

var _ tools.Tool = (*Tool)(nil)

type Option func(*Tool)

func WithTopK(k int) Option {
	return func(t *Tool) {
		t.topK = k
	}
}

func WithCollection(name string) Option {
	return func(t *Tool) {
		t.collection = name
	}
}

func WithToolOptions(opts ...tools.Option) Option {
	return func(t *Tool) {
		for _, opt := range opts {
			opt(&t.Config)
		}
	}
}

// New returns a retrieval tool. Nothing is opened until the first Invoke.
func New(opener Opener, e embedder.Embedder, opts ...Option) *Tool {
	ret := &Tool{
		opener:   opener,
		embedder: e,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.Name() == "" {
		ret.SetName(Name)
	}
	if ret.Description() == "" {
		ret.SetDescription(Description)
	}
	if ret.topK <= 0 {
		ret.topK = DefaultTopK
	}
	if ret.collection == "" {
		ret.collection = DefaultCollection
	}
	return ret
}

func (t *Tool) Kind() tools.Kind {
	return tools.Retrieval
}

func (t *Tool) Parameters() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "What to look up in the local workshop knowledge base.",
			},
			"top_k": {
				Type:        jsonschema.Integer,
				Description: fmt.Sprintf("Number of snippets to return, defaults to %d.", DefaultTopK),
			},
			"source": {
				Type:        jsonschema.String,
				Description: "Only search the document at this path relative to the indexed directory.",
			},
		},
		Required: []string{"query"},
	}
}

// Loads returns how many times the index has been opened: 0 before the first
// successful query and 1 after.
func (t *Tool) Loads() int64 {
	return t.loads.Load()
}

func (t *Tool) Invoke(ctx context.Context, input string) (string, error) {
	return t.Run(ctx, t, input, t.invoke)
}

func (t *Tool) InvokeAsync(ctx context.Context, input string) (<-chan tools.Result, error) {
	return t.Unsupported(ctx, input)
}

// load opens the index once. Concurrent callers wait for the first open; a
// failed open is not remembered so a later call may succeed.
func (t *Tool) load(ctx context.Context) (vectordb.Engine, error) {
	if t.loaded.Load() {
		return t.engine, nil
	}
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.loaded.Load() {
		return t.engine, nil
	}
	engine, err := t.opener(ctx)
	if err != nil {
		return nil, err
	}
	t.engine = engine
	t.loads.Inc()
	t.loaded.Store(true)
	return engine, nil
}

func (t *Tool) invoke(ctx context.Context, input string) (string, error) {
	query := tools.Argument(input, "query")
	if query == "" {
		return "", errs.ToolInput(t.Name(), input, errors.New("query is empty"))
	}
	topK := t.topK
	if k, ok := tools.IntArgument(input, "top_k"); ok && k > 0 {
		topK = k
	}
	engine, err := t.load(ctx)
	if err != nil {
		return "", err
	}
	var q embedder.Embedding
	if err := t.embedder.Embed(ctx, query, &q, nil); err != nil {
		return "", errs.Upstream("embeddings", err)
	}
	if len(q.Embedding) == 0 {
		return NoResults, nil
	}
	opts := []vectordb.SearchOption{
		vectordb.SearchWithCollection(t.collection),
		vectordb.SearchWithTopK(topK),
	}
	if source := tools.NamedArgument(input, "source"); source != "" {
		opts = append(opts, vectordb.SearchWithMeta(map[string]string{document.MetaSource: source}))
	}
	records, err := engine.Search(ctx, q.Embedding, opts...)
	if err != nil {
		return "", fmt.Errorf("search %s: %w", t.collection, err)
	}
	return Format(records), nil
}

// Format renders records as numbered snippets separated by blank lines.
func Format(records []vectordb.Record) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		text := strings.TrimSpace(rec.Embedding.Object)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Snippet %d:\n%s", len(parts)+1, text))
	}
	if len(parts) == 0 {
		return NoResults
	}
	return strings.Join(parts, "\n\n")
}
