// Package memory is a non-persistent vectordb.Engine, used for dry runs of
// the index build.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
)

// Engine implements vectordb.Engine in memory with cosine similarity.
type Engine struct {
	collections sync.Map
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

// Collection is a named set of records
type Collection struct {
	records []vectordb.Record
	mu      sync.RWMutex
}

func (c *Collection) AddRecords(records ...vectordb.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range records {
		replaced := false
		for idx := range c.records {
			if c.records[idx].ID == rec.ID {
				c.records[idx] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			c.records = append(c.records, rec)
		}
	}
}

// Records returns a copy of the records
func (c *Collection) Records() []vectordb.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]vectordb.Record, len(c.records))
	copy(ret, c.records)
	return ret
}

// New creates a new in-memory vector database instance.
func New(opts ...vectordb.Option) *Engine {
	ret := new(Engine)
	opts = append([]vectordb.Option{vectordb.WithEngine(vectordb.Memory)}, opts...)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

// Collection returns the named collection, creating it when missing.
func (e *Engine) Collection(_ context.Context, name string) *Collection {
	col, _ := e.collections.LoadOrStore(name, new(Collection))
	return col.(*Collection)
}

func (e *Engine) Count(_ context.Context, name string) (int, error) {
	col, ok := e.collections.Load(name)
	if !ok {
		return 0, nil
	}
	c := col.(*Collection)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records), nil
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	docs := make([]vectordb.Record, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		docs = append(docs, record)
	}
	e.Collection(ctx, collectionName).AddRecords(docs...)
	return nil
}

func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	option := vectordb.NewSearchOptions(e.Options, opts...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	col, ok := e.collections.Load(option.Collection)
	if !ok {
		return nil, nil
	}
	var records []vectordb.Record
	for _, record := range col.(*Collection).Records() {
		if !recordMatchesFilters(&record, &option) {
			continue
		}
		record.Score = cosineSimilarity(vectors, record.Embedding.Embedding)
		if record.Score < e.MinScore {
			continue
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if option.TopK > 0 && len(records) > option.TopK {
		records = records[:option.TopK]
	}
	return records, nil
}

// recordMatchesFilters checks if a record matches the metadata and content filters.
func recordMatchesFilters(record *vectordb.Record, opts *vectordb.SearchOptions) bool {
	for k, v := range opts.Meta {
		if record.Embedding.Meta[k] != v {
			return false
		}
	}
	if opts.Include != "" && !strings.Contains(record.Embedding.Object, opts.Include) {
		return false
	}
	if opts.Exclude != "" && strings.Contains(record.Embedding.Object, opts.Exclude) {
		return false
	}
	return true
}

// cosineSimilarity returns 0 for vectors of different length or zero norm.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
