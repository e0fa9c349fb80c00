// Package chromem persists the vector index with chromem-go.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/philippgille/chromem-go"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
)

// ErrIndexNotFound is returned by Open when the index directory does not exist
var ErrIndexNotFound = errors.New("chromem index directory not found")

type Engine struct {
	db *chromem.DB
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db *chromem.DB, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	opts = append([]vectordb.Option{vectordb.WithEngine(vectordb.Chromem)}, opts...)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

// Open loads an existing persisted index. Unlike Create it never creates
// the directory.
func Open(dir string, opts ...vectordb.Option) (*Engine, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrIndexNotFound, dir)
	}
	return Create(dir, opts...)
}

// Create opens the persisted index at dir, creating it when missing.
func Create(dir string, opts ...vectordb.Option) (*Engine, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open chromem db %s: %w", dir, err)
	}
	return New(db, opts...), nil
}

func (e *Engine) Collection(_ context.Context, name string) (*chromem.Collection, error) {
	return e.db.GetOrCreateCollection(name, nil, nil)
}

func (e *Engine) Count(_ context.Context, collectionName string) (int, error) {
	col := e.db.GetCollection(collectionName, nil)
	if col == nil {
		return 0, nil
	}
	return col.Count(), nil
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return err
	}
	docs := make([]chromem.Document, 0, len(records))
	for _, record := range records {
		var doc chromem.Document
		recordToDocument(&record, &doc)
		docs = append(docs, doc)
	}
	batchSize := 100
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		if err := col.AddDocuments(ctx, docs[i:end], runtime.NumCPU()); err != nil {
			return err
		}
	}
	return nil
}

// Search performs vector similarity search on a collection. A missing or
// empty collection yields no records.
func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	option := vectordb.NewSearchOptions(e.Options, opts...)
	col := e.db.GetCollection(option.Collection, nil)
	if col == nil {
		return nil, nil
	}
	// chromem refuses more results than documents
	topK := min(option.TopK, col.Count())
	if topK <= 0 {
		return nil, nil
	}
	var whereDocument map[string]string
	if option.Include != "" || option.Exclude != "" {
		whereDocument = make(map[string]string, 2)
		if option.Include != "" {
			whereDocument["$contains"] = option.Include
		}
		if option.Exclude != "" {
			whereDocument["$not_contains"] = option.Exclude
		}
	}
	results, err := col.QueryEmbedding(ctx, vectordb.Float32s(vectors), topK, option.Meta, whereDocument)
	if err != nil {
		return nil, err
	}
	searchResults := make([]vectordb.Record, 0, len(results))
	for _, result := range results {
		var rec vectordb.Record
		resultToRecord(&result, &rec)
		if rec.Score < e.MinScore {
			continue
		}
		searchResults = append(searchResults, rec)
	}
	return searchResults, nil
}

func resultToRecord(res *chromem.Result, record *vectordb.Record) {
	record.ID = res.ID
	record.Score = float64(res.Similarity)
	record.Embedding.Object = res.Content
	record.Embedding.Meta = res.Metadata
	record.Embedding.Embedding = vectordb.Float64s(res.Embedding)
}

func recordToDocument(record *vectordb.Record, doc *chromem.Document) {
	if record.ID == "" {
		record.ID = record.Embedding.UUID()
	}
	doc.ID = record.ID
	doc.Content = record.Embedding.Object
	doc.Metadata = record.Embedding.Meta
	doc.Embedding = vectordb.Float32s(record.Embedding.Embedding)
}
