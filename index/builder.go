// Package index builds the local vector index queried by the retrieval tool.
package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/document"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

// MetaChunk is the metadata key holding the chunk number within its source
const MetaChunk = "chunk"

// Stats summarizes a build
type Stats struct {
	Files   int
	Skipped int
	Chunks  int
	Usage   components.LLMUsage
}

// Builder walks a directory, chunks every supported document, embeds the
// chunks and writes them to a vector engine.
type Builder struct {
	engine     vectordb.Engine
	embedder   embedder.Embedder
	chunker    embedder.Chunker
	loader     *document.Loader
	collection string
	batchSize  int
	logger     *slog.Logger
}

type Option func(*Builder)

func WithChunker(c embedder.Chunker) Option {
	return func(b *Builder) {
		b.chunker = c
	}
}

func WithCollection(name string) Option {
	return func(b *Builder) {
		b.collection = name
	}
}

// WithBatchSize sets how many chunks go into one embedding request
func WithBatchSize(n int) Option {
	return func(b *Builder) {
		b.batchSize = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

func NewBuilder(engine vectordb.Engine, e embedder.Embedder, opts ...Option) *Builder {
	b := &Builder{
		engine:   engine,
		embedder: e,
		loader:   document.NewLoader(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.chunker == nil {
		b.chunker = embedder.NewTextChunker()
	}
	if b.collection == "" {
		b.collection = "workshop"
	}
	if b.batchSize <= 0 {
		b.batchSize = 32
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Build indexes every supported file under root. Unsupported files are
// skipped; any other failure aborts the build.
func (b *Builder) Build(ctx context.Context, root string) (*Stats, error) {
	stats := new(Stats)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := b.loader.Load(ctx, path)
		if errors.Is(err, document.ErrUnsupported) {
			b.logger.Debug("skip unsupported file", "path", path)
			stats.Skipped++
			return nil
		} else if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		doc.Meta[document.MetaSource] = filepath.ToSlash(rel)
		n, err := b.indexDocument(ctx, doc, &stats.Usage)
		if err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
		stats.Files++
		stats.Chunks += n
		b.logger.Info("indexed document", "source", rel, "chunks", n)
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func (b *Builder) indexDocument(ctx context.Context, doc *document.Document, usage *components.LLMUsage) (int, error) {
	if doc.IsBlank() {
		return 0, nil
	}
	chunks := b.chunker.Chunk(doc.Text)
	if len(chunks) == 0 {
		return 0, nil
	}
	embedded, err := embedder.EmbedChunks(ctx, b.embedder, chunks, b.batchSize, usage)
	if err != nil {
		return 0, errs.Upstream("embeddings", err)
	}
	records := make([]vectordb.Record, 0, len(embedded))
	for idx, v := range embedded {
		meta := make(map[string]string, len(doc.Meta)+1)
		for k, val := range doc.Meta {
			meta[k] = val
		}
		meta[MetaChunk] = strconv.Itoa(idx)
		v.Embedding.Object = v.Chunk.Text
		v.Embedding.Meta = meta
		records = append(records, vectordb.Record{
			ID:        v.Embedding.UUID(),
			Embedding: v.Embedding,
		})
	}
	if err := b.engine.Insert(ctx, b.collection, records...); err != nil {
		return 0, err
	}
	return len(records), nil
}
