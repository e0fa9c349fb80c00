package embedder

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
)

// Embedder turns text into vectors. The same model must be used to build an
// index and to query it.
type Embedder interface {
	Provider() Provider
	Model() string
	Embed(context.Context, string, *Embedding, *components.LLMUsage) error
	BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]Embedding, error)
}

// Embedding is the vector representation of Object, the embedded text.
type Embedding struct {
	Object    string            `json:"object"`
	Embedding []float64         `json:"embedding"`
	Index     int               `json:"index"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// UUID returns a deterministic ID derived from the text and its metadata, so
// rebuilding an index from the same sources yields the same document IDs.
func (e Embedding) UUID() string {
	sb := new(bytes.Buffer)
	sb.WriteString(e.Object)
	keys := make([]string, 0, len(e.Meta))
	for k := range e.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte('\n')
		sb.WriteString(k + ":" + e.Meta[k])
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, sb.Bytes()).String()
}

// EmbeddedChunk is a chunk of text along with its embedding
type EmbeddedChunk struct {
	Embedding
	Chunk *Chunk `json:"text"`
}

// EmbedChunks embeds chunks in batches of batchSize (all at once when
// batchSize <= 0). The returned slice follows the order of chunks.
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []Chunk, batchSize int, usage *components.LLMUsage) ([]EmbeddedChunk, error) {
	if batchSize <= 0 {
		batchSize = len(chunks)
	}
	embeddedChunks := make([]EmbeddedChunk, 0, len(chunks))
	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))
		parts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			parts = append(parts, chunk.Text)
		}
		ret, err := embedder.BatchEmbed(ctx, parts, usage)
		if err != nil {
			return nil, err
		}
		sort.Slice(ret, func(i, j int) bool {
			return ret[i].Index < ret[j].Index
		})
		for _, v := range ret {
			idx := start + v.Index
			v.Index = idx
			embeddedChunks = append(embeddedChunks, EmbeddedChunk{
				Embedding: v,
				Chunk:     &chunks[idx],
			})
		}
	}
	return embeddedChunks, nil
}
