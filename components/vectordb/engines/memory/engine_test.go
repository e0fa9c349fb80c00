package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
)

func TestSearchOrdersBySimilarity(t *testing.T) {
	ctx := context.Background()
	e := New(vectordb.WithTopK(2))
	require.NoError(t, e.Insert(ctx, "docs",
		vectordb.Record{Embedding: embedder.Embedding{Object: "east", Embedding: []float64{1, 0}}},
		vectordb.Record{Embedding: embedder.Embedding{Object: "north", Embedding: []float64{0, 1}}},
		vectordb.Record{Embedding: embedder.Embedding{Object: "north-east", Embedding: []float64{1, 1}}},
	))
	n, err := e.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ret, err := e.Search(ctx, []float64{1, 0.1}, vectordb.SearchWithCollection("docs"))
	require.NoError(t, err)
	require.Len(t, ret, 2)
	assert.Equal(t, "east", ret[0].Embedding.Object)
	assert.Equal(t, "north-east", ret[1].Embedding.Object)

	ret, err = e.Search(ctx, []float64{1, 0.1}, vectordb.SearchWithCollection("docs"), vectordb.SearchWithExclude("east"))
	require.NoError(t, err)
	require.Len(t, ret, 1)
	assert.Equal(t, "north", ret[0].Embedding.Object)
}

func TestInsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := New()
	rec := vectordb.Record{Embedding: embedder.Embedding{Object: "same", Embedding: []float64{1}}}
	require.NoError(t, e.Insert(ctx, "docs", rec))
	require.NoError(t, e.Insert(ctx, "docs", rec))
	n, _ := e.Count(ctx, "docs")
	assert.Equal(t, 1, n)

	ret, err := e.Search(ctx, []float64{1}, vectordb.SearchWithCollection("missing"))
	require.NoError(t, err)
	assert.Empty(t, ret)
}
