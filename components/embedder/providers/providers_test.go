package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openaiclient "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

func TestNewDefaultsToHuggingFace(t *testing.T) {
	e, err := New(config.Default().Index, nil)
	require.NoError(t, err)
	assert.Equal(t, embedder.ProviderHuggingFace, e.Provider())
	assert.Equal(t, "sentence-transformers/all-MiniLM-L6-v2", e.Model())
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	cfg := config.Default().Index
	cfg.EmbeddingProvider = config.ProviderOpenAI
	_, err := New(cfg, nil)
	var cerr *errs.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "index.embedding_api_key", cerr.Field)
}

func TestOpenAIEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		resp := openaiclient.EmbeddingResponse{Usage: openaiclient.Usage{PromptTokens: 4}}
		// reversed on purpose
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, openaiclient.Embedding{Index: i, Embedding: []float32{float32(i)}})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	cfg := config.Default().Index
	cfg.EmbeddingProvider = config.ProviderOpenAI
	cfg.EmbeddingModel = "text-embedding-3-small"
	cfg.EmbeddingAPIKey = "sk-test"
	cfg.EmbeddingBaseURL = srv.URL
	e, err := New(cfg, srv.Client())
	require.NoError(t, err)

	var usage components.LLMUsage
	chunks := []embedder.Chunk{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	ret, err := embedder.EmbedChunks(context.Background(), e, chunks, 2, &usage)
	require.NoError(t, err)
	require.Len(t, ret, 3)
	for i, v := range ret {
		assert.Equal(t, i, v.Index)
		assert.Same(t, &chunks[i], v.Chunk)
	}
	assert.Equal(t, []float64{0}, ret[2].Embedding.Embedding)
	assert.Equal(t, int64(8), usage.InputTokens)
}
