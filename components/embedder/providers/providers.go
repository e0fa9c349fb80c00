// Package providers builds the configured Embedder.
package providers

import (
	"net/http"

	openaiclient "github.com/sashabaranov/go-openai"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder/providers/huggingface"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder/providers/openai"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

var (
	FromOpenAI      = openai.New
	FromHuggingFace = huggingface.New
)

// New returns the Embedder selected by cfg.EmbeddingProvider. A nil
// httpClient uses http.DefaultClient.
func New(cfg config.Index, httpClient *http.Client) (embedder.Embedder, error) {
	model := embedder.WithModel(cfg.EmbeddingModel)
	switch cfg.EmbeddingProvider {
	case config.ProviderHuggingFace, "":
		clt := huggingface.NewClient(
			huggingface.WithAPIKey(cfg.EmbeddingAPIKey),
			huggingface.WithBaseURL(cfg.EmbeddingBaseURL),
			huggingface.WithHTTPClient(httpClient),
		)
		return FromHuggingFace(clt, model), nil
	case config.ProviderOpenAI:
		if cfg.EmbeddingAPIKey == "" {
			return nil, errs.Config("index.embedding_api_key", config.OpenAIKeyEnv+" is required for the openai embedding provider")
		}
		clientConfig := openaiclient.DefaultConfig(cfg.EmbeddingAPIKey)
		if cfg.EmbeddingBaseURL != "" {
			clientConfig.BaseURL = cfg.EmbeddingBaseURL
		}
		if httpClient != nil {
			clientConfig.HTTPClient = httpClient
		}
		return FromOpenAI(openaiclient.NewClientWithConfig(clientConfig), model), nil
	}
	return nil, errs.Config("index.embedding_provider", "unknown provider "+cfg.EmbeddingProvider)
}
