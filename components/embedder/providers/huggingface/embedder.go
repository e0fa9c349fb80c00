package huggingface

import (
	"context"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
)

const (
	DefaultEmbedderModel = "sentence-transformers/all-MiniLM-L6-v2"
)

// Embedder embeds text with the Hugging Face feature-extraction pipeline
type Embedder struct {
	*Client

	embedder.Options
}

var _ embedder.Embedder = (*Embedder)(nil)

func New(client *Client, opts ...embedder.Option) *Embedder {
	i := &Embedder{
		Client: client,
	}
	opts = append([]embedder.Option{
		embedder.WithProvider(embedder.ProviderHuggingFace),
		embedder.WithModel(DefaultEmbedderModel),
	}, opts...)
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

func (p *Embedder) Embed(ctx context.Context, text string, embedding *embedder.Embedding, usage *components.LLMUsage) error {
	ret, err := p.BatchEmbed(ctx, []string{text}, usage)
	if err != nil {
		return err
	}
	if len(ret) == 0 {
		return nil
	}
	*embedding = ret[0]
	return nil
}

func (p *Embedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]embedder.Embedding, error) {
	waitForModel := true
	req := EmbeddingRequest{
		Inputs: parts,
		Options: options{
			WaitForModel: &waitForModel,
		},
		Model: p.Model(),
	}
	resp, err := p.CreateEmbeddings(ctx, &req)
	if err != nil {
		return nil, err
	}
	ret := make([]embedder.Embedding, 0, len(resp))
	for idx, v := range resp {
		if idx >= len(parts) {
			break
		}
		ret = append(ret, embedder.Embedding{
			Object:    parts[idx],
			Embedding: v,
			Index:     idx,
		})
	}
	return ret, nil
}
