package components

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
)

// LLM is the chat completion client an agent talks to
type LLM interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ LLM = (*openai.Client)(nil)

// LLMFactory builds one LLM client per agent
type LLMFactory func(config.LLM) (LLM, error)

// NewLLM returns an OpenAI-compatible client for cfg. The API key is checked
// before anything else so a missing key never reaches the network.
func NewLLM(cfg config.LLM) (LLM, error) {
	return NewLLMFactory(nil)(cfg)
}

// NewLLMFactory returns an LLMFactory whose clients send requests through
// httpClient. A nil httpClient uses http.DefaultClient.
func NewLLMFactory(httpClient *http.Client) LLMFactory {
	return func(cfg config.LLM) (LLM, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		if httpClient != nil {
			clientConfig.HTTPClient = httpClient
		}
		return openai.NewClientWithConfig(clientConfig), nil
	}
}

// LLMResponse chat response metadata
type LLMResponse struct {
	ID        string      `json:"id,omitempty"`
	Role      MessageRole `json:"role,omitempty"`
	Model     string      `json:"model,omitempty"`
	Usage     *LLMUsage   `json:"usage,omitempty"`
	Timestamp int64       `json:"ts,omitempty"`
	Details   any         `json:"content,omitempty"`
}

// FromOpenAI convert response from openai. Usage accumulates across calls so a
// tool-calling loop reports the total spent by one agent run.
func (r *LLMResponse) FromOpenAI(v *openai.ChatCompletionResponse) {
	r.ID = v.ID
	r.Role = AssistantRole
	r.Model = v.Model
	r.Timestamp = v.Created
	if r.Usage == nil {
		r.Usage = new(LLMUsage)
	}
	r.Usage.Merge(&LLMUsage{
		InputTokens:  int64(v.Usage.PromptTokens),
		OutputTokens: int64(v.Usage.CompletionTokens),
	})
	r.Details = v.Choices
}

type LLMUsage struct {
	InputTokens  int64 `json:"input_tokens,omitempty"`
	OutputTokens int64 `json:"output_tokens,omitempty"`
}

func (u *LLMUsage) Merge(v *LLMUsage) {
	if v == nil {
		return
	}
	u.InputTokens += v.InputTokens
	u.OutputTokens += v.OutputTokens
}

// Total returns input plus output tokens
func (u LLMUsage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}
