// Package llmtest provides a scripted chat completion client for tests.
package llmtest

import (
	"context"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
)

// Func answers one chat completion request
type Func func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

// Client records every request and answers with fn
type Client struct {
	fn       Func
	mtx      sync.Mutex
	requests []openai.ChatCompletionRequest
}

var _ components.LLM = (*Client)(nil)

func New(fn Func) *Client {
	return &Client{fn: fn}
}

func (c *Client) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.mtx.Lock()
	c.requests = append(c.requests, req)
	c.mtx.Unlock()
	if err := ctx.Err(); err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	return c.fn(ctx, req)
}

// Requests returns a copy of the recorded requests
func (c *Client) Requests() []openai.ChatCompletionRequest {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	ret := make([]openai.ChatCompletionRequest, len(c.requests))
	copy(ret, c.requests)
	return ret
}

// Calls returns the number of recorded requests
func (c *Client) Calls() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.requests)
}

// Factory returns an LLMFactory handing out c. Like the real factory it
// rejects a configuration without an API key.
func (c *Client) Factory() components.LLMFactory {
	return func(cfg config.LLM) (components.LLM, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Reply is a final answer with content
func Reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-test",
		Model: "test-model",
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: content,
			},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

// ToolCalls is an answer requesting calls
func ToolCalls(calls ...components.ToolCall) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-test",
		Model: "test-model",
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				ToolCalls: components.ToolCallsToOpenAI(calls),
			},
			FinishReason: openai.FinishReasonToolCalls,
		}},
		Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

// LastMessage returns the last message of req
func LastMessage(req openai.ChatCompletionRequest) openai.ChatCompletionMessage {
	if len(req.Messages) == 0 {
		return openai.ChatCompletionMessage{}
	}
	return req.Messages[len(req.Messages)-1]
}
