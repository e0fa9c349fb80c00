package components

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
)

func TestNewLLMRequiresAPIKey(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	cfg := config.Default().LLM
	cfg.BaseURL = srv.URL
	cfg.APIKey = "   "
	clt, err := NewLLMFactory(srv.Client())(cfg)
	require.Error(t, err)
	assert.Nil(t, clt)
	var cerr *errs.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "llm.api_key", cerr.Field)
	assert.Contains(t, err.Error(), config.APIKeyEnv)
	assert.Zero(t, hits)
}

func TestNewLLMTalksToConfiguredEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, config.DefaultModel, req.Model)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "cmpl-1",
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: AssistantRole, Content: "pong"},
			}},
			Usage: openai.Usage{PromptTokens: 3, CompletionTokens: 1},
		})
	}))
	defer srv.Close()

	cfg := config.Default().LLM
	cfg.BaseURL = srv.URL
	cfg.APIKey = "sk-test"
	clt, err := NewLLMFactory(srv.Client())(cfg)
	require.NoError(t, err)

	resp, err := clt.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: []openai.ChatCompletionMessage{{Role: UserRole, Content: "ping"}},
	})
	require.NoError(t, err)
	var llmResp LLMResponse
	llmResp.FromOpenAI(&resp)
	llmResp.FromOpenAI(&resp)
	assert.Equal(t, "cmpl-1", llmResp.ID)
	assert.Equal(t, int64(6), llmResp.Usage.InputTokens)
	assert.Equal(t, int64(8), llmResp.Usage.Total())
}

func TestMessageToOpenAI(t *testing.T) {
	calls := []ToolCall{{ID: "call_1", Name: "deterministic_calculator", Arguments: `{"expression":"1+1"}`}}
	var dist openai.ChatCompletionMessage
	NewToolCallsMessage(schema.String(""), calls).ToOpenAI(&dist)
	assert.Equal(t, AssistantRole, dist.Role)
	require.Len(t, dist.ToolCalls, 1)
	assert.Equal(t, openai.ToolTypeFunction, dist.ToolCalls[0].Type)
	assert.Equal(t, calls, ToolCallsFromOpenAI(dist.ToolCalls))

	dist = openai.ChatCompletionMessage{}
	NewToolCallbackMessage(ToolCallback{ID: "call_1", Name: "deterministic_calculator", Content: "division by zero", IsError: true}).ToOpenAI(&dist)
	assert.Equal(t, ToolRole, dist.Role)
	assert.Equal(t, "call_1", dist.ToolCallID)
	assert.Equal(t, "Error: division by zero", dist.Content)
}

func TestMemoryOverflowKeepsToolCallsWithResults(t *testing.T) {
	m := NewMemory(3)
	m.NewTurn()
	m.NewMessage(UserRole, schema.String("first"))
	m.Append(NewToolCallsMessage(schema.String(""), []ToolCall{{ID: "1", Name: "x"}}))
	m.Append(NewToolCallbackMessage(ToolCallback{ID: "1", Content: "ok"}))
	turn := m.NewTurn()
	m.NewMessage(UserRole, schema.String("second"))

	history := m.History()
	require.Len(t, history, 1)
	assert.Equal(t, UserRole, history[0].Role())
	assert.Equal(t, turn, history[0].TurnID())

	assert.Equal(t, 1, m.MessageCount())
}
