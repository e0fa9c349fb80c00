package components

import (
	openai "github.com/sashabaranov/go-openai"
)

// ToolCall is a function call requested by the model
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

func ToolCallsFromOpenAI(src []openai.ToolCall) []ToolCall {
	list := make([]ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, ToolCall{
			ID:        v.ID,
			Name:      v.Function.Name,
			Arguments: v.Function.Arguments,
		})
	}
	return list
}

func ToolCallsToOpenAI(src []ToolCall) []openai.ToolCall {
	list := make([]openai.ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, openai.ToolCall{
			ID:   v.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      v.Name,
				Arguments: v.Arguments,
			},
		})
	}
	return list
}

// ToolCallback is the result of a ToolCall handed back to the model
type ToolCallback struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// ToOpenAI fills a tool role message. Failed calls are prefixed so the model
// can tell them apart from results.
func (c ToolCallback) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = openai.ChatMessageRoleTool
	dist.ToolCallID = c.ID
	dist.Name = c.Name
	dist.Content = c.Content
	if c.IsError {
		dist.Content = "Error: " + c.Content
	}
}
