package components

import (
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = openai.ChatMessageRoleSystem
	UserRole      MessageRole = openai.ChatMessageRoleUser
	AssistantRole MessageRole = openai.ChatMessageRoleAssistant
	ToolRole      MessageRole = openai.ChatMessageRoleTool
)

// Message represents a message in the chat history.
type Message struct {
	content schema.Schema
	// role is the role of the message sender (e.g., 'user', 'system', 'tool')
	role MessageRole
	//	turnID is Unique identifier for the turn this message belongs to.
	turnID string
	// toolCalls requested by an assistant message
	toolCalls []ToolCall
	// callback answers a single tool call
	callback *ToolCallback
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolCallsMessage returns an assistant message requesting tool calls
func NewToolCallsMessage(content schema.Schema, calls []ToolCall) *Message {
	return &Message{
		role:      AssistantRole,
		content:   content,
		toolCalls: calls,
	}
}

// NewToolCallbackMessage returns a tool message carrying a tool result
func NewToolCallbackMessage(cb ToolCallback) *Message {
	return &Message{
		role:     ToolRole,
		content:  schema.String(cb.Content),
		callback: &cb,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToolCalls returns the tool calls of an assistant message
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = schema.Stringify(m.content)
	if len(m.toolCalls) > 0 {
		dist.ToolCalls = ToolCallsToOpenAI(m.toolCalls)
	}
	if cb := m.callback; cb != nil {
		cb.ToOpenAI(dist)
	}
}
