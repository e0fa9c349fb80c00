package components

import (
	"sync"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/schema"
)

// Memory keeps the conversation of one agent run: the task prompt, assistant
// replies, tool calls and tool results. Safe for concurrent use.
type Memory struct {
	history []Message
	turnID  string
	// maxMessages bounds the history. When exceeded the oldest turn fragments
	// are dropped until the history starts at a user message again, so a tool
	// result is never kept without the call that produced it.
	maxMessages int
	mtx         sync.RWMutex
}

// NewMemory initializes the Memory with an empty history. Zero maxMessages
// means unbounded.
func NewMemory(maxMessages int) *Memory {
	return &Memory{
		maxMessages: maxMessages,
		history:     make([]Message, 0, maxMessages+1),
	}
}

// TurnID returns the current turn ID
func (m *Memory) TurnID() string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.turnID
}

// NewTurn starts a new turn with a random turn ID and returns the ID
func (m *Memory) NewTurn() string {
	id := NewTurnID()
	m.mtx.Lock()
	m.turnID = id
	m.mtx.Unlock()
	return id
}

// NewMessage adds a message with role and content to the current turn
func (m *Memory) NewMessage(role MessageRole, content schema.Schema) *Message {
	msg := NewMessage(role, content)
	m.Append(msg)
	return msg
}

// Append adds msg to the current turn
func (m *Memory) Append(msg *Message) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	msg.SetTurnID(m.turnID)
	m.history = append(m.history, *msg)
	if m.maxMessages <= 0 || len(m.history) <= m.maxMessages {
		return
	}
	start := len(m.history) - m.maxMessages
	for start < len(m.history) && m.history[start].Role() != UserRole {
		start++
	}
	if start == len(m.history) {
		start = len(m.history) - 1
	}
	m.history = append(m.history[:0:0], m.history[start:]...)
}

// History returns a copy of the chat history
func (m *Memory) History() []Message {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	ret := make([]Message, len(m.history))
	copy(ret, m.history)
	return ret
}

// MessageCount returns the number of messages in the chat history.
func (m *Memory) MessageCount() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.history)
}
