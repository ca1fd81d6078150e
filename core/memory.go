package core

import "time"

// Turn is a single conversation entry in an agent's rolling memory.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultContextWindow is the number of turn pairs retained when an agent is
// created without an explicit window.
const DefaultContextWindow = 10

// Memory is an agent's bounded conversation history. The history never holds
// more than 2*ContextWindow turns (ContextWindow user/assistant pairs); the
// bound is enforced by AppendExchange, which evicts the oldest turns first.
type Memory struct {
	ConversationHistory []Turn   `json:"conversation_history"`
	ContextWindow       int      `json:"context_window"`
	KnowledgeBase       []string `json:"knowledge_base,omitempty"`
}

// NewMemory returns an empty memory with the given window. A non-positive
// window falls back to DefaultContextWindow.
func NewMemory(contextWindow int) Memory {
	if contextWindow <= 0 {
		contextWindow = DefaultContextWindow
	}
	return Memory{ContextWindow: contextWindow}
}

// Capacity returns the maximum number of turns the history may hold.
func (m *Memory) Capacity() int {
	window := m.ContextWindow
	if window <= 0 {
		window = DefaultContextWindow
	}
	return 2 * window
}

// AppendExchange records one completed user/assistant exchange and trims the
// history to capacity, dropping the oldest turns (FIFO eviction).
func (m *Memory) AppendExchange(task, response string, at time.Time) {
	m.ConversationHistory = append(m.ConversationHistory,
		Turn{Role: "user", Content: task, Timestamp: at},
		Turn{Role: "assistant", Content: response, Timestamp: at},
	)
	if excess := len(m.ConversationHistory) - m.Capacity(); excess > 0 {
		m.ConversationHistory = append(m.ConversationHistory[:0:0], m.ConversationHistory[excess:]...)
	}
}

// Recent returns up to n of the most recent turns, oldest first.
func (m *Memory) Recent(n int) []Turn {
	if n <= 0 || len(m.ConversationHistory) == 0 {
		return nil
	}
	if n > len(m.ConversationHistory) {
		n = len(m.ConversationHistory)
	}
	return m.ConversationHistory[len(m.ConversationHistory)-n:]
}

// Clone returns a deep copy of the memory.
func (m Memory) Clone() Memory {
	cp := m
	cp.ConversationHistory = append([]Turn(nil), m.ConversationHistory...)
	cp.KnowledgeBase = append([]string(nil), m.KnowledgeBase...)
	return cp
}
