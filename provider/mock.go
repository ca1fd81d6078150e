package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agenthub/core"
)

// MockClient is a lightweight in-memory Client useful for tests & examples.
// Responses are keyed by task; unmatched tasks get a deterministic echo.
type MockClient struct {
	mu        sync.Mutex
	name      string
	responses map[string]string
	errs      map[string]error
	calls     []string
	prompts   []string

	// Tokens reported on every successful call.
	InputTokens  int
	OutputTokens int
}

// NewMockClient constructs a MockClient answering for the given provider name.
func NewMockClient(name string) *MockClient {
	return &MockClient{
		name:         name,
		responses:    make(map[string]string),
		errs:         make(map[string]error),
		InputTokens:  10,
		OutputTokens: 20,
	}
}

// AddResponse registers a canned completion for a task.
func (m *MockClient) AddResponse(task, response string) { m.responses[task] = response }

// AddError makes the given task fail with err.
func (m *MockClient) AddError(task string, err error) { m.errs[task] = err }

// Calls returns the tasks received so far, in call order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// SystemPrompts returns the system prompts received so far, in call order.
func (m *MockClient) SystemPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Name implements Client.
func (m *MockClient) Name() string { return m.name }

// Call implements Client.
func (m *MockClient) Call(_ context.Context, cfg core.ModelConfig, task, systemPrompt string) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, task)
	m.prompts = append(m.prompts, systemPrompt)
	m.mu.Unlock()

	if err, ok := m.errs[task]; ok {
		return nil, &core.ProviderError{Provider: m.name, Err: err}
	}
	content, ok := m.responses[task]
	if !ok {
		content = fmt.Sprintf("Mock response to: %s", task)
	}
	return &Response{
		Content:      content,
		InputTokens:  m.InputTokens,
		OutputTokens: m.OutputTokens,
		Cost:         Cost(cfg.Model, m.InputTokens, m.OutputTokens),
	}, nil
}
