// Package provider defines the uniform client interface AgentHub uses to call
// external LLM HTTP APIs, a name-keyed registry for dispatching to the
// configured provider, and the static cost model applied to reported token
// usage. Concrete adapters live in the provider/openai, provider/anthropic
// and provider/groq subpackages.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agenthub/core"
)

// Response is the normalized result of one provider call. Providers that do
// not report usage yield zero tokens and zero cost rather than an error.
type Response struct {
	Content      string  `json:"content"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

// TotalTokens returns the combined input and output token count.
func (r *Response) TotalTokens() int { return r.InputTokens + r.OutputTokens }

// Client is the uniform call into one LLM provider. Implementations validate
// their credentials before any network I/O and wrap transport or API failures
// into a core.ProviderError.
type Client interface {
	// Name returns the provider key this client serves (e.g. "openai").
	Name() string

	// Call sends the task with the given system prompt to the provider using
	// the agent's model configuration and returns the normalized response.
	Call(ctx context.Context, cfg core.ModelConfig, task, systemPrompt string) (*Response, error)
}

// Registry maps provider names to clients so adding a provider does not
// require editing a dispatcher. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewRegistry constructs a registry pre-populated with the given clients.
func NewRegistry(clients ...Client) *Registry {
	r := &Registry{clients: make(map[string]Client, len(clients))}
	for _, c := range clients {
		r.clients[c.Name()] = c
	}
	return r
}

// Register adds or replaces the client for its provider name.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.Name()] = c
}

// Get returns the client registered for the provider name. An unknown
// provider is a ConfigurationError.
func (r *Registry) Get(name string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[name]
	if !ok {
		return nil, &core.ConfigurationError{Reason: fmt.Sprintf("no client registered for provider %q", name)}
	}
	return c, nil
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for n := range r.clients {
		names = append(names, n)
	}
	return names
}
