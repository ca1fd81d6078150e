// Package groq implements the provider.Client interface for the Groq API,
// which exposes an OpenAI-compatible Chat Completions surface on a different
// host. The adapter reuses the OpenAI SDK through provider/openai.
package groq

import (
	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/provider/openai"
)

const (
	apiKeyEnv      = "GROQ_API_KEY"
	defaultBaseURL = "https://api.groq.com/openai/v1"
)

// New creates a Groq client. The API key is resolved from GROQ_API_KEY
// unless overridden via options.
func New(optFns ...func(o *openai.Options)) *openai.Client {
	return openai.NewCompatible(core.ProviderGroq, apiKeyEnv, defaultBaseURL, optFns...)
}
