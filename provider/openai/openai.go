// Package openai implements the provider.Client interface on top of the
// official OpenAI Go SDK (Chat Completions). The same adapter serves any
// OpenAI-compatible API through a base URL override; the provider/groq
// package reuses it that way.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/provider"
)

const apiKeyEnv = "OPENAI_API_KEY"

// Options configure the OpenAI adapter. APIKey falls back to the provider's
// environment variable when empty.
type Options struct {
	APIKey  string
	BaseURL string
}

// Client calls the OpenAI Chat Completions API.
type Client struct {
	name   string
	keyEnv string
	opts   Options
}

// New creates an OpenAI client. The API key is resolved from OPENAI_API_KEY
// unless overridden via options.
func New(optFns ...func(o *Options)) *Client {
	return NewCompatible(core.ProviderOpenAI, apiKeyEnv, "", optFns...)
}

// NewCompatible creates a client for an OpenAI-compatible API under a
// different provider name, key environment variable and base URL.
func NewCompatible(name, keyEnv, baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{BaseURL: baseURL}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{name: name, keyEnv: keyEnv, opts: opts}
}

// WithAPIKey overrides the environment-resolved API key.
func WithAPIKey(key string) func(o *Options) {
	return func(o *Options) { o.APIKey = key }
}

// WithBaseURL points the adapter at a different OpenAI-compatible endpoint.
func WithBaseURL(url string) func(o *Options) {
	return func(o *Options) { o.BaseURL = url }
}

// Name implements provider.Client.
func (c *Client) Name() string { return c.name }

// Call implements provider.Client. The system prompt is embedded as the
// first chat message. A missing API key fails before any network I/O.
func (c *Client) Call(ctx context.Context, cfg core.ModelConfig, task, systemPrompt string) (*provider.Response, error) {
	key := c.opts.APIKey
	if key == "" {
		key = os.Getenv(c.keyEnv)
	}
	if key == "" {
		return nil, &core.ConfigurationError{Reason: fmt.Sprintf("%s is not set", c.keyEnv)}
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(key)}
	if c.opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(c.opts.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(task),
		},
		Temperature: openai.Float(cfg.Temperature),
		MaxTokens:   openai.Int(cfg.MaxTokens),
		TopP:        openai.Float(cfg.TopP),
	}
	if cfg.FrequencyPenalty != nil {
		params.FrequencyPenalty = openai.Float(*cfg.FrequencyPenalty)
	}
	if cfg.PresencePenalty != nil {
		params.PresencePenalty = openai.Float(*cfg.PresencePenalty)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &core.ProviderError{Provider: c.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &core.ProviderError{Provider: c.name, Err: fmt.Errorf("no choices returned")}
	}

	inTokens := int(resp.Usage.PromptTokens)
	outTokens := int(resp.Usage.CompletionTokens)

	return &provider.Response{
		Content:      resp.Choices[0].Message.Content,
		InputTokens:  inTokens,
		OutputTokens: outTokens,
		Cost:         provider.Cost(cfg.Model, inTokens, outTokens),
	}, nil
}
