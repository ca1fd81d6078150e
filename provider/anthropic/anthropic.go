// Package anthropic implements the provider.Client interface on top of the
// official Anthropic Go SDK (Messages API). Unlike the chat-completion style
// providers, Anthropic takes the system prompt as a separate request field
// instead of a leading message.
package anthropic

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/provider"
)

const apiKeyEnv = "ANTHROPIC_API_KEY"

// Options configure the Anthropic adapter. APIKey falls back to
// ANTHROPIC_API_KEY when empty.
type Options struct {
	APIKey string
}

// Client calls the Anthropic Messages API.
type Client struct {
	opts Options
}

// New creates an Anthropic client.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{opts: opts}
}

// WithAPIKey overrides the environment-resolved API key.
func WithAPIKey(key string) func(o *Options) {
	return func(o *Options) { o.APIKey = key }
}

// Name implements provider.Client.
func (c *Client) Name() string { return core.ProviderAnthropic }

// Call implements provider.Client. The system prompt goes into the request's
// system blocks; the task is the single user message.
func (c *Client) Call(ctx context.Context, cfg core.ModelConfig, task, systemPrompt string) (*provider.Response, error) {
	key := c.opts.APIKey
	if key == "" {
		key = os.Getenv(apiKeyEnv)
	}
	if key == "" {
		return nil, &core.ConfigurationError{Reason: fmt.Sprintf("%s is not set", apiKeyEnv)}
	}

	client := anthropic.NewClient(option.WithAPIKey(key))

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(cfg.Model),
		MaxTokens:   cfg.MaxTokens,
		Temperature: anthropic.Float(cfg.Temperature),
		TopP:        anthropic.Float(cfg.TopP),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(task)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return nil, &core.ProviderError{Provider: core.ProviderAnthropic, Err: err}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	inTokens := int(resp.Usage.InputTokens)
	outTokens := int(resp.Usage.OutputTokens)

	return &provider.Response{
		Content:      sb.String(),
		InputTokens:  inTokens,
		OutputTokens: outTokens,
		Cost:         provider.Cost(cfg.Model, inTokens, outTokens),
	}, nil
}
