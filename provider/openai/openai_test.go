package openai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agenthub/core"
)

func validConfig() core.ModelConfig {
	return core.ModelConfig{
		Provider:    core.ProviderOpenAI,
		Model:       "gpt-4",
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        1,
	}
}

func TestClient_Name(t *testing.T) {
	assert.Equal(t, core.ProviderOpenAI, New().Name())
}

func TestClient_Call_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	client := New()
	_, err := client.Call(context.Background(), validConfig(), "task", "system")

	assert.Error(t, err)
	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewCompatible_CustomNameAndEnv(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "")

	client := NewCompatible("custom", "CUSTOM_KEY", "https://example.com/v1")
	assert.Equal(t, "custom", client.Name())

	_, err := client.Call(context.Background(), validConfig(), "task", "system")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CUSTOM_KEY")
}
