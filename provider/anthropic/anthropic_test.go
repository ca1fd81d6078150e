package anthropic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agenthub/core"
)

func TestClient_Name(t *testing.T) {
	assert.Equal(t, core.ProviderAnthropic, New().Name())
}

func TestClient_Call_MissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	client := New()
	cfg := core.ModelConfig{
		Provider:    core.ProviderAnthropic,
		Model:       "claude-3-sonnet",
		Temperature: 0.5,
		MaxTokens:   2048,
		TopP:        1,
	}

	_, err := client.Call(context.Background(), cfg, "task", "system")

	assert.Error(t, err)
	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}
