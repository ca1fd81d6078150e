package core

import (
	"fmt"
	"time"
)

// AgentStatus reflects what an agent is currently doing. Transitions are
// IDLE -> BUSY -> IDLE on success and IDLE -> BUSY -> ERROR on failure; a
// subsequent successful execution returns the agent to IDLE.
type AgentStatus string

const (
	// AgentStatusIdle marks an agent as available for execution.
	AgentStatusIdle AgentStatus = "IDLE"
	// AgentStatusBusy marks an agent as currently executing a task.
	AgentStatusBusy AgentStatus = "BUSY"
	// AgentStatusError marks an agent whose last execution failed.
	AgentStatusError AgentStatus = "ERROR"
)

// Tone is the communication register an agent adopts in its system prompt.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneCasual       Tone = "casual"
	ToneFormal       Tone = "formal"
)

// Personality shapes the system prompt built for every execution. All fields
// are optional; empty values contribute nothing to the prompt.
type Personality struct {
	Traits    []string `json:"traits,omitempty"`
	Tone      Tone     `json:"tone,omitempty"`
	Expertise []string `json:"expertise,omitempty"`
}

// Supported provider names. The provider registry is keyed by these values.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
)

// ModelConfig selects and tunes the LLM backing an agent.
type ModelConfig struct {
	Provider         string   `json:"provider"`
	Model            string   `json:"model"`
	Temperature      float64  `json:"temperature"`
	MaxTokens        int64    `json:"max_tokens"`
	TopP             float64  `json:"top_p"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
}

// Validate checks the configuration bounds enforced before any provider call.
// A violation is reported as a ConfigurationError.
func (c ModelConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGroq:
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unsupported provider: %s", c.Provider)}
	}
	if c.Model == "" {
		return &ConfigurationError{Reason: "model must not be empty"}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return &ConfigurationError{Reason: fmt.Sprintf("temperature %v out of range [0, 2]", c.Temperature)}
	}
	if c.MaxTokens < 1 || c.MaxTokens > 32000 {
		return &ConfigurationError{Reason: fmt.Sprintf("max_tokens %d out of range [1, 32000]", c.MaxTokens)}
	}
	if c.TopP < 0 || c.TopP > 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("top_p %v out of range [0, 1]", c.TopP)}
	}
	return nil
}

// Agent is a configured LLM persona. Agents are long-lived operator-managed
// entities; executions mutate their status, memory and rolling metrics.
type Agent struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Personality  Personality `json:"personality"`
	ModelConfig  ModelConfig `json:"model_config"`
	Capabilities []string    `json:"capabilities,omitempty"` // informational tags
	Memory       Memory      `json:"memory"`
	Status       AgentStatus `json:"status"`
	IsActive     bool        `json:"is_active"`

	// Rolling metrics over the recent execution window.
	ExecutionCount  int     `json:"execution_count"`
	SuccessRate     float64 `json:"success_rate"`
	AvgResponseTime float64 `json:"avg_response_time"` // milliseconds

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy so store reads never alias internal state.
func (a *Agent) Clone() *Agent {
	cp := *a
	cp.Personality.Traits = append([]string(nil), a.Personality.Traits...)
	cp.Personality.Expertise = append([]string(nil), a.Personality.Expertise...)
	cp.Capabilities = append([]string(nil), a.Capabilities...)
	cp.Memory = a.Memory.Clone()
	if a.ModelConfig.FrequencyPenalty != nil {
		v := *a.ModelConfig.FrequencyPenalty
		cp.ModelConfig.FrequencyPenalty = &v
	}
	if a.ModelConfig.PresencePenalty != nil {
		v := *a.ModelConfig.PresencePenalty
		cp.ModelConfig.PresencePenalty = &v
	}
	return &cp
}
