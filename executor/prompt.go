package executor

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agenthub/core"
)

// DefaultBasePrompt is the instruction every system prompt starts from when
// the caller does not supply one via the context bag.
const DefaultBasePrompt = "You are a helpful AI assistant."

// buildSystemPrompt assembles the system prompt for one execution: base
// instruction, personality, then up to contextWindow recent memory turns
// rendered as "role: content" lines.
func buildSystemPrompt(base string, agent *core.Agent) string {
	var sb strings.Builder
	sb.WriteString(base)

	p := agent.Personality
	if len(p.Traits) > 0 {
		fmt.Fprintf(&sb, "\n\nYour personality traits: %s.", strings.Join(p.Traits, ", "))
	}
	if p.Tone != "" {
		fmt.Fprintf(&sb, "\nCommunication tone: %s.", p.Tone)
	}
	if len(p.Expertise) > 0 {
		fmt.Fprintf(&sb, "\nExpertise areas: %s.", strings.Join(p.Expertise, ", "))
	}

	if recent := agent.Memory.Recent(agent.Memory.ContextWindow); len(recent) > 0 {
		sb.WriteString("\n\nRecent conversation history:")
		for _, turn := range recent {
			fmt.Fprintf(&sb, "\n%s: %s", turn.Role, turn.Content)
		}
	}

	return sb.String()
}

// systemPromptBase picks the base instruction, honoring a "systemPrompt"
// override in the execution context.
func systemPromptBase(execCtx map[string]any, fallback string) string {
	if execCtx != nil {
		if s, ok := execCtx["systemPrompt"].(string); ok && s != "" {
			return s
		}
	}
	if fallback != "" {
		return fallback
	}
	return DefaultBasePrompt
}
