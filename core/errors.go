package core

import "fmt"

// ValidationError reports rejected execution input: an empty or oversized
// task. Raised before any execution record is created.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validation error: %s", e.Reason) }

// ConfigurationError reports an unusable agent or provider configuration:
// unsupported provider, out-of-range tuning values, missing API key, or an
// inactive agent. Raised before any provider call.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ProviderError wraps a failed provider HTTP call or a malformed provider
// response. The provider's own error message is preserved when present.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NotFoundError reports an unknown agent, team or member reference.
type NotFoundError struct {
	Kind string // "agent", "team", "team member"
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found: %s", e.Kind, e.ID) }

// StructureError reports a topology invariant violation or an inactive member
// discovered during pre-dispatch validation.
type StructureError struct {
	Structure TeamStructure
	Reason    string
}

func (e *StructureError) Error() string {
	if e.Structure == "" {
		return fmt.Sprintf("team structure: %s", e.Reason)
	}
	return fmt.Sprintf("team structure %s: %s", e.Structure, e.Reason)
}
