// Package core defines the shared domain model for AgentHub: agents with
// personality, model configuration and bounded conversation memory; teams
// bound to a coordination structure; and the execution records produced by
// running either. All other packages depend on core and core depends on
// nothing inside the module.
package core
