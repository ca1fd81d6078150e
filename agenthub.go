// Package agenthub provides a high-level façade over the agent executor and
// the team orchestrator. Most applications interact with this package by:
//  1. Creating a Hub via New() (optionally overriding the default in-memory
//     stores, the provider registry or the logger)
//  2. Registering agents and composing them into teams
//  3. Executing tasks through a single agent (ExecuteAgent) or a coordinated
//     team (ExecuteTeam)
//
// The façade delegates single-agent runs to executor.Executor and team runs
// to team.Orchestrator while keeping setup ergonomics concise. All defaults
// are safe for local development and testing; production deployments
// typically supply a durable execution store and a structured logger.
package agenthub

import (
	"context"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/executor"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/provider"
	"github.com/hupe1980/agenthub/provider/anthropic"
	"github.com/hupe1980/agenthub/provider/groq"
	"github.com/hupe1980/agenthub/provider/openai"
	"github.com/hupe1980/agenthub/store"
	"github.com/hupe1980/agenthub/team"
)

// Options configures the Hub.
type Options struct {
	// Stores (default to one shared in-memory implementation if not provided).
	AgentStore     store.AgentStore
	TeamStore      store.TeamStore
	ExecutionStore store.ExecutionStore

	// Providers defaults to a registry with the OpenAI, Anthropic and Groq
	// adapters registered. API keys are read from the environment at call
	// time, so registering an adapter without its key is harmless until an
	// agent routes to it.
	Providers *provider.Registry

	// BasePrompt overrides the default system prompt opening.
	BasePrompt string

	// PoolSize bounds concurrent member calls per team fan-out stage.
	PoolSize int

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Hub is the high-level façade aggregating the executor, the orchestrator
// and the team catalog service.
type Hub struct {
	opts         Options
	agents       store.AgentStore
	executor     *executor.Executor
	orchestrator *team.Orchestrator
	teams        *team.Service
}

// New creates a Hub with optional overrides. Any unset store is initialized
// with a shared in-memory implementation.
func New(optFns ...func(o *Options)) (*Hub, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if opts.AgentStore == nil || opts.TeamStore == nil || opts.ExecutionStore == nil {
		mem := store.NewInMemory()
		if opts.AgentStore == nil {
			opts.AgentStore = mem
		}
		if opts.TeamStore == nil {
			opts.TeamStore = mem
		}
		if opts.ExecutionStore == nil {
			opts.ExecutionStore = mem
		}
	}

	if opts.Providers == nil {
		opts.Providers = provider.NewRegistry()
		opts.Providers.Register(openai.New())
		opts.Providers.Register(anthropic.New())
		opts.Providers.Register(groq.New())
	}

	exec := executor.New(opts.AgentStore, opts.ExecutionStore, opts.Providers,
		executor.WithBasePrompt(opts.BasePrompt),
		executor.WithLogger(opts.Logger),
	)

	orch, err := team.New(opts.TeamStore, opts.AgentStore, opts.ExecutionStore, exec,
		team.WithPoolSize(opts.PoolSize),
		team.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, err
	}

	return &Hub{
		opts:         opts,
		agents:       opts.AgentStore,
		executor:     exec,
		orchestrator: orch,
		teams:        team.NewService(opts.TeamStore, opts.AgentStore),
	}, nil
}

// Close releases the orchestrator's worker pool.
func (h *Hub) Close() { h.orchestrator.Close() }

// RegisterAgent adds or replaces an agent in the catalog.
func (h *Hub) RegisterAgent(ctx context.Context, agent *core.Agent) error {
	return h.agents.PutAgent(ctx, agent)
}

// Teams returns the team catalog service for creating teams and managing
// their membership.
func (h *Hub) Teams() *team.Service { return h.teams }

// ExecuteAgent runs one task through one agent.
func (h *Hub) ExecuteAgent(ctx context.Context, agentID, task string, execCtx map[string]any, optFns ...func(o *executor.CallOptions)) (*executor.Result, error) {
	return h.executor.Execute(ctx, agentID, task, execCtx, optFns...)
}

// ExecuteTeam runs one task through one team under its configured structure.
func (h *Hub) ExecuteTeam(ctx context.Context, teamID, task string, execCtx map[string]any, optFns ...func(o *team.ExecuteOptions)) (*core.TeamExecution, error) {
	return h.orchestrator.Execute(ctx, teamID, task, execCtx, optFns...)
}
