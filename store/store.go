// Package store defines the persistence boundary consumed by the executor
// and orchestrator: agent and team catalogs plus append-only execution
// history. In-memory implementations cover tests and ephemeral use; the
// Badger-backed execution store persists history across restarts.
package store

import (
	"context"
	"errors"

	"github.com/hupe1980/agenthub/core"
)

// ErrNotFound is returned when a record with the given id does not exist in
// the underlying store.
var ErrNotFound = errors.New("record not found")

// AgentStore manages the agent catalog.
type AgentStore interface {
	// GetAgent returns the agent with the given id or ErrNotFound.
	GetAgent(ctx context.Context, id string) (*core.Agent, error)

	// PutAgent creates or replaces an agent record.
	PutAgent(ctx context.Context, agent *core.Agent) error

	// ListAgents returns all agents.
	ListAgents(ctx context.Context) ([]*core.Agent, error)
}

// TeamStore manages the team catalog, members included.
type TeamStore interface {
	// GetTeam returns the team with the given id or ErrNotFound.
	GetTeam(ctx context.Context, id string) (*core.Team, error)

	// PutTeam creates or replaces a team record.
	PutTeam(ctx context.Context, team *core.Team) error

	// ListTeams returns all teams.
	ListTeams(ctx context.Context) ([]*core.Team, error)
}

// ExecutionStore records execution history. Records are append-only: they are
// created once and updated exactly twice (RUNNING, then a terminal state);
// the core never deletes them.
type ExecutionStore interface {
	// CreateAgentExecution appends a new agent execution record.
	CreateAgentExecution(ctx context.Context, exec *core.AgentExecution) error

	// UpdateAgentExecution replaces an existing agent execution record.
	UpdateAgentExecution(ctx context.Context, exec *core.AgentExecution) error

	// RecentAgentExecutions returns up to limit executions for the agent,
	// newest first.
	RecentAgentExecutions(ctx context.Context, agentID string, limit int) ([]core.AgentExecution, error)

	// CreateTeamExecution appends a new team execution record.
	CreateTeamExecution(ctx context.Context, exec *core.TeamExecution) error

	// UpdateTeamExecution replaces an existing team execution record.
	UpdateTeamExecution(ctx context.Context, exec *core.TeamExecution) error

	// RecentTeamExecutions returns up to limit executions for the team,
	// newest first.
	RecentTeamExecutions(ctx context.Context, teamID string, limit int) ([]core.TeamExecution, error)
}
