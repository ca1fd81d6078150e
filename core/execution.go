package core

import (
	"time"

	"github.com/google/uuid"
)

// ExecutionStatus is the lifecycle of a single execution record. Records are
// created PENDING, move to RUNNING once dispatched, and finish in exactly one
// of the terminal states. Terminal states are final; there is no retry
// transition on a record.
type ExecutionStatus string

const (
	StatusPending   ExecutionStatus = "PENDING"
	StatusRunning   ExecutionStatus = "RUNNING"
	StatusCompleted ExecutionStatus = "COMPLETED"
	StatusFailed    ExecutionStatus = "FAILED"
)

// Terminal reports whether the status is final.
func (s ExecutionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// NewID returns a unique identifier for executions and members.
func NewID() string { return uuid.NewString() }

// AgentExecution is the append-only record of one agent invocation.
type AgentExecution struct {
	ID              string          `json:"id"`
	AgentID         string          `json:"agent_id"`
	TeamExecutionID string          `json:"team_execution_id,omitempty"`
	Task            string          `json:"task"`
	Input           map[string]any  `json:"input,omitempty"`
	Status          ExecutionStatus `json:"status"`
	Output          string          `json:"output,omitempty"`
	Error           string          `json:"error,omitempty"`
	Model           string          `json:"model,omitempty"`
	Provider        string          `json:"provider,omitempty"`

	TokensUsed   int     `json:"tokens_used"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`

	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at,omitzero"`
	Duration    time.Duration `json:"duration"`
}

// AgentResult is one entry in a team pattern's result list. Synthetic entries
// (consensus records) carry zero tokens, cost and duration.
type AgentResult struct {
	AgentID    string        `json:"agent_id"`
	AgentName  string        `json:"agent_name"`
	Role       TeamRole      `json:"role"`
	Output     string        `json:"output"`
	TokensUsed int           `json:"tokens_used"`
	Cost       float64       `json:"cost"`
	Duration   time.Duration `json:"duration"`
	Stage      string        `json:"stage,omitempty"`
	Weight     float64       `json:"weight,omitempty"`

	IsLeaderSynthesis bool `json:"is_leader_synthesis,omitempty"`
	IsWinner          bool `json:"is_winner,omitempty"`
}

// TeamExecution is the append-only record of one team invocation.
type TeamExecution struct {
	ID      string          `json:"id"`
	TeamID  string          `json:"team_id"`
	Task    string          `json:"task"`
	Input   map[string]any  `json:"input,omitempty"`
	Pattern TeamStructure   `json:"pattern"`
	Status  ExecutionStatus `json:"status"`
	Output  string          `json:"output,omitempty"`
	Summary string          `json:"summary,omitempty"`
	Error   string          `json:"error,omitempty"`

	AgentResults []AgentResult `json:"agent_results,omitempty"`
	TotalTokens  int           `json:"total_tokens"`
	TotalCost    float64       `json:"total_cost"`

	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at,omitzero"`
	Duration    time.Duration `json:"duration"`
}
