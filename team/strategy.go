package team

import (
	"context"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/executor"
)

// Runner executes a single task through a single agent. It is implemented by
// executor.Executor; strategies never talk to providers directly.
type Runner interface {
	Execute(ctx context.Context, agentID, task string, execCtx map[string]any, optFns ...func(o *executor.CallOptions)) (*executor.Result, error)
}

// RunInput carries everything a strategy needs for one team run: the task,
// the caller context, the team's coordination tunables, the id of the parent
// team execution record and the worker pool used for fan-out stages.
type RunInput struct {
	TeamExecutionID string
	Task            string
	Context         map[string]any
	Config          core.CoordinationConfig
	Pool            *Pool
}

// Strategy executes a team's members under one coordination topology and
// returns the per-agent result records in stage order. On error the records
// completed so far are returned alongside it; the orchestrator persists them
// on the failed execution.
type Strategy interface {
	// Structure returns the topology this strategy implements.
	Structure() core.TeamStructure

	// Run drives the members through the pattern's stages.
	Run(ctx context.Context, runner Runner, members []core.TeamMember, in RunInput) ([]core.AgentResult, error)
}

// strategies returns the built-in pattern set keyed by structure.
func strategies() map[core.TeamStructure]Strategy {
	all := []Strategy{Hierarchical{}, Collaborative{}, Pipeline{}, Democratic{}}
	m := make(map[core.TeamStructure]Strategy, len(all))
	for _, s := range all {
		m[s.Structure()] = s
	}
	return m
}

// runMember invokes the runner for one member, linking the resulting agent
// execution record to the parent team execution and applying the team's
// retry budget.
func runMember(ctx context.Context, runner Runner, in RunInput, m core.TeamMember, task string, execCtx map[string]any) (*executor.Result, error) {
	return runner.Execute(ctx, m.AgentID, task, execCtx,
		executor.WithTeamExecutionID(in.TeamExecutionID),
		executor.WithMaxRetries(in.Config.MaxRetries))
}

func cloneContext(execCtx map[string]any) map[string]any {
	cp := make(map[string]any, len(execCtx))
	for k, v := range execCtx {
		cp[k] = v
	}
	return cp
}
