// Package team composes agents into coordinated teams. A team binds ordered
// members to one of four topologies: hierarchical delegation through a
// leader, collaborative fan-out with consensus, a sequential pipeline, or
// democratic propose-and-vote. The orchestrator validates the structure,
// records the execution lifecycle, dispatches the matching pattern strategy
// and aggregates the per-agent results into one answer with token and cost
// totals.
package team

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/metrics"
	"github.com/hupe1980/agenthub/store"
)

// Options configure an Orchestrator.
type Options struct {
	// PoolSize bounds concurrent member calls per fan-out stage. Defaults to
	// DefaultPoolSize.
	PoolSize int

	// Logger records orchestration lifecycle events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// WithPoolSize sets the fan-out worker pool size.
func WithPoolSize(n int) func(o *Options) {
	return func(o *Options) { o.PoolSize = n }
}

// WithLogger sets the orchestrator's logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// ExecuteOptions tune a single Execute invocation.
type ExecuteOptions struct {
	// Pattern overrides the team's configured structure for this run. The
	// override is validated against the members like the configured one.
	Pattern core.TeamStructure
}

// WithPattern overrides the team's structure for one execution.
func WithPattern(p core.TeamStructure) func(o *ExecuteOptions) {
	return func(o *ExecuteOptions) { o.Pattern = p }
}

// patternExecutionLogger is implemented by loggers that record aggregate
// pattern run telemetry, like logging.AgentHubLogger.
type patternExecutionLogger interface {
	LogPatternExecution(pattern string, agentCalls int, dur time.Duration, success bool, err error)
}

// Orchestrator executes tasks through teams.
type Orchestrator struct {
	teams      store.TeamStore
	agents     store.AgentStore
	execs      store.ExecutionStore
	runner     Runner
	strategies map[core.TeamStructure]Strategy
	pool       *Pool
	opts       Options
}

// New constructs an Orchestrator over the given stores and runner.
func New(teams store.TeamStore, agents store.AgentStore, execs store.ExecutionStore, runner Runner, optFns ...func(o *Options)) (*Orchestrator, error) {
	opts := Options{PoolSize: DefaultPoolSize, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	pool, err := NewPool(opts.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &Orchestrator{
		teams:      teams,
		agents:     agents,
		execs:      execs,
		runner:     runner,
		strategies: strategies(),
		pool:       pool,
		opts:       opts,
	}, nil
}

// Close releases the fan-out worker pool.
func (o *Orchestrator) Close() {
	o.pool.Release()
}

// Execute runs one task through one team.
//
// Validation and structure errors surface before any execution record is
// created. Once a record exists, any pattern failure marks it FAILED with
// the partial results, recomputes team metrics (failures count) and
// re-raises the original error.
func (o *Orchestrator) Execute(ctx context.Context, teamID, task string, execCtx map[string]any, optFns ...func(o *ExecuteOptions)) (*core.TeamExecution, error) {
	execOpts := ExecuteOptions{}
	for _, fn := range optFns {
		fn(&execOpts)
	}

	if err := core.ValidateTask(task); err != nil {
		return nil, err
	}

	team, err := o.teams.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &core.NotFoundError{Kind: "team", ID: teamID}
		}
		return nil, err
	}
	if !team.IsActive {
		return nil, &core.ConfigurationError{Reason: fmt.Sprintf("team %s is not active", team.Name)}
	}

	pattern := team.Structure
	if execOpts.Pattern != "" {
		pattern = execOpts.Pattern
	}

	if err := ValidateStructure(pattern, team.Members); err != nil {
		return nil, err
	}

	members, err := o.hydrateMembers(ctx, pattern, team.Members)
	if err != nil {
		return nil, err
	}

	exec := &core.TeamExecution{
		ID:        core.NewID(),
		TeamID:    teamID,
		Task:      task,
		Input:     execCtx,
		Pattern:   pattern,
		Status:    core.StatusPending,
		StartedAt: time.Now(),
	}
	if err := o.execs.CreateTeamExecution(ctx, exec); err != nil {
		return nil, err
	}

	exec.Status = core.StatusRunning
	if err := o.execs.UpdateTeamExecution(ctx, exec); err != nil {
		return nil, err
	}

	runCtx := ctx
	if team.Coordination.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, team.Coordination.Timeout)
		defer cancel()
	}

	in := RunInput{
		TeamExecutionID: exec.ID,
		Task:            task,
		Context:         execCtx,
		Config:          team.Coordination,
		Pool:            o.pool,
	}

	o.opts.Logger.Info("team execution started",
		"team_id", teamID, "execution_id", exec.ID, "pattern", string(pattern), "members", len(members))

	results, runErr := o.strategies[pattern].Run(runCtx, o.runner, members, in)
	duration := time.Since(exec.StartedAt)

	if pl, ok := o.opts.Logger.(patternExecutionLogger); ok {
		pl.LogPatternExecution(string(pattern), len(results), duration, runErr == nil, runErr)
	}

	exec.AgentResults = results
	exec.TotalTokens, exec.TotalCost = totals(results)
	exec.CompletedAt = time.Now()
	exec.Duration = duration

	if runErr != nil {
		exec.Status = core.StatusFailed
		exec.Error = runErr.Error()
		if err := o.execs.UpdateTeamExecution(ctx, exec); err != nil {
			o.opts.Logger.Error("failed to persist failed team execution", "execution_id", exec.ID, "error", err)
		}
		o.refreshMetrics(ctx, team)
		o.opts.Logger.Error("team execution failed",
			"team_id", teamID, "execution_id", exec.ID, "error", runErr)
		return nil, runErr
	}

	exec.Status = core.StatusCompleted
	exec.Output, exec.Summary = formatResponse(pattern, results)
	if err := o.execs.UpdateTeamExecution(ctx, exec); err != nil {
		return nil, err
	}
	o.refreshMetrics(ctx, team)

	o.opts.Logger.Info("team execution completed",
		"team_id", teamID, "execution_id", exec.ID,
		"results", len(results), "tokens", exec.TotalTokens, "cost", exec.TotalCost, "duration", duration)

	return exec, nil
}

// hydrateMembers loads each member's agent record, rejects inactive agents
// listing them by name, denormalizes agent names onto the members and
// returns them ordered by priority ascending.
func (o *Orchestrator) hydrateMembers(ctx context.Context, pattern core.TeamStructure, members []core.TeamMember) ([]core.TeamMember, error) {
	hydrated := append([]core.TeamMember(nil), members...)

	var inactive []string
	for i := range hydrated {
		agent, err := o.agents.GetAgent(ctx, hydrated[i].AgentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, &core.NotFoundError{Kind: "agent", ID: hydrated[i].AgentID}
			}
			return nil, err
		}
		hydrated[i].AgentName = agent.Name
		if !agent.IsActive {
			inactive = append(inactive, agent.Name)
		}
	}
	if len(inactive) > 0 {
		return nil, &core.StructureError{
			Structure: pattern,
			Reason:    fmt.Sprintf("inactive agents: %s", strings.Join(inactive, ", ")),
		}
	}

	sort.SliceStable(hydrated, func(i, j int) bool { return hydrated[i].Priority < hydrated[j].Priority })
	return hydrated, nil
}

// refreshMetrics recomputes the team's rolling metrics from its most recent
// executions, the just-finished one included.
func (o *Orchestrator) refreshMetrics(ctx context.Context, team *core.Team) {
	recent, err := o.execs.RecentTeamExecutions(ctx, team.ID, metrics.Window)
	if err != nil {
		o.opts.Logger.Warn("failed to load recent executions for metrics", "team_id", team.ID, "error", err)
		return
	}
	m := metrics.Compute(metrics.TeamSamples(recent))
	team.SuccessRate = m.SuccessRate
	team.AvgResponseTime = m.AvgResponseTime
	team.UpdatedAt = time.Now()
	if err := o.teams.PutTeam(ctx, team); err != nil {
		o.opts.Logger.Error("failed to persist team metrics", "team_id", team.ID, "error", err)
	}
}
