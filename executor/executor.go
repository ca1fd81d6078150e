// Package executor runs a single task through a single agent: it validates
// the input and the agent's model configuration, assembles the system prompt
// from personality and bounded memory, dispatches to the configured provider
// and maintains the agent's status, memory and rolling metrics along with a
// persisted execution record.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/metrics"
	"github.com/hupe1980/agenthub/provider"
	"github.com/hupe1980/agenthub/store"
)

// MaxTaskLength mirrors core.MaxTaskLength for callers configuring input
// validation against the executor.
const MaxTaskLength = core.MaxTaskLength

// Options configure an Executor.
type Options struct {
	// BasePrompt replaces DefaultBasePrompt as the system prompt opening.
	BasePrompt string

	// Logger records execution lifecycle events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// CallOptions tune a single Execute invocation.
type CallOptions struct {
	// MaxRetries re-attempts the provider call on provider failures. Retries
	// happen inside the one execution record; they never create new records.
	MaxRetries int

	// TeamExecutionID links the record to the team execution that spawned it.
	TeamExecutionID string
}

// WithMaxRetries sets the provider retry budget for one invocation.
func WithMaxRetries(n int) func(o *CallOptions) {
	return func(o *CallOptions) { o.MaxRetries = n }
}

// WithTeamExecutionID links the execution to a parent team execution.
func WithTeamExecutionID(id string) func(o *CallOptions) {
	return func(o *CallOptions) { o.TeamExecutionID = id }
}

// Result is the caller-facing outcome of one agent execution.
type Result struct {
	ID         string        `json:"id"`
	Output     string        `json:"output"`
	TokensUsed int           `json:"tokens_used"`
	Cost       float64       `json:"cost"`
	Duration   time.Duration `json:"duration"`
}

// Executor runs tasks through agents. Executions of the same agent are
// serialized by a per-agent lock so overlapping team runs cannot interleave
// memory and metric updates; different agents execute concurrently.
type Executor struct {
	agents    store.AgentStore
	execs     store.ExecutionStore
	providers *provider.Registry
	opts      Options

	locks sync.Map // agent id -> *sync.Mutex
}

// New constructs an Executor over the given stores and provider registry.
func New(agents store.AgentStore, execs store.ExecutionStore, providers *provider.Registry, optFns ...func(o *Options)) *Executor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Executor{agents: agents, execs: execs, providers: providers, opts: opts}
}

// WithBasePrompt overrides the default system prompt opening.
func WithBasePrompt(prompt string) func(o *Options) {
	return func(o *Options) { o.BasePrompt = prompt }
}

// WithLogger sets the executor's logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}


func (e *Executor) agentLock(agentID string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(agentID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Execute runs one task through one agent.
//
// Validation and configuration errors surface before any execution record is
// created. Once a record exists, any failure marks it FAILED, moves the agent
// to ERROR, recomputes metrics (failures count) and re-raises the original
// error to the caller.
func (e *Executor) Execute(ctx context.Context, agentID, task string, execCtx map[string]any, optFns ...func(o *CallOptions)) (*Result, error) {
	callOpts := CallOptions{}
	for _, fn := range optFns {
		fn(&callOpts)
	}

	if err := core.ValidateTask(task); err != nil {
		return nil, err
	}

	// Serialize executions per agent id; memory and metrics updates from
	// overlapping team runs must not interleave.
	mu := e.agentLock(agentID)
	mu.Lock()
	defer mu.Unlock()

	agent, err := e.agents.GetAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &core.NotFoundError{Kind: "agent", ID: agentID}
		}
		return nil, err
	}
	if !agent.IsActive {
		return nil, &core.ConfigurationError{Reason: fmt.Sprintf("agent %s is not active", agent.Name)}
	}
	if err := agent.ModelConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent configuration: %w", err)
	}
	client, err := e.providers.Get(agent.ModelConfig.Provider)
	if err != nil {
		return nil, err
	}

	exec := &core.AgentExecution{
		ID:              core.NewID(),
		AgentID:         agentID,
		TeamExecutionID: callOpts.TeamExecutionID,
		Task:            task,
		Input:           execCtx,
		Status:          core.StatusPending,
		StartedAt:       time.Now(),
	}
	if err := e.execs.CreateAgentExecution(ctx, exec); err != nil {
		return nil, err
	}

	agent.Status = core.AgentStatusBusy
	if err := e.agents.PutAgent(ctx, agent); err != nil {
		return nil, err
	}

	exec.Status = core.StatusRunning
	if err := e.execs.UpdateAgentExecution(ctx, exec); err != nil {
		return nil, err
	}

	systemPrompt := buildSystemPrompt(systemPromptBase(execCtx, e.opts.BasePrompt), agent)

	resp, callErr := e.callWithRetries(ctx, client, agent.ModelConfig, task, systemPrompt, callOpts.MaxRetries)
	duration := time.Since(exec.StartedAt)

	if callErr != nil {
		e.finishFailed(ctx, agent, exec, duration, callErr)
		e.opts.Logger.Error("agent execution failed", "agent_id", agentID, "execution_id", exec.ID, "error", callErr)
		return nil, callErr
	}

	exec.Status = core.StatusCompleted
	exec.CompletedAt = time.Now()
	exec.Duration = duration
	exec.Output = resp.Content
	exec.TokensUsed = resp.TotalTokens()
	exec.InputTokens = resp.InputTokens
	exec.OutputTokens = resp.OutputTokens
	exec.Cost = resp.Cost
	exec.Model = agent.ModelConfig.Model
	exec.Provider = agent.ModelConfig.Provider
	if err := e.execs.UpdateAgentExecution(ctx, exec); err != nil {
		return nil, err
	}

	agent.Memory.AppendExchange(task, resp.Content, exec.CompletedAt)
	agent.Status = core.AgentStatusIdle
	agent.ExecutionCount++
	e.refreshMetrics(ctx, agent)
	agent.UpdatedAt = time.Now()
	if err := e.agents.PutAgent(ctx, agent); err != nil {
		return nil, err
	}

	e.opts.Logger.Info("agent execution completed",
		"agent_id", agentID, "execution_id", exec.ID,
		"tokens", exec.TokensUsed, "cost", exec.Cost, "duration", duration)

	return &Result{
		ID:         exec.ID,
		Output:     resp.Content,
		TokensUsed: exec.TokensUsed,
		Cost:       exec.Cost,
		Duration:   duration,
	}, nil
}

// providerCallLogger is implemented by loggers that record per-call provider
// telemetry, like logging.AgentHubLogger.
type providerCallLogger interface {
	LogProviderCall(provider, model string, tokens int, dur time.Duration, success bool, err error)
}

// callWithRetries re-attempts the provider call on provider errors only;
// configuration errors (missing API key) never retry.
func (e *Executor) callWithRetries(ctx context.Context, client provider.Client, cfg core.ModelConfig, task, systemPrompt string, maxRetries int) (*provider.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		start := time.Now()
		resp, err := client.Call(ctx, cfg, task, systemPrompt)
		if pcl, ok := e.opts.Logger.(providerCallLogger); ok {
			tokens := 0
			if resp != nil {
				tokens = resp.TotalTokens()
			}
			pcl.LogProviderCall(cfg.Provider, cfg.Model, tokens, time.Since(start), err == nil, err)
		}
		if err == nil {
			return resp, nil
		}
		lastErr = err
		var provErr *core.ProviderError
		if !errors.As(err, &provErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		if attempt < maxRetries {
			e.opts.Logger.Warn("provider call failed, retrying", "provider", cfg.Provider, "attempt", attempt+1, "error", err)
		}
	}
	return nil, lastErr
}

// finishFailed finalizes the record and agent state after a provider failure.
func (e *Executor) finishFailed(ctx context.Context, agent *core.Agent, exec *core.AgentExecution, duration time.Duration, callErr error) {
	exec.Status = core.StatusFailed
	exec.CompletedAt = time.Now()
	exec.Duration = duration
	exec.Error = callErr.Error()
	if err := e.execs.UpdateAgentExecution(ctx, exec); err != nil {
		e.opts.Logger.Error("failed to persist failed execution", "execution_id", exec.ID, "error", err)
	}

	agent.Status = core.AgentStatusError
	agent.ExecutionCount++
	e.refreshMetrics(ctx, agent)
	agent.UpdatedAt = time.Now()
	if err := e.agents.PutAgent(ctx, agent); err != nil {
		e.opts.Logger.Error("failed to persist agent state", "agent_id", agent.ID, "error", err)
	}
}

// refreshMetrics recomputes the agent's rolling metrics from its most recent
// executions, the just-finished one included.
func (e *Executor) refreshMetrics(ctx context.Context, agent *core.Agent) {
	recent, err := e.execs.RecentAgentExecutions(ctx, agent.ID, metrics.Window)
	if err != nil {
		e.opts.Logger.Warn("failed to load recent executions for metrics", "agent_id", agent.ID, "error", err)
		return
	}
	m := metrics.Compute(metrics.AgentSamples(recent))
	agent.SuccessRate = m.SuccessRate
	agent.AvgResponseTime = m.AvgResponseTime
}
