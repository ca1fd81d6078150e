package team

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/executor"
)

type runnerCall struct {
	AgentID string
	Task    string
	Context map[string]any
	Opts    executor.CallOptions
}

// fakeRunner scripts agent responses for pattern tests. The handler decides
// each response from the agent id and the task it received.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []runnerCall
	handler func(agentID, task string) (string, error)
}

func (f *fakeRunner) Execute(_ context.Context, agentID, task string, execCtx map[string]any, optFns ...func(o *executor.CallOptions)) (*executor.Result, error) {
	opts := executor.CallOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	f.mu.Lock()
	f.calls = append(f.calls, runnerCall{AgentID: agentID, Task: task, Context: execCtx, Opts: opts})
	f.mu.Unlock()

	out, err := f.handler(agentID, task)
	if err != nil {
		return nil, err
	}
	return &executor.Result{
		ID:         core.NewID(),
		Output:     out,
		TokensUsed: 30,
		Cost:       0.001,
		Duration:   time.Millisecond,
	}, nil
}

// callsFor returns the tasks the given agent received, in call order.
func (f *fakeRunner) callsFor(agentID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tasks []string
	for _, c := range f.calls {
		if c.AgentID == agentID {
			tasks = append(tasks, c.Task)
		}
	}
	return tasks
}

func member(agentID string, role core.TeamRole, priority int) core.TeamMember {
	return core.TeamMember{
		ID:        core.NewID(),
		AgentID:   agentID,
		AgentName: "Agent " + agentID,
		Role:      role,
		Priority:  priority,
	}
}
