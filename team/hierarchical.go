package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/internal/jsonx"
)

const delegationPromptFmt = `You are the team leader. Break down this task into %d subtasks for your team members:

Task: %s

Provide a JSON response with subtasks array:
{
  "subtasks": [
    "Subtask 1 description",
    "Subtask 2 description",
    ...
  ],
  "coordination": "How workers should coordinate"
}`

const synthesisPromptFmt = `You are the team leader. Synthesize these worker results into a final output:

Original Task: %s

Worker Results:
%s

Provide a comprehensive synthesis that combines all worker outputs.`

// Hierarchical runs three stages: the leader decomposes the task into one
// subtask per worker, the workers execute their subtasks in parallel, and
// the leader synthesizes the worker outputs into the final answer. A run
// with N workers yields N+2 records; the last carries IsLeaderSynthesis.
type Hierarchical struct{}

func (Hierarchical) Structure() core.TeamStructure { return core.StructureHierarchical }

func (Hierarchical) Run(ctx context.Context, runner Runner, members []core.TeamMember, in RunInput) ([]core.AgentResult, error) {
	var leader *core.TeamMember
	var workers []core.TeamMember
	for i, m := range members {
		switch m.Role {
		case core.RoleLeader:
			leader = &members[i]
		case core.RoleWorker:
			workers = append(workers, m)
		}
	}
	if leader == nil {
		return nil, &core.StructureError{Structure: core.StructureHierarchical, Reason: "hierarchical team requires at least one LEADER"}
	}

	var results []core.AgentResult

	delegationTask := fmt.Sprintf(delegationPromptFmt, len(workers), in.Task)
	delegation, err := runMember(ctx, runner, in, *leader, delegationTask, in.Context)
	if err != nil {
		return nil, err
	}
	results = append(results, core.AgentResult{
		AgentID:    leader.AgentID,
		AgentName:  leader.AgentName,
		Role:       leader.Role,
		Output:     delegation.Output,
		TokensUsed: delegation.TokensUsed,
		Cost:       delegation.Cost,
		Duration:   delegation.Duration,
		Stage:      "delegation",
	})

	subtasks := parseSubtasks(delegation.Output)

	workerResults := make([]core.AgentResult, len(workers))
	fanErr := fanOut(in.Pool, len(workers), func(i int) error {
		subtask := in.Task
		if i < len(subtasks) && subtasks[i] != "" {
			subtask = subtasks[i]
		}
		r, err := runMember(ctx, runner, in, workers[i], subtask, in.Context)
		if err != nil {
			return err
		}
		workerResults[i] = core.AgentResult{
			AgentID:    workers[i].AgentID,
			AgentName:  workers[i].AgentName,
			Role:       workers[i].Role,
			Output:     r.Output,
			TokensUsed: r.TokensUsed,
			Cost:       r.Cost,
			Duration:   r.Duration,
			Stage:      "execution",
		}
		return nil
	})
	for _, wr := range workerResults {
		if wr.AgentID != "" {
			results = append(results, wr)
		}
	}
	if fanErr != nil {
		return results, fanErr
	}

	var sb strings.Builder
	for i, wr := range workerResults {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Worker %d (%s): %s", i+1, wr.AgentName, wr.Output)
	}

	synthesisTask := fmt.Sprintf(synthesisPromptFmt, in.Task, sb.String())
	synthesis, err := runMember(ctx, runner, in, *leader, synthesisTask, in.Context)
	if err != nil {
		return results, err
	}
	results = append(results, core.AgentResult{
		AgentID:           leader.AgentID,
		AgentName:         leader.AgentName,
		Role:              leader.Role,
		Output:            synthesis.Output,
		TokensUsed:        synthesis.TokensUsed,
		Cost:              synthesis.Cost,
		Duration:          synthesis.Duration,
		Stage:             "synthesis",
		IsLeaderSynthesis: true,
	})

	return results, nil
}

// parseSubtasks extracts the subtasks array from the leader's delegation
// output. Model output is untrusted: on any parse failure the caller falls
// back to handing every worker the original task, which is the documented
// degradation path rather than an error.
func parseSubtasks(output string) []string {
	return jsonx.StringArray(jsonx.TrimFences(output), "subtasks")
}
