package team

import (
	"context"
	"fmt"
	"sort"

	"github.com/hupe1980/agenthub/core"
)

// Pipeline runs members strictly sequentially in ascending priority order.
// Each stage's output becomes the next stage's task input, and the previous
// stage, agent and output are threaded through the execution context for
// traceability. The first failing stage aborts the remaining ones; records
// of completed stages are returned alongside the error.
type Pipeline struct{}

func (Pipeline) Structure() core.TeamStructure { return core.StructurePipeline }

func (Pipeline) Run(ctx context.Context, runner Runner, members []core.TeamMember, in RunInput) ([]core.AgentResult, error) {
	sorted := append([]core.TeamMember(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	var results []core.AgentResult
	input := in.Task
	execCtx := cloneContext(in.Context)

	for i, m := range sorted {
		r, err := runMember(ctx, runner, in, m, input, execCtx)
		if err != nil {
			return results, err
		}
		results = append(results, core.AgentResult{
			AgentID:    m.AgentID,
			AgentName:  m.AgentName,
			Role:       m.Role,
			Output:     r.Output,
			TokensUsed: r.TokensUsed,
			Cost:       r.Cost,
			Duration:   r.Duration,
			Stage:      fmt.Sprintf("pipeline_stage_%d", i+1),
		})

		input = r.Output
		execCtx = cloneContext(execCtx)
		execCtx["previousStage"] = i + 1
		execCtx["previousAgent"] = m.AgentName
		execCtx["previousOutput"] = r.Output
	}

	return results, nil
}
