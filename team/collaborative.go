package team

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/internal/jsonx"
)

// ConsensusAgentID identifies the synthetic record a collaborative run
// appends after its members finish.
const ConsensusAgentID = "consensus"

// Collaborative runs every member on the same task in parallel, attaches
// each member's contribution weight, and appends one synthetic consensus
// record merging the contributions. The consensus record carries zero
// tokens, cost and duration because no provider call produces it.
type Collaborative struct{}

func (Collaborative) Structure() core.TeamStructure { return core.StructureCollaborative }

func (Collaborative) Run(ctx context.Context, runner Runner, members []core.TeamMember, in RunInput) ([]core.AgentResult, error) {
	memberResults := make([]core.AgentResult, len(members))
	fanErr := fanOut(in.Pool, len(members), func(i int) error {
		r, err := runMember(ctx, runner, in, members[i], in.Task, in.Context)
		if err != nil {
			return err
		}
		memberResults[i] = core.AgentResult{
			AgentID:    members[i].AgentID,
			AgentName:  members[i].AgentName,
			Role:       members[i].Role,
			Output:     r.Output,
			TokensUsed: r.TokensUsed,
			Cost:       r.Cost,
			Duration:   r.Duration,
			Weight:     in.Config.Weight(members[i].AgentID),
		}
		return nil
	})

	var results []core.AgentResult
	for _, mr := range memberResults {
		if mr.AgentID != "" {
			results = append(results, mr)
		}
	}
	if fanErr != nil {
		return results, fanErr
	}

	results = append(results, core.AgentResult{
		AgentID:   ConsensusAgentID,
		AgentName: "Team Consensus",
		Role:      core.RoleCoordinator,
		Output:    buildConsensus(memberResults),
		Stage:     "consensus",
	})

	return results, nil
}

// buildConsensus merges the member contributions into one document. When
// every output parses as a JSON object the objects are merged in member
// order, last writer winning per key. Otherwise the outputs are concatenated
// labeled by agent name. This is a shallow merge, not a semantic consensus.
func buildConsensus(memberResults []core.AgentResult) string {
	merged := map[string]any{}
	allObjects := true
	for _, mr := range memberResults {
		var obj map[string]any
		if err := jsonx.Unmarshal([]byte(jsonx.TrimFences(mr.Output)), &obj); err != nil || obj == nil {
			allObjects = false
			break
		}
		for k, v := range obj {
			merged[k] = v
		}
	}
	if allObjects && len(merged) > 0 {
		if data, err := json.Marshal(merged); err == nil {
			return string(data)
		}
	}

	var sb strings.Builder
	for i, mr := range memberResults {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s: %s", mr.AgentName, mr.Output)
	}
	return sb.String()
}
