package team

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agenthub/core"
)

func TestFormatResponse(t *testing.T) {
	hierarchical := []core.AgentResult{
		{AgentID: "l", Stage: "delegation", Output: "plan"},
		{AgentID: "w", Stage: "execution", Output: "part"},
		{AgentID: "l", Stage: "synthesis", Output: "the synthesis", IsLeaderSynthesis: true},
	}
	out, summary := formatResponse(core.StructureHierarchical, hierarchical)
	assert.Equal(t, "the synthesis", out)
	assert.Equal(t, "Hierarchical execution: Leader synthesized 2 worker results", summary)

	collaborative := []core.AgentResult{
		{AgentID: "a", Output: "one"},
		{AgentID: "b", Output: "two"},
		{AgentID: ConsensusAgentID, Output: "merged", Stage: "consensus"},
	}
	out, summary = formatResponse(core.StructureCollaborative, collaborative)
	assert.Equal(t, "merged", out)
	assert.Equal(t, "Collaborative execution: 3 agents contributed", summary)

	pipeline := []core.AgentResult{
		{AgentID: "a", Output: "draft", Stage: "pipeline_stage_1"},
		{AgentID: "b", Output: "polished", Stage: "pipeline_stage_2"},
	}
	out, summary = formatResponse(core.StructurePipeline, pipeline)
	assert.Equal(t, "polished", out)
	assert.Equal(t, "Pipeline execution: 2 stages completed", summary)

	democratic := []core.AgentResult{
		{AgentID: "a", Output: "plan a", Stage: "proposal"},
		{AgentID: "b", Output: "plan b", Stage: "proposal", IsWinner: true},
		{AgentID: "c", Output: "plan c", Stage: "proposal"},
	}
	out, summary = formatResponse(core.StructureDemocratic, democratic)
	assert.Equal(t, "plan b", out)
	assert.Equal(t, "Democratic execution: Winner selected from 3 proposals", summary)
}

func TestTotals(t *testing.T) {
	results := []core.AgentResult{
		{TokensUsed: 100, Cost: 0.01},
		{TokensUsed: 250, Cost: 0.02},
		{}, // synthetic consensus record
	}
	tokens, cost := totals(results)
	assert.Equal(t, 350, tokens)
	assert.InDelta(t, 0.03, cost, 1e-12)

	tokens, cost = totals(nil)
	assert.Zero(t, tokens)
	assert.Zero(t, cost)
}
