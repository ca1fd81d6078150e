package team

import (
	"fmt"

	"github.com/hupe1980/agenthub/core"
)

// formatResponse derives the team execution's output and summary from a
// pattern's result list: the hierarchical synthesis, the collaborative
// consensus, the last pipeline stage, or the democratic winner.
func formatResponse(pattern core.TeamStructure, results []core.AgentResult) (output, summary string) {
	switch pattern {
	case core.StructureHierarchical:
		for _, r := range results {
			if r.IsLeaderSynthesis {
				output = r.Output
			}
		}
		summary = fmt.Sprintf("Hierarchical execution: Leader synthesized %d worker results", len(results)-1)

	case core.StructureCollaborative:
		if len(results) > 0 {
			output = results[len(results)-1].Output
		}
		summary = fmt.Sprintf("Collaborative execution: %d agents contributed", len(results))

	case core.StructurePipeline:
		if len(results) > 0 {
			output = results[len(results)-1].Output
		}
		summary = fmt.Sprintf("Pipeline execution: %d stages completed", len(results))

	case core.StructureDemocratic:
		for _, r := range results {
			if r.IsWinner {
				output = r.Output
			}
		}
		summary = fmt.Sprintf("Democratic execution: Winner selected from %d proposals", len(results))

	default:
		summary = fmt.Sprintf("Unknown pattern: %s", pattern)
	}
	return output, summary
}

// totals sums tokens and cost across a result list. Synthetic records
// contribute zero by construction.
func totals(results []core.AgentResult) (tokens int, cost float64) {
	for _, r := range results {
		tokens += r.TokensUsed
		cost += r.Cost
	}
	return tokens, cost
}
