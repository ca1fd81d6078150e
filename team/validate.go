package team

import (
	"fmt"

	"github.com/hupe1980/agenthub/core"
)

// ValidateStructure checks the topology invariants for a team structure
// against a member list. It is a pure check over roles and priorities: the
// same inputs always produce the same verdict, and it is run both when a
// team's membership changes and again before every execution.
func ValidateStructure(structure core.TeamStructure, members []core.TeamMember) error {
	if len(members) == 0 {
		return &core.StructureError{Structure: structure, Reason: "team must have at least one member"}
	}

	switch structure {
	case core.StructureHierarchical:
		leaders := 0
		for _, m := range members {
			if m.Role == core.RoleLeader {
				leaders++
			}
		}
		if leaders == 0 {
			return &core.StructureError{Structure: structure, Reason: "hierarchical team requires at least one LEADER"}
		}
		if leaders > 1 {
			return &core.StructureError{Structure: structure, Reason: "hierarchical team can have only one LEADER"}
		}
		if len(members) < 2 {
			return &core.StructureError{Structure: structure, Reason: "hierarchical team requires at least one WORKER"}
		}

	case core.StructureCollaborative:
		if len(members) < 2 {
			return &core.StructureError{Structure: structure, Reason: "collaborative team requires at least 2 members"}
		}

	case core.StructurePipeline:
		if len(members) < 2 {
			return &core.StructureError{Structure: structure, Reason: "pipeline team requires at least 2 members"}
		}
		seen := make(map[int]bool, len(members))
		for _, m := range members {
			if seen[m.Priority] {
				return &core.StructureError{Structure: structure, Reason: "pipeline team requires unique priority values for proper ordering"}
			}
			seen[m.Priority] = true
		}

	case core.StructureDemocratic:
		if len(members) < 3 {
			return &core.StructureError{Structure: structure, Reason: "democratic team requires at least 3 members for voting"}
		}

	default:
		return &core.StructureError{Reason: fmt.Sprintf("unknown team structure: %s", structure)}
	}

	return nil
}
