package core

import "time"

// TeamStructure selects the coordination topology a team executes under.
type TeamStructure string

const (
	// StructureHierarchical delegates through a single leader who decomposes
	// the task, fans it out to workers and synthesizes their results.
	StructureHierarchical TeamStructure = "HIERARCHICAL"
	// StructureCollaborative runs every member on the same task in parallel
	// and merges the contributions.
	StructureCollaborative TeamStructure = "COLLABORATIVE"
	// StructurePipeline chains members by priority, feeding each stage's
	// output into the next stage's input.
	StructurePipeline TeamStructure = "PIPELINE"
	// StructureDemocratic has every member propose a solution and then vote
	// on the best proposal.
	StructureDemocratic TeamStructure = "DEMOCRATIC"
)

// TeamRole positions a member inside its team's topology.
type TeamRole string

const (
	RoleLeader      TeamRole = "LEADER"
	RoleWorker      TeamRole = "WORKER"
	RoleCoordinator TeamRole = "COORDINATOR"
)

// Tie-break policies for democratic voting.
const (
	TieBreakerFirst  = "first"  // first-seen maximum wins
	TieBreakerRandom = "random" // uniform pick among tied proposals
	TieBreakerLeader = "leader" // tied proposal from a LEADER/COORDINATOR wins
)

// CoordinationConfig carries per-pattern tunables. Zero values disable the
// corresponding behavior: no timeout, no retries, default tie-breaking.
type CoordinationConfig struct {
	DelegationStrategy  string             `json:"delegation_strategy,omitempty"`
	ContributionWeights map[string]float64 `json:"contribution_weights,omitempty"` // agent id -> weight
	VotingMethod        string             `json:"voting_method,omitempty"`
	TieBreaker          string             `json:"tie_breaker,omitempty"`
	MaxRetries          int                `json:"max_retries,omitempty"`
	Timeout             time.Duration      `json:"timeout,omitempty"`
	ParallelExecution   bool               `json:"parallel_execution,omitempty"`
}

// Weight returns the contribution weight configured for an agent, defaulting
// to 1 when none is set.
func (c CoordinationConfig) Weight(agentID string) float64 {
	if w, ok := c.ContributionWeights[agentID]; ok && w > 0 {
		return w
	}
	return 1
}

// TeamMember binds an agent into a team. Priority defines pipeline order and
// must be unique within a PIPELINE team. AgentName is denormalized from the
// agent record when members are hydrated for execution.
type TeamMember struct {
	ID        string   `json:"id"`
	TeamID    string   `json:"team_id"`
	AgentID   string   `json:"agent_id"`
	AgentName string   `json:"agent_name,omitempty"`
	Role      TeamRole `json:"role"`
	Priority  int      `json:"priority"`
}

// Team is a named group of agents bound to one coordination structure.
// Members are kept ordered by priority ascending.
type Team struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Structure    TeamStructure      `json:"structure"`
	Coordination CoordinationConfig `json:"coordination"`
	Members      []TeamMember       `json:"members"`
	IsActive     bool               `json:"is_active"`

	SuccessRate     float64 `json:"success_rate"`
	AvgResponseTime float64 `json:"avg_response_time"` // milliseconds

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy so store reads never alias internal state.
func (t *Team) Clone() *Team {
	cp := *t
	cp.Members = append([]TeamMember(nil), t.Members...)
	if t.Coordination.ContributionWeights != nil {
		cp.Coordination.ContributionWeights = make(map[string]float64, len(t.Coordination.ContributionWeights))
		for k, v := range t.Coordination.ContributionWeights {
			cp.Coordination.ContributionWeights[k] = v
		}
	}
	return &cp
}
