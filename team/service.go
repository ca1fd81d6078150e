package team

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/store"
)

// Service manages the team catalog: creation and membership changes. Every
// mutation re-validates the would-be structure before it is persisted, so
// the catalog never holds a team that would fail pre-dispatch validation.
type Service struct {
	teams  store.TeamStore
	agents store.AgentStore
}

// NewService constructs a Service over the given stores.
func NewService(teams store.TeamStore, agents store.AgentStore) *Service {
	return &Service{teams: teams, agents: agents}
}

// MemberSpec describes one member of a team being created.
type MemberSpec struct {
	AgentID  string
	Role     core.TeamRole
	Priority int
}

// CreateTeam creates a team with the given members. The structure is
// validated against the members before anything is persisted; every
// referenced agent must exist.
func (s *Service) CreateTeam(ctx context.Context, name string, structure core.TeamStructure, coordination core.CoordinationConfig, specs []MemberSpec) (*core.Team, error) {
	if name == "" {
		return nil, &core.ValidationError{Reason: "team name cannot be empty"}
	}

	teamID := core.NewID()
	members := make([]core.TeamMember, 0, len(specs))
	for _, spec := range specs {
		if _, err := s.agents.GetAgent(ctx, spec.AgentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, &core.NotFoundError{Kind: "agent", ID: spec.AgentID}
			}
			return nil, err
		}
		members = append(members, core.TeamMember{
			ID:       core.NewID(),
			TeamID:   teamID,
			AgentID:  spec.AgentID,
			Role:     spec.Role,
			Priority: spec.Priority,
		})
	}

	if err := ValidateStructure(structure, members); err != nil {
		return nil, err
	}
	sortMembers(members)

	now := time.Now()
	team := &core.Team{
		ID:           teamID,
		Name:         name,
		Structure:    structure,
		Coordination: coordination,
		Members:      members,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.teams.PutTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// AddMember adds an agent to a team. The agent must exist and must not
// already be a member; the structure is re-validated with the candidate
// membership before the change is persisted.
func (s *Service) AddMember(ctx context.Context, teamID, agentID string, role core.TeamRole, priority int) (*core.TeamMember, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.agents.GetAgent(ctx, agentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &core.NotFoundError{Kind: "agent", ID: agentID}
		}
		return nil, err
	}
	for _, m := range team.Members {
		if m.AgentID == agentID {
			return nil, &core.StructureError{
				Structure: team.Structure,
				Reason:    fmt.Sprintf("agent %s is already a member of this team", agentID),
			}
		}
	}

	member := core.TeamMember{
		ID:       core.NewID(),
		TeamID:   teamID,
		AgentID:  agentID,
		Role:     role,
		Priority: priority,
	}
	candidate := append(append([]core.TeamMember(nil), team.Members...), member)
	if err := ValidateStructure(team.Structure, candidate); err != nil {
		return nil, err
	}

	sortMembers(candidate)
	team.Members = candidate
	team.UpdatedAt = time.Now()
	if err := s.teams.PutTeam(ctx, team); err != nil {
		return nil, err
	}
	return &member, nil
}

// MemberUpdate carries the changes for one member. Nil fields are left
// untouched.
type MemberUpdate struct {
	Role     *core.TeamRole
	Priority *int
}

// UpdateMember changes a member's role or priority. The structure is
// re-validated with the candidate membership before the change is persisted.
func (s *Service) UpdateMember(ctx context.Context, teamID, memberID string, upd MemberUpdate) (*core.TeamMember, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	candidate := append([]core.TeamMember(nil), team.Members...)
	idx := -1
	for i, m := range candidate {
		if m.ID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &core.NotFoundError{Kind: "team member", ID: memberID}
	}

	if upd.Role != nil {
		candidate[idx].Role = *upd.Role
	}
	if upd.Priority != nil {
		candidate[idx].Priority = *upd.Priority
	}
	if err := ValidateStructure(team.Structure, candidate); err != nil {
		return nil, err
	}

	updated := candidate[idx]
	sortMembers(candidate)
	team.Members = candidate
	team.UpdatedAt = time.Now()
	if err := s.teams.PutTeam(ctx, team); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveMember removes a member from a team. A removal that would leave an
// invalid non-empty structure is rejected; removing the last member empties
// the team, which then fails validation only at execution time.
func (s *Service) RemoveMember(ctx context.Context, teamID, memberID string) error {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}

	remaining := make([]core.TeamMember, 0, len(team.Members))
	found := false
	for _, m := range team.Members {
		if m.ID == memberID {
			found = true
			continue
		}
		remaining = append(remaining, m)
	}
	if !found {
		return &core.NotFoundError{Kind: "team member", ID: memberID}
	}

	if len(remaining) > 0 {
		if err := ValidateStructure(team.Structure, remaining); err != nil {
			return fmt.Errorf("cannot remove member: %w", err)
		}
	}

	team.Members = remaining
	team.UpdatedAt = time.Now()
	return s.teams.PutTeam(ctx, team)
}

func (s *Service) getTeam(ctx context.Context, teamID string) (*core.Team, error) {
	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &core.NotFoundError{Kind: "team", ID: teamID}
		}
		return nil, err
	}
	return team, nil
}

func sortMembers(members []core.TeamMember) {
	sort.SliceStable(members, func(i, j int) bool { return members[i].Priority < members[j].Priority })
}
