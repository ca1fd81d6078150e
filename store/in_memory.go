package store

import (
	"context"
	"sync"

	"github.com/hupe1980/agenthub/core"
)

// InMemory is a volatile implementation of AgentStore, TeamStore and
// ExecutionStore backed by process-local maps. It is safe for concurrent
// access and best suited for tests or ephemeral demo setups. Agents and
// teams are cloned on read to prevent external mutation of internal state.
type InMemory struct {
	mu     sync.RWMutex
	agents map[string]*core.Agent
	teams  map[string]*core.Team

	agentExecs map[string]*core.AgentExecution
	teamExecs  map[string]*core.TeamExecution

	// Insertion order per owner, oldest first.
	agentExecOrder map[string][]string
	teamExecOrder  map[string][]string
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{
		agents:         make(map[string]*core.Agent),
		teams:          make(map[string]*core.Team),
		agentExecs:     make(map[string]*core.AgentExecution),
		teamExecs:      make(map[string]*core.TeamExecution),
		agentExecOrder: make(map[string][]string),
		teamExecOrder:  make(map[string][]string),
	}
}

// GetAgent implements AgentStore.
func (s *InMemory) GetAgent(_ context.Context, id string) (*core.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agent, ok := s.agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return agent.Clone(), nil
}

// PutAgent implements AgentStore.
func (s *InMemory) PutAgent(_ context.Context, agent *core.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[agent.ID] = agent.Clone()
	return nil
}

// ListAgents implements AgentStore.
func (s *InMemory) ListAgents(_ context.Context) ([]*core.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agents := make([]*core.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		agents = append(agents, a.Clone())
	}
	return agents, nil
}

// GetTeam implements TeamStore.
func (s *InMemory) GetTeam(_ context.Context, id string) (*core.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return team.Clone(), nil
}

// PutTeam implements TeamStore.
func (s *InMemory) PutTeam(_ context.Context, team *core.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = team.Clone()
	return nil
}

// ListTeams implements TeamStore.
func (s *InMemory) ListTeams(_ context.Context) ([]*core.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*core.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t.Clone())
	}
	return teams, nil
}

// CreateAgentExecution implements ExecutionStore.
func (s *InMemory) CreateAgentExecution(_ context.Context, exec *core.AgentExecution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *exec
	s.agentExecs[exec.ID] = &cp
	s.agentExecOrder[exec.AgentID] = append(s.agentExecOrder[exec.AgentID], exec.ID)
	return nil
}

// UpdateAgentExecution implements ExecutionStore.
func (s *InMemory) UpdateAgentExecution(_ context.Context, exec *core.AgentExecution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agentExecs[exec.ID]; !ok {
		return ErrNotFound
	}
	cp := *exec
	s.agentExecs[exec.ID] = &cp
	return nil
}

// RecentAgentExecutions implements ExecutionStore.
func (s *InMemory) RecentAgentExecutions(_ context.Context, agentID string, limit int) ([]core.AgentExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order := s.agentExecOrder[agentID]
	execs := make([]core.AgentExecution, 0, min(limit, len(order)))
	for i := len(order) - 1; i >= 0 && len(execs) < limit; i-- {
		if e, ok := s.agentExecs[order[i]]; ok {
			execs = append(execs, *e)
		}
	}
	return execs, nil
}

// CreateTeamExecution implements ExecutionStore.
func (s *InMemory) CreateTeamExecution(_ context.Context, exec *core.TeamExecution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *exec
	cp.AgentResults = append([]core.AgentResult(nil), exec.AgentResults...)
	s.teamExecs[exec.ID] = &cp
	s.teamExecOrder[exec.TeamID] = append(s.teamExecOrder[exec.TeamID], exec.ID)
	return nil
}

// UpdateTeamExecution implements ExecutionStore.
func (s *InMemory) UpdateTeamExecution(_ context.Context, exec *core.TeamExecution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teamExecs[exec.ID]; !ok {
		return ErrNotFound
	}
	cp := *exec
	cp.AgentResults = append([]core.AgentResult(nil), exec.AgentResults...)
	s.teamExecs[exec.ID] = &cp
	return nil
}

// RecentTeamExecutions implements ExecutionStore.
func (s *InMemory) RecentTeamExecutions(_ context.Context, teamID string, limit int) ([]core.TeamExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order := s.teamExecOrder[teamID]
	execs := make([]core.TeamExecution, 0, min(limit, len(order)))
	for i := len(order) - 1; i >= 0 && len(execs) < limit; i-- {
		if e, ok := s.teamExecs[order[i]]; ok {
			cp := *e
			cp.AgentResults = append([]core.AgentResult(nil), e.AgentResults...)
			execs = append(execs, cp)
		}
	}
	return execs, nil
}
