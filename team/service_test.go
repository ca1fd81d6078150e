package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/store"
)

func newTestService(t *testing.T, agentIDs ...string) (*Service, *store.InMemory) {
	t.Helper()
	s := store.NewInMemory()
	for _, id := range agentIDs {
		seedAgent(t, s, id, true)
	}
	return NewService(s, s), s
}

func TestService_CreateTeam(t *testing.T) {
	svc, s := newTestService(t, "a", "b", "c")

	team, err := svc.CreateTeam(context.Background(), "research", core.StructureHierarchical, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
		{AgentID: "a", Role: core.RoleLeader, Priority: 1},
		{AgentID: "c", Role: core.RoleWorker, Priority: 3},
	})
	require.NoError(t, err)
	assert.True(t, team.IsActive)
	require.Len(t, team.Members, 3)

	// members come back ordered by priority
	assert.Equal(t, "a", team.Members[0].AgentID)
	assert.Equal(t, "b", team.Members[1].AgentID)

	stored, err := s.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, "research", stored.Name)
}

func TestService_CreateTeam_Invalid(t *testing.T) {
	svc, _ := newTestService(t, "a", "b")

	_, err := svc.CreateTeam(context.Background(), "", core.StructureCollaborative, core.CoordinationConfig{}, nil)
	var valErr *core.ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = svc.CreateTeam(context.Background(), "solo", core.StructureCollaborative, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleWorker, Priority: 1},
	})
	var structErr *core.StructureError
	assert.ErrorAs(t, err, &structErr)

	_, err = svc.CreateTeam(context.Background(), "ghosts", core.StructureCollaborative, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleWorker, Priority: 1},
		{AgentID: "nope", Role: core.RoleWorker, Priority: 2},
	})
	var nfErr *core.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestService_AddMember(t *testing.T) {
	svc, s := newTestService(t, "a", "b", "c")
	team, err := svc.CreateTeam(context.Background(), "t", core.StructureCollaborative, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleWorker, Priority: 1},
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
	})
	require.NoError(t, err)

	added, err := svc.AddMember(context.Background(), team.ID, "c", core.RoleWorker, 3)
	require.NoError(t, err)
	assert.Equal(t, "c", added.AgentID)

	stored, err := s.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Members, 3)
}

func TestService_AddMember_DuplicateAgent(t *testing.T) {
	svc, _ := newTestService(t, "a", "b")
	team, err := svc.CreateTeam(context.Background(), "t", core.StructureCollaborative, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleWorker, Priority: 1},
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
	})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), team.ID, "a", core.RoleWorker, 3)
	var structErr *core.StructureError
	require.ErrorAs(t, err, &structErr)
	assert.Contains(t, err.Error(), "already a member")
}

func TestService_AddMember_RevalidatesStructure(t *testing.T) {
	svc, s := newTestService(t, "a", "b", "c")
	team, err := svc.CreateTeam(context.Background(), "t", core.StructureHierarchical, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleLeader, Priority: 1},
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
	})
	require.NoError(t, err)

	// a second leader breaks the hierarchy
	_, err = svc.AddMember(context.Background(), team.ID, "c", core.RoleLeader, 3)
	var structErr *core.StructureError
	require.ErrorAs(t, err, &structErr)

	// the rejected member was not persisted
	stored, err := s.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Members, 2)
}

func TestService_UpdateMember(t *testing.T) {
	svc, s := newTestService(t, "a", "b", "c")
	team, err := svc.CreateTeam(context.Background(), "t", core.StructurePipeline, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleWorker, Priority: 1},
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
		{AgentID: "c", Role: core.RoleWorker, Priority: 3},
	})
	require.NoError(t, err)

	// move the last stage to the front
	memberID := team.Members[2].ID
	newPriority := 0
	updated, err := svc.UpdateMember(context.Background(), team.ID, memberID, MemberUpdate{Priority: &newPriority})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Priority)

	stored, err := s.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", stored.Members[0].AgentID)

	// a duplicate priority is rejected
	dup := 1
	_, err = svc.UpdateMember(context.Background(), team.ID, memberID, MemberUpdate{Priority: &dup})
	var structErr *core.StructureError
	assert.ErrorAs(t, err, &structErr)
}

func TestService_UpdateMember_RoleChangeRevalidates(t *testing.T) {
	svc, _ := newTestService(t, "a", "b")
	team, err := svc.CreateTeam(context.Background(), "t", core.StructureHierarchical, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleLeader, Priority: 1},
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
	})
	require.NoError(t, err)

	// demoting the only leader leaves the hierarchy headless
	worker := core.RoleWorker
	_, err = svc.UpdateMember(context.Background(), team.ID, team.Members[0].ID, MemberUpdate{Role: &worker})
	var structErr *core.StructureError
	assert.ErrorAs(t, err, &structErr)
}

func TestService_RemoveMember(t *testing.T) {
	svc, s := newTestService(t, "a", "b", "c")
	team, err := svc.CreateTeam(context.Background(), "t", core.StructureCollaborative, core.CoordinationConfig{}, []MemberSpec{
		{AgentID: "a", Role: core.RoleWorker, Priority: 1},
		{AgentID: "b", Role: core.RoleWorker, Priority: 2},
		{AgentID: "c", Role: core.RoleWorker, Priority: 3},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(context.Background(), team.ID, team.Members[2].ID))

	stored, err := s.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Members, 2)

	// removing another member would leave a single-member collaborative team
	err = svc.RemoveMember(context.Background(), team.ID, stored.Members[0].ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot remove member")

	err = svc.RemoveMember(context.Background(), team.ID, "missing")
	var nfErr *core.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
