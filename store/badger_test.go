package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agenthub/core"
)

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewBadgerStore_RequiresDir(t *testing.T) {
	_, err := NewBadgerStore(BadgerOptions{})
	assert.Error(t, err)
}

func TestBadgerStore_AgentExecutionRoundTrip(t *testing.T) {
	s := newTestBadger(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 4; i++ {
		exec := &core.AgentExecution{
			ID:        core.NewID(),
			AgentID:   "agent-1",
			Task:      "task",
			Status:    core.StatusCompleted,
			StartedAt: base.Add(time.Duration(i) * time.Second),
			Duration:  time.Duration(i+1) * time.Millisecond,
		}
		require.NoError(t, s.CreateAgentExecution(ctx, exec))
	}

	execs, err := s.RecentAgentExecutions(ctx, "agent-1", 2)
	require.NoError(t, err)
	require.Len(t, execs, 2)
	assert.Equal(t, 4*time.Millisecond, execs[0].Duration)
	assert.Equal(t, 3*time.Millisecond, execs[1].Duration)

	// Other agents do not leak into the scan.
	execs, err = s.RecentAgentExecutions(ctx, "agent-2", 10)
	require.NoError(t, err)
	assert.Empty(t, execs)
}

func TestBadgerStore_UpdateAgentExecution(t *testing.T) {
	s := newTestBadger(t)
	ctx := context.Background()

	exec := &core.AgentExecution{
		ID:        "exec-1",
		AgentID:   "agent-1",
		Status:    core.StatusRunning,
		StartedAt: time.Now(),
	}
	require.NoError(t, s.CreateAgentExecution(ctx, exec))

	exec.Status = core.StatusFailed
	exec.Error = "provider unavailable"
	require.NoError(t, s.UpdateAgentExecution(ctx, exec))

	execs, err := s.RecentAgentExecutions(ctx, "agent-1", 1)
	require.NoError(t, err)
	require.Len(t, execs, 1)
	assert.Equal(t, core.StatusFailed, execs[0].Status)
	assert.Equal(t, "provider unavailable", execs[0].Error)

	missing := &core.AgentExecution{ID: "missing"}
	assert.ErrorIs(t, s.UpdateAgentExecution(ctx, missing), ErrNotFound)
}

func TestBadgerStore_TeamExecutionRoundTrip(t *testing.T) {
	s := newTestBadger(t)
	ctx := context.Background()

	exec := &core.TeamExecution{
		ID:        "texec-1",
		TeamID:    "team-1",
		Pattern:   core.StructureDemocratic,
		Status:    core.StatusPending,
		StartedAt: time.Now(),
		AgentResults: []core.AgentResult{
			{AgentID: "a1", Output: "proposal", IsWinner: true},
		},
	}
	require.NoError(t, s.CreateTeamExecution(ctx, exec))

	exec.Status = core.StatusCompleted
	exec.Output = "winning proposal"
	require.NoError(t, s.UpdateTeamExecution(ctx, exec))

	execs, err := s.RecentTeamExecutions(ctx, "team-1", 5)
	require.NoError(t, err)
	require.Len(t, execs, 1)
	assert.Equal(t, core.StatusCompleted, execs[0].Status)
	assert.True(t, execs[0].AgentResults[0].IsWinner)
}
