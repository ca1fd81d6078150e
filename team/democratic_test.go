package team

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agenthub/core"
)

func democraticMembers() []core.TeamMember {
	return []core.TeamMember{
		member("a", core.RoleWorker, 1),
		member("b", core.RoleWorker, 2),
		member("c", core.RoleWorker, 3),
	}
}

// scriptVotes answers proposal prompts with a per-agent proposal and voting
// prompts with the scripted ballot.
func scriptVotes(ballots map[string]string) func(agentID, task string) (string, error) {
	return func(agentID, task string) (string, error) {
		if strings.Contains(task, "vote for the best one") {
			return ballots[agentID], nil
		}
		return "proposal from " + agentID, nil
	}
}

func TestDemocratic_Run_MajorityWins(t *testing.T) {
	runner := &fakeRunner{handler: scriptVotes(map[string]string{
		"a": "2", "b": "2", "c": "1",
	})}

	results, err := Democratic{}.Run(context.Background(), runner, democraticMembers(), RunInput{Task: "pick a strategy"})
	require.NoError(t, err)

	// vote calls ran but only proposal records are returned
	require.Len(t, results, 3)
	require.Len(t, runner.calls, 6)

	assert.False(t, results[0].IsWinner)
	assert.True(t, results[1].IsWinner)
	assert.False(t, results[2].IsWinner)
	assert.Equal(t, "proposal from b", results[1].Output)
	for _, r := range results {
		assert.Equal(t, "proposal", r.Stage)
	}
}

func TestDemocratic_Run_VotingPromptListsProposals(t *testing.T) {
	runner := &fakeRunner{handler: scriptVotes(map[string]string{
		"a": "1", "b": "1", "c": "1",
	})}

	_, err := Democratic{}.Run(context.Background(), runner, democraticMembers(), RunInput{Task: "t"})
	require.NoError(t, err)

	votingCalls := runner.callsFor("a")
	require.Len(t, votingCalls, 2)
	ballot := votingCalls[1]
	assert.Contains(t, ballot, "Proposal 1 from Agent a:")
	assert.Contains(t, ballot, "Proposal 3 from Agent c:")
	assert.Contains(t, ballot, "ONLY the number (1-3)")
}

func TestDemocratic_Run_InvalidVotesDiscarded(t *testing.T) {
	runner := &fakeRunner{handler: scriptVotes(map[string]string{
		"a": "I choose proposal 3 because it is best", // parses as 3
		"b": "99",                                     // out of range, discarded
		"c": "none of them",                           // no number, discarded
	})}

	results, err := Democratic{}.Run(context.Background(), runner, democraticMembers(), RunInput{Task: "t"})
	require.NoError(t, err)
	assert.True(t, results[2].IsWinner)
}

func TestDemocratic_Run_NoValidVotesDefaultsToFirst(t *testing.T) {
	runner := &fakeRunner{handler: scriptVotes(map[string]string{
		"a": "abstain", "b": "abstain", "c": "abstain",
	})}

	results, err := Democratic{}.Run(context.Background(), runner, democraticMembers(), RunInput{Task: "t"})
	require.NoError(t, err)
	assert.True(t, results[0].IsWinner)
}

func TestDemocratic_Run_ProposalFailureKeepsPartialResults(t *testing.T) {
	boom := errors.New("provider down")
	runner := &fakeRunner{handler: func(agentID, task string) (string, error) {
		if agentID == "b" {
			return "", boom
		}
		return "proposal", nil
	}}

	results, err := Democratic{}.Run(context.Background(), runner, democraticMembers(), RunInput{Task: "t"})
	require.ErrorIs(t, err, boom)

	// surviving proposals only; voting never started
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.IsWinner)
	}
	assert.Len(t, runner.callsFor("a"), 1)
}

func TestParseVote(t *testing.T) {
	tests := []struct {
		output string
		want   int
	}{
		{"2", 2},
		{" 3 ", 3},
		{"I vote for proposal 1.", 1},
		{"Proposal 2 is the strongest", 2},
		{"0", 0},
		{"4", 0},
		{"none", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseVote(tt.output, 3), "output %q", tt.output)
	}
}

func TestTallyVotes_TieBreakers(t *testing.T) {
	members := []core.TeamMember{
		member("a", core.RoleWorker, 1),
		member("b", core.RoleLeader, 2),
		member("c", core.RoleWorker, 3),
	}

	// 1-1-0 tie between proposals 0 and 1
	votes := []int{1, 2, 0}

	assert.Equal(t, 0, tallyVotes(votes, members, core.TieBreakerFirst))
	assert.Equal(t, 0, tallyVotes(votes, members, ""))
	assert.Equal(t, 1, tallyVotes(votes, members, core.TieBreakerLeader))

	got := tallyVotes(votes, members, core.TieBreakerRandom)
	assert.Contains(t, []int{0, 1}, got)
}
