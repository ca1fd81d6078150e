package team

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/agenthub/core"
)

const proposalPromptFmt = `Provide your proposal/solution for this task:

%s

Give a clear, actionable solution.`

var firstNumber = regexp.MustCompile(`\d+`)

// Democratic runs two fan-out phases with a hard join between them: every
// member produces a proposal, then every member votes on the full proposal
// list. Votes are parsed as the first integer in the response; invalid or
// out-of-range votes are discarded silently. The winning proposal record is
// flagged IsWinner; ties resolve per the configured tie-break policy. Vote
// calls are real agent executions but do not appear in the result list.
type Democratic struct{}

func (Democratic) Structure() core.TeamStructure { return core.StructureDemocratic }

func (Democratic) Run(ctx context.Context, runner Runner, members []core.TeamMember, in RunInput) ([]core.AgentResult, error) {
	proposals := make([]core.AgentResult, len(members))
	fanErr := fanOut(in.Pool, len(members), func(i int) error {
		task := fmt.Sprintf(proposalPromptFmt, in.Task)
		r, err := runMember(ctx, runner, in, members[i], task, in.Context)
		if err != nil {
			return err
		}
		proposals[i] = core.AgentResult{
			AgentID:    members[i].AgentID,
			AgentName:  members[i].AgentName,
			Role:       members[i].Role,
			Output:     r.Output,
			TokensUsed: r.TokensUsed,
			Cost:       r.Cost,
			Duration:   r.Duration,
			Stage:      "proposal",
		}
		return nil
	})

	var results []core.AgentResult
	for _, p := range proposals {
		if p.AgentID != "" {
			results = append(results, p)
		}
	}
	if fanErr != nil {
		return results, fanErr
	}

	votingTask := votingPrompt(proposals)
	votes := make([]int, len(members))
	fanErr = fanOut(in.Pool, len(members), func(i int) error {
		r, err := runMember(ctx, runner, in, members[i], votingTask, in.Context)
		if err != nil {
			return err
		}
		votes[i] = parseVote(r.Output, len(proposals))
		return nil
	})
	if fanErr != nil {
		return results, fanErr
	}

	winner := tallyVotes(votes, members, in.Config.TieBreaker)
	results[winner].IsWinner = true

	return results, nil
}

func votingPrompt(proposals []core.AgentResult) string {
	var sb strings.Builder
	sb.WriteString("Review these proposals and vote for the best one:\n")
	for i, p := range proposals {
		fmt.Fprintf(&sb, "\nProposal %d from %s:\n%s\n", i+1, p.AgentName, p.Output)
	}
	fmt.Fprintf(&sb, "\nRespond with ONLY the number (1-%d) of your chosen proposal.", len(proposals))
	return sb.String()
}

// parseVote extracts a 1-based proposal number from a vote response,
// returning 0 for anything unusable.
func parseVote(output string, numProposals int) int {
	match := firstNumber.FindString(output)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 1 || n > numProposals {
		return 0
	}
	return n
}

// tallyVotes counts the valid votes and returns the 0-based index of the
// winning proposal. Ties resolve per policy: "random" picks uniformly among
// the tied proposals, "leader" prefers a tied proposal from a LEADER or
// COORDINATOR, and "first" (the default) takes the lowest tied index. With
// no valid votes at all the first proposal wins.
func tallyVotes(votes []int, members []core.TeamMember, tieBreaker string) int {
	counts := make([]int, len(members))
	for _, v := range votes {
		if v >= 1 && v <= len(counts) {
			counts[v-1]++
		}
	}

	maxVotes := 0
	for _, c := range counts {
		if c > maxVotes {
			maxVotes = c
		}
	}
	if maxVotes == 0 {
		return 0
	}

	var tied []int
	for i, c := range counts {
		if c == maxVotes {
			tied = append(tied, i)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}

	switch tieBreaker {
	case core.TieBreakerRandom:
		return tied[rand.IntN(len(tied))]
	case core.TieBreakerLeader:
		for _, i := range tied {
			if members[i].Role == core.RoleLeader || members[i].Role == core.RoleCoordinator {
				return i
			}
		}
	}
	return tied[0]
}
