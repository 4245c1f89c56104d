package voting_test

import (
	"testing"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/voting"
	"github.com/stretchr/testify/require"
)

func TestTally_StableOrdering(t *testing.T) {
	approve := func(member string) project.Vote {
		return project.Vote{ID: member + "-v", MemberID: member, Choice: project.VoteApprove}
	}
	revise := func(member string) project.Vote {
		return project.Vote{ID: member + "-v", MemberID: member, Choice: project.VoteRevise}
	}

	proj := &project.Project{
		Concepts: []project.Concept{
			{ID: "a", Title: "Concept 1", Votes: []project.Vote{approve("m1"), approve("m2"), revise("m3")}},
			{ID: "b", Title: "Concept 2", Votes: []project.Vote{approve("m4"), approve("m5")}},
			{ID: "c", Title: "Concept 3", Votes: []project.Vote{approve("m6")}},
		},
	}

	tallies := voting.Tally(proj)
	require.Len(t, tallies, 3)
	require.Equal(t, "a", tallies[0].ConceptID)
	require.Equal(t, 2, tallies[0].Approvals)
	require.Equal(t, 1, tallies[0].Revisions)
	require.Equal(t, "b", tallies[1].ConceptID)
	require.Equal(t, "c", tallies[2].ConceptID)
}

func TestTally_Empty(t *testing.T) {
	require.Empty(t, voting.Tally(&project.Project{}))
}
