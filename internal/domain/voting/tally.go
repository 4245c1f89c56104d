package voting

import (
	"sort"

	"github.com/crestline/kitforge/internal/domain/project"
)

// ConceptTally is one concept's standing in a tally.
type ConceptTally struct {
	ConceptID string `json:"concept_id"`
	Title     string `json:"title"`
	Approvals int    `json:"approvals"`
	Revisions int    `json:"revisions"`
}

// Tally ranks the project's concepts by approve-vote count, descending.
// The sort is stable, so concepts with equal approvals keep their list
// order and the earlier concept wins ties.
func Tally(proj *project.Project) []ConceptTally {
	tallies := make([]ConceptTally, 0, len(proj.Concepts))
	for _, c := range proj.Concepts {
		t := ConceptTally{ConceptID: c.ID, Title: c.Title}
		for _, v := range c.Votes {
			switch v.Choice {
			case project.VoteApprove:
				t.Approvals++
			case project.VoteRevise:
				t.Revisions++
			}
		}
		tallies = append(tallies, t)
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Approvals > tallies[j].Approvals
	})
	return tallies
}

// tallyResult computes the frozen result for a closing window: the winner
// is the tally leader, nil when the project has no concepts, and the round
// counts as approved only when the winner drew at least one approval.
func tallyResult(proj *project.Project) project.VotingResult {
	tallies := Tally(proj)
	if len(tallies) == 0 {
		return project.VotingResult{WinningConceptID: nil, Approved: false}
	}
	winner := tallies[0]
	id := winner.ConceptID
	return project.VotingResult{
		WinningConceptID: &id,
		Approved:         winner.Approvals > 0,
	}
}
