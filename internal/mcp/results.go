package mcp

import (
	"errors"

	"github.com/crestline/kitforge/internal/domain/concept"
	"github.com/crestline/kitforge/internal/domain/procurement"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/voting"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CommandResult is the uniform tool result: the updated project snapshot,
// or a note when the command applied no changes.
type CommandResult struct {
	Project *project.Project `json:"project,omitempty"`
	Note    string           `json:"note,omitempty"`
}

// commandResult converts a service call outcome into a tool result.
// Missing-reference errors become successful no-ops with an explanatory
// note; commands never fail for "not found" at this boundary.
func commandResult(proj *project.Project, err error) (*sdkmcp.CallToolResult, CommandResult, error) {
	if err != nil {
		if isNoopError(err) {
			return nil, CommandResult{Note: "not found; no changes applied"}, nil
		}
		if errors.Is(err, project.ErrInvalidStageTransition) {
			return nil, CommandResult{Note: "operation not valid in the current stage; no changes applied"}, nil
		}
		return nil, CommandResult{}, err
	}
	return nil, CommandResult{Project: proj}, nil
}

func isNoopError(err error) bool {
	return errors.Is(err, project.ErrProjectNotFound) ||
		errors.Is(err, concept.ErrConceptNotFound) ||
		errors.Is(err, concept.ErrTaskNotFound) ||
		errors.Is(err, concept.ErrFeedbackNotFound) ||
		errors.Is(err, voting.ErrConceptNotFound) ||
		errors.Is(err, voting.ErrNoOpenWindow) ||
		errors.Is(err, procurement.ErrNoOrder) ||
		errors.Is(err, procurement.ErrNoActiveConcept)
}
