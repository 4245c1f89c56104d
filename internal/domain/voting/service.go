package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/repository"
	"github.com/google/uuid"
)

// Service handles voting windows, vote casting, and concept approval.
type Service struct {
	repo   project.Repository
	logger *slog.Logger
}

// NewService creates a new voting service.
func NewService(repo project.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ScheduleWindow opens a voting round. Any existing window is overwritten;
// no history is retained.
func (s *Service) ScheduleWindow(ctx context.Context, projectID string, opensAt, closesAt time.Time) (*project.Project, error) {
	if closesAt.Before(opensAt) {
		return nil, ErrInvalidInput
	}

	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.AdvanceStage(proj, project.OpScheduleVotingWindow); err != nil {
		return nil, err
	}

	proj.VotingWindow = &project.VotingWindow{OpensAt: opensAt, ClosesAt: closesAt}
	s.logger.Info("voting window scheduled", "project_id", proj.ID, "closes_at", closesAt)
	return s.save(ctx, proj)
}

// CastVote upserts the member's vote on a concept. A member holds at most
// one vote per concept; re-casting overwrites the choice and timestamp.
func (s *Service) CastVote(ctx context.Context, projectID, conceptID, memberID string, choice project.VoteChoice) (*project.Project, error) {
	if strings.TrimSpace(memberID) == "" {
		return nil, ErrInvalidInput
	}
	if choice != project.VoteApprove && choice != project.VoteRevise {
		return nil, ErrInvalidInput
	}

	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := proj.ConceptByID(conceptID)
	if c == nil {
		return nil, ErrConceptNotFound
	}

	now := time.Now()
	for i := range c.Votes {
		if c.Votes[i].MemberID == memberID {
			c.Votes[i].Choice = choice
			c.Votes[i].CastAt = now
			return s.save(ctx, proj)
		}
	}
	c.Votes = append(c.Votes, project.Vote{
		ID:       uuid.NewString(),
		MemberID: memberID,
		Choice:   choice,
		CastAt:   now,
	})

	return s.save(ctx, proj)
}

// CloseWindow tallies the round, freezes the result on the window, points
// the active concept at the winner when one exists, and moves the project
// to final review. Closing again recomputes and overwrites the result.
func (s *Service) CloseWindow(ctx context.Context, projectID string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.VotingWindow == nil {
		return nil, ErrNoOpenWindow
	}
	if err := project.AdvanceStage(proj, project.OpCloseVotingWindow); err != nil {
		return nil, err
	}

	result := tallyResult(proj)
	proj.VotingWindow.Result = &result
	if result.WinningConceptID != nil {
		proj.ActiveConceptID = result.WinningConceptID
	}

	s.logger.Info("voting window closed",
		"project_id", proj.ID,
		"approved", result.Approved,
	)
	return s.save(ctx, proj)
}

// Approve is the manual override: the concept is approved, made active,
// and the project advances to the approved stage regardless of any tally.
func (s *Service) Approve(ctx context.Context, projectID, conceptID string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := proj.ConceptByID(conceptID)
	if c == nil {
		return nil, ErrConceptNotFound
	}
	if err := project.AdvanceStage(proj, project.OpApproveConcept); err != nil {
		return nil, err
	}

	c.Status = project.ConceptApproved
	id := c.ID
	proj.ActiveConceptID = &id

	s.logger.Info("concept approved", "project_id", proj.ID, "concept_id", conceptID)
	return s.save(ctx, proj)
}

func (s *Service) load(ctx context.Context, id string) (*project.Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

func (s *Service) save(ctx context.Context, proj *project.Project) (*project.Project, error) {
	proj.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}
