package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/repository"
	"github.com/google/uuid"
)

// Service handles project lifecycle operations.
type Service struct {
	repo    Repository
	catalog *catalog.Store
	logger  *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, cat *catalog.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: cat, logger: logger}
}

// StartRequest defines project creation inputs.
type StartRequest struct {
	TeamID       string
	Title        string
	Brief        BriefPatch
	ChatThreadID string
}

// Start creates a project in the brief stage with the default brief merged
// with any overrides, seeded with the first two catalog prompts. Teams may
// hold multiple concurrent projects; no dedup happens here.
func (s *Service) Start(ctx context.Context, req StartRequest) (*Project, error) {
	if strings.TrimSpace(req.TeamID) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	brief := DefaultBrief()
	brief.Apply(req.Brief)

	now := time.Now()
	proj := &Project{
		ID:           uuid.NewString(),
		TeamID:       req.TeamID,
		Title:        req.Title,
		Stage:        StageBrief,
		Brief:        brief,
		Prompts:      s.catalog.DefaultPrompts(2),
		Concepts:     []Concept{},
		ChatThreadID: req.ChatThreadID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project started", "project_id", proj.ID, "team_id", proj.TeamID)
	return proj, nil
}

// UpdateBrief shallow-merges brief fields. When promptIDs is non-nil the
// prompt selection is replaced with the matching catalog subset; ids not
// found in the catalog are silently dropped.
func (s *Service) UpdateBrief(ctx context.Context, projectID string, patch BriefPatch, promptIDs []string) (*Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	proj.Brief.Apply(patch)
	if promptIDs != nil {
		proj.Prompts = s.catalog.PromptsByID(promptIDs)
	}

	return s.save(ctx, proj)
}

// AttachChatThread links the project to an external messaging thread.
func (s *Service) AttachChatThread(ctx context.Context, projectID, threadID string) (*Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	proj.ChatThreadID = threadID
	return s.save(ctx, proj)
}

// PublishShowcase records the public showcase link and, when provided,
// the upsell labels offered alongside it. The stage is left untouched.
func (s *Service) PublishShowcase(ctx context.Context, projectID, showcaseURL string, upsells []string) (*Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	proj.ShowcaseURL = showcaseURL
	if upsells != nil {
		proj.MonetisationUpsells = upsells
	}
	return s.save(ctx, proj)
}

// Get fetches a project by id.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	return s.load(ctx, id)
}

// List returns project summaries.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// ListByTeam returns a team's projects, oldest first.
func (s *Service) ListByTeam(ctx context.Context, teamID string) ([]*Project, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

func (s *Service) load(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

func (s *Service) save(ctx context.Context, proj *Project) (*Project, error) {
	proj.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}
