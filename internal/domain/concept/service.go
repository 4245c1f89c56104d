package concept

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/repository"
	"github.com/google/uuid"
)

// defaultConceptCount is how many concepts one generation pass produces
// when the caller doesn't say otherwise.
const defaultConceptCount = 3

// Service handles concept generation, the external-editor round trip, and
// the nested task/feedback collections.
type Service struct {
	repo    project.Repository
	catalog *catalog.Store
	logger  *slog.Logger
}

// NewService creates a new concept service.
func NewService(repo project.Repository, cat *catalog.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: cat, logger: logger}
}

// Generate appends count new concepts to the project. Version numbers
// continue from the current concept count, so repeated calls never reuse a
// version. The first concept of the very first generation becomes the
// active concept; an already-set active concept is never overwritten.
func (s *Service) Generate(ctx context.Context, projectID string, count int) (*project.Project, error) {
	if count <= 0 {
		count = defaultConceptCount
	}

	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := project.AdvanceStage(proj, project.OpGenerateConcepts); err != nil {
		return nil, err
	}

	templates := s.catalog.Templates()
	now := time.Now()
	base := len(proj.Concepts)
	var firstID string
	for i := 0; i < count; i++ {
		version := base + i + 1
		c := project.Concept{
			ID:          uuid.NewString(),
			Title:       fmt.Sprintf("Concept %d", version),
			Version:     version,
			GeneratedAt: now,
			Origin:      project.OriginGenerated,
			Layers:      defaultLayers(),
			Status:      project.ConceptDraft,
		}
		if len(templates) > 0 {
			tpl := templates[(version-1)%len(templates)]
			c.FrontPreviewURL = previewURL(tpl, "front")
			c.BackPreviewURL = previewURL(tpl, "back")
			c.CrestPreviewURL = previewURL(tpl, "crest")
		}
		if firstID == "" {
			firstID = c.ID
		}
		proj.Concepts = append(proj.Concepts, c)
	}

	if proj.ActiveConceptID == nil && firstID != "" {
		proj.ActiveConceptID = &firstID
	}

	s.logger.Info("concepts generated", "project_id", proj.ID, "count", count, "total", len(proj.Concepts))
	return s.save(ctx, proj)
}

func defaultLayers() []project.Layer {
	return []project.Layer{
		{ID: uuid.NewString(), Label: "Base pattern", Editable: true},
		{ID: uuid.NewString(), Label: "Accent stripes", Editable: true},
		{ID: uuid.NewString(), Label: "Sponsor lockup", Editable: true},
	}
}

func previewURL(tpl catalog.Template, view string) string {
	url := strings.TrimSuffix(tpl.PreviewURL, ".png")
	return fmt.Sprintf("%s-%s.png", url, view)
}

// ExportToEditor stamps the concept with a pending export record and flips
// its origin to externally-edited. A repeat export overwrites the previous
// record; no history is kept.
func (s *Service) ExportToEditor(ctx context.Context, projectID, conceptID, externalID string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := proj.ConceptByID(conceptID)
	if c == nil {
		return nil, ErrConceptNotFound
	}

	if externalID == "" {
		externalID = uuid.NewString()
	}
	c.Export = &project.ExportRecord{
		ExternalID: externalID,
		ExportedAt: time.Now(),
		SyncStatus: project.ExportPending,
	}
	c.Origin = project.OriginExternallyEdited

	return s.save(ctx, proj)
}

// SyncRevision records a completed external-editor round trip: the sync
// timestamp is stamped, a pending export flips to synced, and layer labels
// are rewritten positionally when provided. Labels beyond the layer count
// are ignored; missing labels keep the original in place.
func (s *Service) SyncRevision(ctx context.Context, projectID, conceptID string, updatedLayerLabels []string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := proj.ConceptByID(conceptID)
	if c == nil {
		return nil, ErrConceptNotFound
	}

	now := time.Now()
	c.LastSyncedAt = &now
	if c.Export != nil {
		c.Export.SyncStatus = project.ExportSynced
	}
	for i, label := range updatedLayerLabels {
		if i >= len(c.Layers) {
			break
		}
		c.Layers[i].Label = label
	}

	return s.save(ctx, proj)
}

// AddTask appends an open task to the concept.
func (s *Service) AddTask(ctx context.Context, projectID, conceptID, summary, assignee string) (*project.Project, error) {
	if strings.TrimSpace(summary) == "" {
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

	c.Tasks = append(c.Tasks, project.Task{
		ID:       uuid.NewString(),
		Summary:  summary,
		Status:   project.TaskOpen,
		Assignee: assignee,
	})

	return s.save(ctx, proj)
}

// UpdateTask updates a task's status and/or assignee.
func (s *Service) UpdateTask(ctx context.Context, projectID, conceptID, taskID string, status *project.TaskStatus, assignee *string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := proj.ConceptByID(conceptID)
	if c == nil {
		return nil, ErrConceptNotFound
	}

	updated := false
	for i := range c.Tasks {
		if c.Tasks[i].ID != taskID {
			continue
		}
		if status != nil {
			c.Tasks[i].Status = *status
		}
		if assignee != nil {
			c.Tasks[i].Assignee = *assignee
		}
		updated = true
		break
	}
	if !updated {
		return nil, ErrTaskNotFound
	}

	return s.save(ctx, proj)
}

// AddFeedback appends a feedback entry to the concept.
func (s *Service) AddFeedback(ctx context.Context, projectID, conceptID, author, message string) (*project.Project, error) {
	if strings.TrimSpace(author) == "" || strings.TrimSpace(message) == "" {
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

	c.Feedback = append(c.Feedback, project.Feedback{
		ID:        uuid.NewString(),
		Author:    author,
		Message:   message,
		CreatedAt: time.Now(),
	})

	return s.save(ctx, proj)
}

// ResolveFeedback marks a feedback entry resolved.
func (s *Service) ResolveFeedback(ctx context.Context, projectID, conceptID, feedbackID string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	c := proj.ConceptByID(conceptID)
	if c == nil {
		return nil, ErrConceptNotFound
	}

	resolved := false
	for i := range c.Feedback {
		if c.Feedback[i].ID == feedbackID {
			c.Feedback[i].Resolved = true
			resolved = true
			break
		}
	}
	if !resolved {
		return nil, ErrFeedbackNotFound
	}

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
