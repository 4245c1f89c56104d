// Package threadsync keeps a project and its external messaging thread
// pointing at each other. The link is best-effort and idempotent: if the
// two stores briefly disagree, the next invocation self-heals.
package threadsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/repository"
)

// MetadataProjectKey is the thread metadata key carrying the linked
// project id. It is the only metadata key the engine reads or writes.
const MetadataProjectKey = "relatedProjectId"

// Thread is the engine's view of an external messaging thread.
type Thread struct {
	ID       string            `json:"id"`
	TeamID   string            `json:"team_id"`
	Topic    string            `json:"topic,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ThreadService is the messaging-service contract the synchronizer needs.
type ThreadService interface {
	ThreadsByTeam(ctx context.Context, teamID string) ([]Thread, error)
	SetThreadMetadata(ctx context.Context, threadID, key, value string) error
}

// Synchronizer mirrors a project id into its messaging thread's metadata.
type Synchronizer struct {
	repo    project.Repository
	threads ThreadService
	logger  *slog.Logger
}

// NewSynchronizer creates a new thread synchronizer.
func NewSynchronizer(repo project.Repository, threads ThreadService, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{repo: repo, threads: threads, logger: logger}
}

// Sync links the project to a team thread when it has none, then writes
// the project id into the thread's metadata when the thread doesn't
// already carry it. Messaging failures are logged and swallowed; this is
// a reaction, not a transaction.
func (s *Synchronizer) Sync(ctx context.Context, projectID string) (*project.Project, error) {
	proj, err := s.repo.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	threads, err := s.threads.ThreadsByTeam(ctx, proj.TeamID)
	if err != nil {
		s.logger.Warn("thread lookup failed, skipping sync", "project_id", projectID, "error", err)
		return proj, nil
	}

	if proj.ChatThreadID == "" && len(threads) > 0 {
		proj.ChatThreadID = threads[0].ID
		if err := s.repo.Update(ctx, proj); err != nil {
			return nil, fmt.Errorf("linking thread: %w", err)
		}
		s.logger.Info("thread linked", "project_id", proj.ID, "thread_id", proj.ChatThreadID)
	}
	if proj.ChatThreadID == "" {
		return proj, nil
	}

	// When the linked thread is missing from the listing (attached by id,
	// or the listing is stale) the write still goes out, so the metadata
	// converges either way.
	for _, t := range threads {
		if t.ID == proj.ChatThreadID && t.Metadata[MetadataProjectKey] == proj.ID {
			return proj, nil
		}
	}
	if err := s.threads.SetThreadMetadata(ctx, proj.ChatThreadID, MetadataProjectKey, proj.ID); err != nil {
		s.logger.Warn("thread metadata write failed", "thread_id", proj.ChatThreadID, "error", err)
	}

	return proj, nil
}
