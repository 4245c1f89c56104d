package mocks

import (
	"context"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/threadsync"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

var _ project.Repository = (*ProjectRepository)(nil)

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByTeam(ctx context.Context, teamID string) ([]*project.Project, error) {
	args := m.Called(ctx, teamID)
	if list, ok := args.Get(0).([]*project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ThreadService is a mock for threadsync.ThreadService.
type ThreadService struct {
	mock.Mock
}

var _ threadsync.ThreadService = (*ThreadService)(nil)

func (m *ThreadService) ThreadsByTeam(ctx context.Context, teamID string) ([]threadsync.Thread, error) {
	args := m.Called(ctx, teamID)
	if threads, ok := args.Get(0).([]threadsync.Thread); ok {
		return threads, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ThreadService) SetThreadMetadata(ctx context.Context, threadID, key, value string) error {
	args := m.Called(ctx, threadID, key, value)
	return args.Error(0)
}
