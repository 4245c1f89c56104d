package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/repository"
	"github.com/stretchr/testify/require"
)

func testProject(id, teamID string, createdAt time.Time) *project.Project {
	return &project.Project{
		ID:        id,
		TeamID:    teamID,
		Title:     "Home Kit 2026",
		Stage:     project.StageBrief,
		Brief:     project.DefaultBrief(),
		Concepts:  []project.Concept{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	proj := testProject("p1", "team1", time.Now().UTC().Truncate(time.Second))
	proj.Concepts = []project.Concept{
		{
			ID:          "c1",
			Title:       "Concept 1",
			Version:     1,
			GeneratedAt: proj.CreatedAt,
			Origin:      project.OriginGenerated,
			Status:      project.ConceptDraft,
			Layers: []project.Layer{
				{ID: "l1", Label: "Base pattern", Editable: true},
			},
		},
	}

	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.ID, got.ID)
	require.Equal(t, proj.TeamID, got.TeamID)
	require.Equal(t, proj.Title, got.Title)
	require.Equal(t, project.StageBrief, got.Stage)
	require.Equal(t, proj.Brief, got.Brief)
	require.Len(t, got.Concepts, 1)
	require.Equal(t, "Base pattern", got.Concepts[0].Layers[0].Label)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	proj := testProject("p1", "team1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Create(ctx, proj))

	proj.Stage = project.StageConcepting
	proj.Brief.Sponsor = "Acme Athletics"
	proj.UpdatedAt = proj.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StageConcepting, got.Stage)
	require.Equal(t, "Acme Athletics", got.Brief.Sponsor)
}

func TestProjectRepository_UpdateNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	proj := testProject("missing", "team1", time.Now().UTC())
	err := repo.Update(context.Background(), proj)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	base := time.Now().UTC().Truncate(time.Second)
	older := testProject("p1", "team1", base.Add(-time.Hour))
	newer := testProject("p2", "team2", base)
	newer.Concepts = []project.Concept{{ID: "c1"}, {ID: "c2"}}

	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "p1", summaries[0].ID)
	require.Equal(t, "p2", summaries[1].ID)
	require.Equal(t, 2, summaries[1].ConceptCount)
}

func TestProjectRepository_ListByTeam(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, testProject("p1", "team1", base.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, testProject("p2", "team2", base)))
	require.NoError(t, repo.Create(ctx, testProject("p3", "team1", base)))

	projects, err := repo.ListByTeam(ctx, "team1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "p1", projects[0].ID)
	require.Equal(t, "p3", projects[1].ID)

	empty, err := repo.ListByTeam(ctx, "team3")
	require.NoError(t, err)
	require.Empty(t, empty)
}
