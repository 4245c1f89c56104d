package functional_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/domain/concept"
	"github.com/crestline/kitforge/internal/domain/procurement"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/voting"
	"github.com/crestline/kitforge/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	projects    *project.Service
	concepts    *concept.Service
	voting      *voting.Service
	procurement *procurement.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewProjectRepository(db)
	cat := catalog.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		projects:    project.NewService(repo, cat, logger),
		concepts:    concept.NewService(repo, cat, logger),
		voting:      voting.NewService(repo, logger),
		procurement: procurement.NewService(repo, cat, logger),
	}
}

// TestDesignRoundWorkflow walks a full design round: start a project,
// generate concepts, collect votes, schedule and close the window, and
// check the winner and stage at the end.
func TestDesignRoundWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	proj, err := f.projects.Start(ctx, project.StartRequest{
		TeamID: "team-united",
		Title:  "Third Kit 2027",
	})
	require.NoError(t, err)
	require.Equal(t, project.StageBrief, proj.Stage)

	proj, err = f.concepts.Generate(ctx, proj.ID, 2)
	require.NoError(t, err)
	require.Equal(t, project.StageConcepting, proj.Stage)
	require.Len(t, proj.Concepts, 2)

	first := proj.Concepts[0].ID
	second := proj.Concepts[1].ID

	// Votes can arrive before a window is scheduled.
	_, err = f.voting.CastVote(ctx, proj.ID, first, "member-ana", project.VoteApprove)
	require.NoError(t, err)
	_, err = f.voting.CastVote(ctx, proj.ID, second, "member-ben", project.VoteRevise)
	require.NoError(t, err)

	opens := time.Now().UTC()
	proj, err = f.voting.ScheduleWindow(ctx, proj.ID, opens, opens.Add(48*time.Hour))
	require.NoError(t, err)
	require.Equal(t, project.StageVoting, proj.Stage)

	_, err = f.voting.CastVote(ctx, proj.ID, first, "member-cleo", project.VoteApprove)
	require.NoError(t, err)

	proj, err = f.voting.CloseWindow(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StageFinalReview, proj.Stage)
	require.NotNil(t, proj.VotingWindow.Result)
	require.True(t, proj.VotingWindow.Result.Approved)
	require.NotNil(t, proj.VotingWindow.Result.WinningConceptID)
	require.Equal(t, first, *proj.VotingWindow.Result.WinningConceptID)
	require.NotNil(t, proj.ActiveConceptID)
	require.Equal(t, first, *proj.ActiveConceptID)
}

// TestProcurementWorkflow carries an approved project through quoting,
// order confirmation, production packaging, and delivery.
func TestProcurementWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	proj, err := f.projects.Start(ctx, project.StartRequest{
		TeamID: "team-rovers",
		Title:  "Home Kit 2027",
	})
	require.NoError(t, err)

	proj, err = f.concepts.Generate(ctx, proj.ID, 0)
	require.NoError(t, err)
	require.Len(t, proj.Concepts, 3)

	proj, err = f.voting.Approve(ctx, proj.ID, proj.Concepts[1].ID)
	require.NoError(t, err)
	require.Equal(t, project.StageApproved, proj.Stage)
	require.Equal(t, project.ConceptApproved, proj.Concepts[1].Status)

	proj, err = f.procurement.RequestQuote(ctx, proj.ID, "vendor-rapidkits")
	require.NoError(t, err)
	require.NotNil(t, proj.VendorQuoteID)

	proj, err = f.procurement.ConfirmOrder(ctx, proj.ID, "vendor-rapidkits", "invoice", map[string]int{"M": 6, "L": 4})
	require.NoError(t, err)
	require.NotNil(t, proj.Order)
	require.Equal(t, project.OrderSubmitted, proj.Order.Status)
	require.InDelta(t, 290.0, proj.Order.TotalPrice, 0.001)

	proj, err = f.procurement.CreateProductionPackage(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StageProduction, proj.Stage)
	require.Len(t, proj.ProductionAssets, 3)

	proj, err = f.procurement.UpdateOrderStatus(ctx, proj.ID, project.OrderShipped, "https://tracking.example/123")
	require.NoError(t, err)
	require.Equal(t, project.StageComplete, proj.Stage)
	require.Equal(t, project.OrderShipped, proj.Order.Status)
	require.Equal(t, "https://tracking.example/123", proj.Order.TrackingURL)

	proj, err = f.projects.PublishShowcase(ctx, proj.ID, "https://kitforge.dev/showcase/home-kit-2027", []string{"retro-remix", "supporter-scarf"})
	require.NoError(t, err)
	require.Equal(t, project.StageComplete, proj.Stage)
	require.Equal(t, "https://kitforge.dev/showcase/home-kit-2027", proj.ShowcaseURL)
	require.Equal(t, []string{"retro-remix", "supporter-scarf"}, proj.MonetisationUpsells)
}

// TestStageGuards checks that out-of-order commands are rejected without
// corrupting the stored aggregate.
func TestStageGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	proj, err := f.projects.Start(ctx, project.StartRequest{
		TeamID: "team-city",
		Title:  "Cup Kit",
	})
	require.NoError(t, err)

	_, err = f.voting.CloseWindow(ctx, proj.ID)
	require.Error(t, err)

	_, err = f.procurement.CreateProductionPackage(ctx, proj.ID)
	require.Error(t, err)

	got, err := f.projects.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StageBrief, got.Stage)
	require.Empty(t, got.ProductionAssets)
}

// TestConceptIterationWorkflow exercises the external-editor round trip
// and the task/feedback loops on a stored project.
func TestConceptIterationWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	proj, err := f.projects.Start(ctx, project.StartRequest{
		TeamID: "team-athletic",
		Title:  "Keeper Kit",
	})
	require.NoError(t, err)

	proj, err = f.concepts.Generate(ctx, proj.ID, 1)
	require.NoError(t, err)
	conceptID := proj.Concepts[0].ID

	proj, err = f.concepts.ExportToEditor(ctx, proj.ID, conceptID, "ext-42")
	require.NoError(t, err)
	require.NotNil(t, proj.Concepts[0].Export)
	require.Equal(t, project.ExportPending, proj.Concepts[0].Export.SyncStatus)
	require.Equal(t, project.OriginExternallyEdited, proj.Concepts[0].Origin)

	proj, err = f.concepts.SyncRevision(ctx, proj.ID, conceptID, []string{"Reworked pattern"})
	require.NoError(t, err)
	require.Equal(t, project.ExportSynced, proj.Concepts[0].Export.SyncStatus)
	require.Equal(t, "Reworked pattern", proj.Concepts[0].Layers[0].Label)

	proj, err = f.concepts.AddTask(ctx, proj.ID, conceptID, "Tighten sponsor spacing", "member-ana")
	require.NoError(t, err)
	require.Len(t, proj.Concepts[0].Tasks, 1)

	done := project.TaskCompleted
	proj, err = f.concepts.UpdateTask(ctx, proj.ID, conceptID, proj.Concepts[0].Tasks[0].ID, &done, nil)
	require.NoError(t, err)
	require.Equal(t, project.TaskCompleted, proj.Concepts[0].Tasks[0].Status)

	proj, err = f.concepts.AddFeedback(ctx, proj.ID, conceptID, "member-ben", "Crest feels small")
	require.NoError(t, err)
	require.Len(t, proj.Concepts[0].Feedback, 1)

	proj, err = f.concepts.ResolveFeedback(ctx, proj.ID, conceptID, proj.Concepts[0].Feedback[0].ID)
	require.NoError(t, err)
	require.True(t, proj.Concepts[0].Feedback[0].Resolved)
}
