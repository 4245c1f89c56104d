package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline/kitforge/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Input types for the command surface. Pointer fields are optional.

type StartProjectInput struct {
	TeamID           string   `json:"team_id"`
	Title            string   `json:"title"`
	PrimaryColor     *string  `json:"primary_color,omitempty"`
	SecondaryColor   *string  `json:"secondary_color,omitempty"`
	Sponsor          *string  `json:"sponsor,omitempty"`
	Vibe             *string  `json:"vibe,omitempty"`
	InspirationNotes *string  `json:"inspiration_notes,omitempty"`
	CulturalAnchors  []string `json:"cultural_anchors,omitempty"`
	ChatThreadID     string   `json:"chat_thread_id,omitempty"`
}

type UpdateBriefInput struct {
	ProjectID        string   `json:"project_id"`
	PrimaryColor     *string  `json:"primary_color,omitempty"`
	SecondaryColor   *string  `json:"secondary_color,omitempty"`
	Sponsor          *string  `json:"sponsor,omitempty"`
	Vibe             *string  `json:"vibe,omitempty"`
	InspirationNotes *string  `json:"inspiration_notes,omitempty"`
	CulturalAnchors  []string `json:"cultural_anchors,omitempty"`
	PromptIDs        []string `json:"prompt_ids,omitempty"`
}

type ProjectIDInput struct {
	ProjectID string `json:"project_id"`
}

type AttachChatThreadInput struct {
	ProjectID string `json:"project_id"`
	ThreadID  string `json:"thread_id"`
}

type PublishFinalKitInput struct {
	ProjectID           string   `json:"project_id"`
	ShowcaseURL         string   `json:"showcase_url"`
	MonetisationUpsells []string `json:"monetisation_upsells,omitempty"`
}

type GenerateConceptsInput struct {
	ProjectID string `json:"project_id"`
	Count     int    `json:"count,omitempty"`
}

type ExportConceptInput struct {
	ProjectID  string `json:"project_id"`
	ConceptID  string `json:"concept_id"`
	ExternalID string `json:"external_id,omitempty"`
}

type SyncConceptRevisionInput struct {
	ProjectID          string   `json:"project_id"`
	ConceptID          string   `json:"concept_id"`
	UpdatedLayerLabels []string `json:"updated_layer_labels,omitempty"`
}

type AddTaskInput struct {
	ProjectID string `json:"project_id"`
	ConceptID string `json:"concept_id"`
	Summary   string `json:"summary"`
	Assignee  string `json:"assignee,omitempty"`
}

type UpdateTaskInput struct {
	ProjectID string  `json:"project_id"`
	ConceptID string  `json:"concept_id"`
	TaskID    string  `json:"task_id"`
	Status    *string `json:"status,omitempty"`
	Assignee  *string `json:"assignee,omitempty"`
}

type AddFeedbackInput struct {
	ProjectID string `json:"project_id"`
	ConceptID string `json:"concept_id"`
	Author    string `json:"author"`
	Message   string `json:"message"`
}

type ResolveFeedbackInput struct {
	ProjectID  string `json:"project_id"`
	ConceptID  string `json:"concept_id"`
	FeedbackID string `json:"feedback_id"`
}

type ScheduleVotingWindowInput struct {
	ProjectID string `json:"project_id"`
	OpensAt   string `json:"opens_at"`
	ClosesAt  string `json:"closes_at"`
}

type CastVoteInput struct {
	ProjectID string `json:"project_id"`
	ConceptID string `json:"concept_id"`
	MemberID  string `json:"member_id"`
	Choice    string `json:"choice"`
}

type ApproveConceptInput struct {
	ProjectID string `json:"project_id"`
	ConceptID string `json:"concept_id"`
}

type RequestVendorQuoteInput struct {
	ProjectID string `json:"project_id"`
	VendorID  string `json:"vendor_id"`
}

type ConfirmOrderInput struct {
	ProjectID     string         `json:"project_id"`
	QuoteID       string         `json:"quote_id"`
	PaymentMethod string         `json:"payment_method"`
	Quantities    map[string]int `json:"quantities"`
}

type UpdateOrderStatusInput struct {
	ProjectID   string `json:"project_id"`
	Status      string `json:"status"`
	TrackingURL string `json:"tracking_url,omitempty"`
}

type ListProjectsInput struct{}

type ListProjectsResult struct {
	Projects []project.Summary `json:"projects"`
}

func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_project",
		Description: "Start a kit design project for a team",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in StartProjectInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Projects.Start(ctx, project.StartRequest{
			TeamID:       in.TeamID,
			Title:        in.Title,
			Brief:        briefPatch(in.PrimaryColor, in.SecondaryColor, in.Sponsor, in.Vibe, in.InspirationNotes, in.CulturalAnchors),
			ChatThreadID: in.ChatThreadID,
		})
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_brief",
		Description: "Update the design brief and optionally replace the prompt selection",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateBriefInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		patch := briefPatch(in.PrimaryColor, in.SecondaryColor, in.Sponsor, in.Vibe, in.InspirationNotes, in.CulturalAnchors)
		proj, err := svcs.Projects.UpdateBrief(ctx, in.ProjectID, patch, in.PromptIDs)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "attach_chat_thread",
		Description: "Link the project to an external messaging thread",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AttachChatThreadInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Projects.AttachChatThread(ctx, in.ProjectID, in.ThreadID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sync_chat_thread",
		Description: "Reconcile the project's link with its messaging thread metadata",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.ThreadSync.Sync(ctx, in.ProjectID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "publish_final_kit",
		Description: "Record the public showcase link and upsell labels for the finished kit",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in PublishFinalKitInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Projects.PublishShowcase(ctx, in.ProjectID, in.ShowcaseURL, in.MonetisationUpsells)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_concepts",
		Description: "Generate new design concepts (default 3) and enter the concepting stage",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GenerateConceptsInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Concepts.Generate(ctx, in.ProjectID, in.Count)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_concept",
		Description: "Export a concept to the external design editor",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportConceptInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Concepts.ExportToEditor(ctx, in.ProjectID, in.ConceptID, in.ExternalID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sync_concept_revision",
		Description: "Record a returned external-editor revision, optionally relabeling layers",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SyncConceptRevisionInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Concepts.SyncRevision(ctx, in.ProjectID, in.ConceptID, in.UpdatedLayerLabels)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_task",
		Description: "Add a task to a concept",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTaskInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Concepts.AddTask(ctx, in.ProjectID, in.ConceptID, in.Summary, in.Assignee)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Update a concept task's status or assignee",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateTaskInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		var status *project.TaskStatus
		if in.Status != nil {
			s := project.TaskStatus(*in.Status)
			status = &s
		}
		proj, err := svcs.Concepts.UpdateTask(ctx, in.ProjectID, in.ConceptID, in.TaskID, status, in.Assignee)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_feedback",
		Description: "Add feedback to a concept",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddFeedbackInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Concepts.AddFeedback(ctx, in.ProjectID, in.ConceptID, in.Author, in.Message)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resolve_feedback",
		Description: "Mark a feedback entry resolved",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ResolveFeedbackInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Concepts.ResolveFeedback(ctx, in.ProjectID, in.ConceptID, in.FeedbackID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "schedule_voting_window",
		Description: "Open a voting round (RFC3339 timestamps) and enter the voting stage",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ScheduleVotingWindowInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		opensAt, err := time.Parse(time.RFC3339, in.OpensAt)
		if err != nil {
			return nil, CommandResult{}, fmt.Errorf("invalid opens_at: %w", err)
		}
		closesAt, err := time.Parse(time.RFC3339, in.ClosesAt)
		if err != nil {
			return nil, CommandResult{}, fmt.Errorf("invalid closes_at: %w", err)
		}
		proj, err := svcs.Voting.ScheduleWindow(ctx, in.ProjectID, opensAt, closesAt)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cast_vote",
		Description: "Cast or overwrite a member's approve/revise vote on a concept",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CastVoteInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Voting.CastVote(ctx, in.ProjectID, in.ConceptID, in.MemberID, project.VoteChoice(in.Choice))
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_voting_window",
		Description: "Close the voting round, freeze the tally result, and enter final review",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Voting.CloseWindow(ctx, in.ProjectID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "approve_concept",
		Description: "Manually approve a concept and enter the approved stage",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ApproveConceptInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Voting.Approve(ctx, in.ProjectID, in.ConceptID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "request_vendor_quote",
		Description: "Record the chosen vendor quote on the project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RequestVendorQuoteInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Procurement.RequestQuote(ctx, in.ProjectID, in.VendorID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "confirm_order",
		Description: "Confirm a manufacturing order; re-confirmation replaces the existing order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ConfirmOrderInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Procurement.ConfirmOrder(ctx, in.ProjectID, in.QuoteID, in.PaymentMethod, in.Quantities)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_order_status",
		Description: "Update the order status; fulfilled or shipped completes the project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateOrderStatusInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Procurement.UpdateOrderStatus(ctx, in.ProjectID, project.OrderStatus(in.Status), in.TrackingURL)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_production_package",
		Description: "Generate the production asset manifest from the active concept",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Procurement.CreateProductionPackage(ctx, in.ProjectID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Fetch a project's full snapshot",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDInput) (*sdkmcp.CallToolResult, CommandResult, error) {
		proj, err := svcs.Projects.Get(ctx, in.ProjectID)
		return commandResult(proj, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsInput) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		summaries, err := svcs.Projects.List(ctx)
		if err != nil {
			return nil, ListProjectsResult{}, err
		}
		return nil, ListProjectsResult{Projects: summaries}, nil
	})
}

func briefPatch(primary, secondary, sponsor, vibe, notes *string, anchors []string) project.BriefPatch {
	return project.BriefPatch{
		PrimaryColor:     primary,
		SecondaryColor:   secondary,
		Sponsor:          sponsor,
		Vibe:             vibe,
		InspirationNotes: notes,
		CulturalAnchors:  anchors,
	}
}
