package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/crestline/kitforge/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `kitforge drives a team's kit-design workflow from brief to production.
Start a project, generate concepts, collect votes and feedback, close the
voting window, then confirm a manufacturing order and create the
production package. Commands targeting ids that no longer exist apply no
changes and report that in the result note.`

// ProjectService defines project lifecycle operations needed by MCP.
type ProjectService interface {
	Start(ctx context.Context, req project.StartRequest) (*project.Project, error)
	UpdateBrief(ctx context.Context, projectID string, patch project.BriefPatch, promptIDs []string) (*project.Project, error)
	AttachChatThread(ctx context.Context, projectID, threadID string) (*project.Project, error)
	PublishShowcase(ctx context.Context, projectID, showcaseURL string, upsells []string) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
}

// ConceptService defines concept operations needed by MCP.
type ConceptService interface {
	Generate(ctx context.Context, projectID string, count int) (*project.Project, error)
	ExportToEditor(ctx context.Context, projectID, conceptID, externalID string) (*project.Project, error)
	SyncRevision(ctx context.Context, projectID, conceptID string, updatedLayerLabels []string) (*project.Project, error)
	AddTask(ctx context.Context, projectID, conceptID, summary, assignee string) (*project.Project, error)
	UpdateTask(ctx context.Context, projectID, conceptID, taskID string, status *project.TaskStatus, assignee *string) (*project.Project, error)
	AddFeedback(ctx context.Context, projectID, conceptID, author, message string) (*project.Project, error)
	ResolveFeedback(ctx context.Context, projectID, conceptID, feedbackID string) (*project.Project, error)
}

// VotingService defines voting operations needed by MCP.
type VotingService interface {
	ScheduleWindow(ctx context.Context, projectID string, opensAt, closesAt time.Time) (*project.Project, error)
	CastVote(ctx context.Context, projectID, conceptID, memberID string, choice project.VoteChoice) (*project.Project, error)
	CloseWindow(ctx context.Context, projectID string) (*project.Project, error)
	Approve(ctx context.Context, projectID, conceptID string) (*project.Project, error)
}

// ProcurementService defines procurement operations needed by MCP.
type ProcurementService interface {
	RequestQuote(ctx context.Context, projectID, vendorID string) (*project.Project, error)
	ConfirmOrder(ctx context.Context, projectID, quoteID, paymentMethod string, quantities map[string]int) (*project.Project, error)
	UpdateOrderStatus(ctx context.Context, projectID string, status project.OrderStatus, trackingURL string) (*project.Project, error)
	CreateProductionPackage(ctx context.Context, projectID string) (*project.Project, error)
}

// ThreadSyncService defines the chat-thread sync operation needed by MCP.
type ThreadSyncService interface {
	Sync(ctx context.Context, projectID string) (*project.Project, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects    ProjectService
	Concepts    ConceptService
	Voting      VotingService
	Procurement ProcurementService
	ThreadSync  ThreadSyncService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "kitforge",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
