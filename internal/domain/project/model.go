package project

import (
	"time"

	"github.com/crestline/kitforge/internal/domain/catalog"
)

// ConceptOrigin records how a concept came to be.
type ConceptOrigin string

const (
	OriginGenerated        ConceptOrigin = "generated"
	OriginExternallyEdited ConceptOrigin = "externally-edited"
)

// ConceptStatus is the review state of a concept.
type ConceptStatus string

const (
	ConceptDraft    ConceptStatus = "draft"
	ConceptReview   ConceptStatus = "review"
	ConceptApproved ConceptStatus = "approved"
	ConceptArchived ConceptStatus = "archived"
)

// ExportStatus tracks the external-editor round trip.
type ExportStatus string

const (
	ExportPending ExportStatus = "pending"
	ExportSynced  ExportStatus = "synced"
)

// TaskStatus is the state of a concept task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "inProgress"
	TaskCompleted  TaskStatus = "completed"
)

// VoteChoice is a member's vote on a concept.
type VoteChoice string

const (
	VoteApprove VoteChoice = "approve"
	VoteRevise  VoteChoice = "revise"
)

// OrderStatus is the manufacturing order state.
type OrderStatus string

const (
	OrderDraft        OrderStatus = "draft"
	OrderQuoted       OrderStatus = "quoted"
	OrderSubmitted    OrderStatus = "submitted"
	OrderInProduction OrderStatus = "inProduction"
	OrderFulfilled    OrderStatus = "fulfilled"
	OrderShipped      OrderStatus = "shipped"
)

// AssetType is the kind of a generated production asset.
type AssetType string

const (
	AssetVector    AssetType = "vector"
	AssetMockup    AssetType = "mockup"
	AssetSpecSheet AssetType = "specSheet"
)

// Brief captures the design direction for a project. It is a plain value
// object, fully replaceable.
type Brief struct {
	PrimaryColor     string   `json:"primary_color"`
	SecondaryColor   string   `json:"secondary_color"`
	Sponsor          string   `json:"sponsor,omitempty"`
	Vibe             string   `json:"vibe,omitempty"`
	InspirationNotes string   `json:"inspiration_notes,omitempty"`
	CulturalAnchors  []string `json:"cultural_anchors,omitempty"`
}

// DefaultBrief returns the brief a new project starts from.
func DefaultBrief() Brief {
	return Brief{
		PrimaryColor:   "#0B1F3A",
		SecondaryColor: "#F5B700",
		Vibe:           "modern",
	}
}

// BriefPatch holds optional brief field updates. Nil fields keep the
// current value.
type BriefPatch struct {
	PrimaryColor     *string
	SecondaryColor   *string
	Sponsor          *string
	Vibe             *string
	InspirationNotes *string
	CulturalAnchors  []string
}

// Apply shallow-merges the patch into the brief.
func (b *Brief) Apply(patch BriefPatch) {
	if patch.PrimaryColor != nil {
		b.PrimaryColor = *patch.PrimaryColor
	}
	if patch.SecondaryColor != nil {
		b.SecondaryColor = *patch.SecondaryColor
	}
	if patch.Sponsor != nil {
		b.Sponsor = *patch.Sponsor
	}
	if patch.Vibe != nil {
		b.Vibe = *patch.Vibe
	}
	if patch.InspirationNotes != nil {
		b.InspirationNotes = *patch.InspirationNotes
	}
	if patch.CulturalAnchors != nil {
		b.CulturalAnchors = patch.CulturalAnchors
	}
}

// Layer is one editable layer of a concept's artwork.
type Layer struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Editable bool   `json:"editable"`
}

// ExportRecord is the bookkeeping for a single external-editor export.
// A concept holds at most one; a repeat export overwrites it.
type ExportRecord struct {
	ExternalID string       `json:"external_id"`
	ExportedAt time.Time    `json:"exported_at"`
	SyncStatus ExportStatus `json:"sync_status"`
}

// Task is a work item scoped to a concept.
type Task struct {
	ID       string     `json:"id"`
	Summary  string     `json:"summary"`
	Status   TaskStatus `json:"status"`
	Assignee string     `json:"assignee,omitempty"`
}

// Feedback is a member comment on a concept. Append-only except for the
// resolved flag.
type Feedback struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Resolved  bool      `json:"resolved"`
}

// Vote is a member's approve/revise vote on a concept. At most one vote
// per member; re-casting overwrites choice and timestamp.
type Vote struct {
	ID       string     `json:"id"`
	MemberID string     `json:"member_id"`
	Choice   VoteChoice `json:"choice"`
	CastAt   time.Time  `json:"cast_at"`
}

// Concept is one visual design proposal within a project. The artwork
// itself is immutable once generated; only the nested task/feedback/vote
// collections and the export bookkeeping change afterwards.
type Concept struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Version         int           `json:"version"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Origin          ConceptOrigin `json:"origin"`
	FrontPreviewURL string        `json:"front_preview_url,omitempty"`
	BackPreviewURL  string        `json:"back_preview_url,omitempty"`
	CrestPreviewURL string        `json:"crest_preview_url,omitempty"`
	Layers          []Layer       `json:"layers"`
	Export          *ExportRecord `json:"export,omitempty"`
	LastSyncedAt    *time.Time    `json:"last_synced_at,omitempty"`
	Tasks           []Task        `json:"tasks,omitempty"`
	Feedback        []Feedback    `json:"feedback,omitempty"`
	Votes           []Vote        `json:"votes,omitempty"`
	Status          ConceptStatus `json:"status"`
}

// ApprovalCount returns the number of approve votes on the concept.
func (c *Concept) ApprovalCount() int {
	n := 0
	for _, v := range c.Votes {
		if v.Choice == VoteApprove {
			n++
		}
	}
	return n
}

// VotingResult is the frozen outcome of a closed voting window.
type VotingResult struct {
	WinningConceptID *string `json:"winning_concept_id"`
	Approved         bool    `json:"approved"`
}

// VotingWindow is the time-boxed voting round. Closing computes and
// freezes Result; closing again recomputes and overwrites it.
type VotingWindow struct {
	OpensAt  time.Time     `json:"opens_at"`
	ClosesAt time.Time     `json:"closes_at"`
	Result   *VotingResult `json:"result,omitempty"`
}

// Order is the manufacturing commitment against a vendor quote. Created
// once per confirmation; a re-confirmation replaces it wholesale.
type Order struct {
	ID            string         `json:"id"`
	VendorID      string         `json:"vendor_id"`
	QuoteID       string         `json:"quote_id"`
	Status        OrderStatus    `json:"status"`
	Quantities    map[string]int `json:"quantities"`
	TotalPrice    float64        `json:"total_price"`
	PaymentMethod string         `json:"payment_method"`
	SubmittedAt   time.Time      `json:"submitted_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	TrackingURL   string         `json:"tracking_url,omitempty"`
}

// ProductionAsset is a generated output file. Assets are produced in a
// batch when production is entered and are immutable thereafter.
type ProductionAsset struct {
	ID          string    `json:"id"`
	Type        AssetType `json:"type"`
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
}

// Project is one team's design-and-procurement workflow instance.
// ActiveConceptID, when set, always references a concept in Concepts.
type Project struct {
	ID                  string            `json:"id"`
	TeamID              string            `json:"team_id"`
	Title               string            `json:"title"`
	Stage               Stage             `json:"stage"`
	Brief               Brief             `json:"brief"`
	Prompts             []catalog.Prompt  `json:"prompts,omitempty"`
	Concepts            []Concept         `json:"concepts"`
	ActiveConceptID     *string           `json:"active_concept_id,omitempty"`
	VotingWindow        *VotingWindow     `json:"voting_window,omitempty"`
	VendorQuoteID       *string           `json:"vendor_quote_id,omitempty"`
	Order               *Order            `json:"order,omitempty"`
	ProductionAssets    []ProductionAsset `json:"production_assets,omitempty"`
	ShowcaseURL         string            `json:"showcase_url,omitempty"`
	MonetisationUpsells []string          `json:"monetisation_upsells,omitempty"`
	ChatThreadID        string            `json:"chat_thread_id,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ConceptByID returns a pointer into the project's concept list, or nil.
func (p *Project) ConceptByID(id string) *Concept {
	for i := range p.Concepts {
		if p.Concepts[i].ID == id {
			return &p.Concepts[i]
		}
	}
	return nil
}

// Summary is a lightweight representation for listing projects.
type Summary struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team_id"`
	Title        string    `json:"title"`
	Stage        Stage     `json:"stage"`
	ConceptCount int       `json:"concept_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
