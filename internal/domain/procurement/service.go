package procurement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/repository"
	"github.com/google/uuid"
)

// fallbackUnitPrice is charged per item when an order references a quote
// id missing from the catalog; the order still gets a cost.
const fallbackUnitPrice = 40

// Service handles vendor-quote binding, order costing, and the
// production-asset manifest.
type Service struct {
	repo    project.Repository
	catalog *catalog.Store
	logger  *slog.Logger
}

// NewService creates a new procurement service.
func NewService(repo project.Repository, cat *catalog.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: cat, logger: logger}
}

// RequestQuote records the chosen catalog entry's id on the project. The
// catalog entry itself is never copied or mutated.
func (s *Service) RequestQuote(ctx context.Context, projectID, vendorID string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	proj.VendorQuoteID = &vendorID
	return s.save(ctx, proj)
}

// ConfirmOrder creates the project's order in submitted status. The total
// is unit price times total units, with the fallback unit price when the
// quote id is unknown. A re-confirmation replaces the existing order
// wholesale.
func (s *Service) ConfirmOrder(ctx context.Context, projectID, quoteID, paymentMethod string, quantities map[string]int) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	totalUnits := 0
	for _, n := range quantities {
		totalUnits += n
	}

	unitPrice := float64(fallbackUnitPrice)
	vendorID := quoteID
	if quote, ok := s.catalog.Quote(quoteID); ok {
		unitPrice = quote.UnitPrice
		vendorID = quote.ID
	} else {
		s.logger.Warn("quote not in catalog, using fallback unit price",
			"project_id", projectID,
			"quote_id", quoteID,
		)
	}

	now := time.Now()
	proj.Order = &project.Order{
		ID:            uuid.NewString(),
		VendorID:      vendorID,
		QuoteID:       quoteID,
		Status:        project.OrderSubmitted,
		Quantities:    quantities,
		TotalPrice:    float64(totalUnits) * unitPrice,
		PaymentMethod: paymentMethod,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}

	s.logger.Info("order confirmed",
		"project_id", proj.ID,
		"quote_id", quoteID,
		"units", totalUnits,
		"total", proj.Order.TotalPrice,
	)
	return s.save(ctx, proj)
}

// UpdateOrderStatus updates the order's status, timestamp, and optionally
// the tracking link. A fulfilled or shipped order completes the project.
func (s *Service) UpdateOrderStatus(ctx context.Context, projectID string, status project.OrderStatus, trackingURL string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.Order == nil {
		return nil, ErrNoOrder
	}

	if status == project.OrderFulfilled || status == project.OrderShipped {
		if err := project.AdvanceStage(proj, project.OpCompleteOrder); err != nil {
			return nil, err
		}
	}

	proj.Order.Status = status
	proj.Order.UpdatedAt = time.Now()
	if trackingURL != "" {
		proj.Order.TrackingURL = trackingURL
	}

	return s.save(ctx, proj)
}

// CreateProductionPackage generates the three-asset production manifest
// from the active concept, replacing any prior asset list, and moves the
// project into production.
func (s *Service) CreateProductionPackage(ctx context.Context, projectID string) (*project.Project, error) {
	proj, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.ActiveConceptID == nil {
		return nil, ErrNoActiveConcept
	}
	if err := project.AdvanceStage(proj, project.OpCreateProductionPackage); err != nil {
		return nil, err
	}

	proj.ProductionAssets = buildProductionAssets(proj.Title)

	s.logger.Info("production package created", "project_id", proj.ID, "assets", len(proj.ProductionAssets))
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
