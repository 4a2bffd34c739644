package project

import (
	"context"
	"strings"
	"time"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/entity"
	"joinerpro/internal/core/id"
	"joinerpro/internal/core/types"
	"joinerpro/pkg/logger"
)

// CreateRequest carries validated input for project creation.
type CreateRequest struct {
	Name         string
	Description  *string
	ClientID     id.ID
	TotalValue   types.Money
	DeliveryDays int // 0 means default window
}

// UpdateRequest carries partial-update input. Nil fields are left unchanged.
type UpdateRequest struct {
	Name         *string
	Description  *string
	ClientID     *id.ID
	Status       *Status
	TotalValue   *types.Money
	DeliveryDays *int
}

// AddMaterialRequest carries input for a new BOM line.
type AddMaterialRequest struct {
	StockItemID id.ID
	Quantity    types.Quantity
}

// Service implements project business operations.
type Service struct {
	projects  Repository
	materials MaterialRepository
	clients   ClientDirectory
	stock     StockDirectory
	audit     Auditor

	now func() time.Time
}

// NewService creates a project service.
func NewService(projects Repository, materials MaterialRepository, clients ClientDirectory, stock StockDirectory, audit Auditor) *Service {
	return &Service{
		projects:  projects,
		materials: materials,
		clients:   clients,
		stock:     stock,
		audit:     audit,
		now:       time.Now,
	}
}

// Create registers a new project in the quote state.
// Unknown client is a validation error, not a 404.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := s.ensureClientExists(ctx, req.ClientID); err != nil {
		return nil, err
	}

	days := req.DeliveryDays
	if days == 0 {
		days = DefaultDeliveryDays
	}

	p := &Project{
		Base:         entity.NewBase(),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		ClientID:     req.ClientID,
		Status:       StatusQuote,
		TotalValue:   req.TotalValue,
		DeliveryDays: days,
	}
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info(ctx, "project created", "project_id", p.ID, "client_id", p.ClientID)
	return p, nil
}

// Get returns the project with client name and derived deadline.
func (s *Service) Get(ctx context.Context, projectID id.ID) (*Detail, error) {
	p, err := s.projects.GetWithClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Detail{WithClient: *p, Deadline: p.DeadlineStatus(s.now().UTC())}, nil
}

// List returns all projects with client names and derived deadlines.
func (s *Service) List(ctx context.Context) ([]Detail, error) {
	rows, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := make([]Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, Detail{WithClient: row, Deadline: row.DeadlineStatus(now)})
	}
	return out, nil
}

// Update applies a partial update. The first transition into
// in_production stamps ProductionStartedAt; the stamp is never
// overwritten on later transitions.
func (s *Service) Update(ctx context.Context, projectID id.ID, req UpdateRequest) (*Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.ClientID != nil {
		if err := s.ensureClientExists(ctx, *req.ClientID); err != nil {
			return nil, err
		}
		p.ClientID = *req.ClientID
	}
	if req.TotalValue != nil {
		p.TotalValue = *req.TotalValue
	}
	if req.DeliveryDays != nil {
		p.DeliveryDays = *req.DeliveryDays
	}

	productionStarted := false
	if req.Status != nil {
		if *req.Status == StatusInProduction && p.Status != StatusInProduction && p.ProductionStartedAt == nil {
			started := s.now().UTC()
			p.ProductionStartedAt = &started
			productionStarted = true
		}
		p.Status = *req.Status
	}

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	p.Touch()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	if productionStarted {
		logger.Info(ctx, "production started", "project_id", p.ID)
		if err := s.audit.Record(ctx, "production_started", "project", p.ID.String(), p); err != nil {
			logger.Warn(ctx, "audit record failed", "error", err)
		}
	}

	return p, nil
}

// Delete removes a project. Blocked with a 409 while BOM lines or
// receivables reference it.
func (s *Service) Delete(ctx context.Context, projectID id.ID) error {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	logger.Info(ctx, "project deleted", "project_id", projectID)
	return nil
}

// --- Bill of materials ---

// ListMaterials returns the project's BOM hydrated with live stock data.
func (s *Service) ListMaterials(ctx context.Context, projectID id.ID) ([]MaterialLine, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.materials.ListByProject(ctx, projectID)
}

// AddMaterial appends a BOM line. Unknown project or stock item is a
// validation error.
func (s *Service) AddMaterial(ctx context.Context, projectID id.ID, req AddMaterialRequest) (*Material, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("project does not exist").
				WithDetail("projectId", projectID.String())
		}
		return nil, err
	}

	ok, err := s.stock.Exists(ctx, req.StockItemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewValidation("stock item does not exist").
			WithDetail("stockItemId", req.StockItemID.String())
	}

	m := &Material{
		Base:         entity.NewBase(),
		ProjectID:    projectID,
		StockItemID:  req.StockItemID,
		QuantityUsed: req.Quantity,
	}
	if err := m.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.Info(ctx, "material added", "project_id", projectID, "stock_item_id", req.StockItemID)
	return m, nil
}

// RemoveMaterial deletes a BOM line, checking it belongs to the project.
func (s *Service) RemoveMaterial(ctx context.Context, projectID, materialID id.ID) error {
	m, err := s.materials.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	if m.ProjectID != projectID {
		return apperror.NewNotFound("project material", materialID.String())
	}
	if err := s.materials.Delete(ctx, materialID); err != nil {
		return err
	}
	logger.Info(ctx, "material removed", "project_id", projectID, "material_id", materialID)
	return nil
}

// TotalCost computes the live BOM rollup: sum of quantity_used x
// current unit cost across all lines. Unit costs are read live, so a
// price change moves the rollup on the next read.
func (s *Service) TotalCost(ctx context.Context, projectID id.ID) (*CostSummary, error) {
	lines, err := s.ListMaterials(ctx, projectID)
	if err != nil {
		return nil, err
	}

	total := types.Zero()
	for i := range lines {
		total = total.Add(lines[i].LineCost())
	}

	return &CostSummary{ProjectID: projectID, Lines: len(lines), TotalCost: total}, nil
}

func (s *Service) ensureClientExists(ctx context.Context, clientID id.ID) error {
	if id.IsNil(clientID) {
		return apperror.NewValidation("client is required")
	}
	ok, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("client does not exist").
			WithDetail("clientId", clientID.String())
	}
	return nil
}
