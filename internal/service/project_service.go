package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/ledger"
	"github.com/mrqz-remodeling/console-api/internal/mapper"
	"github.com/mrqz-remodeling/console-api/internal/quotation"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectService builds quotations from the catalog and manages saved projects
type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	baseRepo     *repository.BaseRepository
	serviceRepo  *repository.ServiceRepository
	propertyRepo *repository.PropertyRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	baseRepo *repository.BaseRepository,
	serviceRepo *repository.ServiceRepository,
	propertyRepo *repository.PropertyRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		baseRepo:     baseRepo,
		serviceRepo:  serviceRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Preview prices a quotation without saving it
func (s *ProjectService) Preview(ctx context.Context, req *domain.QuotationRequest) (*domain.QuotationPreviewDTO, error) {
	b, err := s.builderFor(ctx, req)
	if err != nil {
		return nil, err
	}

	items := b.Items()
	return &domain.QuotationPreviewDTO{
		Items:            mapper.ToQuotationItemDTOs(items),
		BasePrice:        b.BasePrice(),
		ServicesTotal:    b.ServicesTotal(),
		ChangeOrders:     b.ChangeOrders(),
		ChangeOrderTotal: b.ChangeOrderTotal(),
		Total:            b.Total(),
	}, nil
}

// Create saves a quotation as a new draft project
func (s *ProjectService) Create(ctx context.Context, req *domain.QuotationRequest) (*domain.ProjectDTO, error) {
	b, err := s.builderFor(ctx, req)
	if err != nil {
		return nil, err
	}

	project := b.Project()
	project.ID = uuid.New()
	for i := range project.Items {
		project.Items[i].ProjectID = project.ID
	}
	project.Notes = req.Notes
	project.Date = s.now()
	if req.Date != nil {
		project.Date = req.Date.UTC()
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("property", project.PropertyName),
		zap.String("unit", project.UnitNumber),
		zap.String("total", project.Total.StringFixed(2)))

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// List returns a page of projects
func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters *repository.ProjectFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	if filters != nil {
		if filters.Status != nil && !filters.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if filters.PaymentStatus != nil && !filters.PaymentStatus.IsValid() {
			return nil, fmt.Errorf("%w: unknown payment status", ErrInvalidInput)
		}
	}

	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	projects, total, err := s.projectRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListDrafts returns the most recent drafts, newest first
func (s *ProjectService) ListDrafts(ctx context.Context, limit int) ([]domain.ProjectDTO, error) {
	drafts, err := s.projectRepo.ListDrafts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(drafts))
	for i := range drafts {
		dtos[i] = mapper.ToProjectDTO(&drafts[i])
	}
	return dtos, nil
}

// AddItem appends an empty service slot to a draft
func (s *ProjectService) AddItem(ctx context.Context, projectID uuid.UUID) (*domain.ProjectDTO, error) {
	return s.editItems(ctx, projectID, func(b *quotation.Builder) error {
		b.AddService()
		return nil
	})
}

// AssignItem fills a slot of a draft with a catalog service
func (s *ProjectService) AssignItem(ctx context.Context, projectID, itemID uuid.UUID, req *domain.AssignItemRequest) (*domain.ProjectDTO, error) {
	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return s.editItems(ctx, projectID, func(b *quotation.Builder) error {
		if !b.AssignService(itemID, svc) {
			return ErrItemNotFound
		}
		return nil
	})
}

// RemoveItem deletes a slot from a draft. Unknown slots are not an error.
func (s *ProjectService) RemoveItem(ctx context.Context, projectID, itemID uuid.UUID) (*domain.ProjectDTO, error) {
	return s.editItems(ctx, projectID, func(b *quotation.Builder) error {
		b.RemoveService(itemID)
		return nil
	})
}

// UpdateChangeOrders sets the change order count in any status. The total
// moves, so the payment status is derived again from the recorded payments.
func (s *ProjectService) UpdateChangeOrders(ctx context.Context, id uuid.UUID, changeOrders int) (*domain.ProjectDTO, error) {
	if changeOrders < 0 {
		return nil, fmt.Errorf("%w: change orders must not be negative", ErrInvalidInput)
	}

	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	b := quotation.FromProject(project)
	b.SetChangeOrders(changeOrders)
	project.ChangeOrders = b.ChangeOrders()
	project.ChangeOrderTotal = b.ChangeOrderTotal()
	project.Total = b.Total()

	balance := ledger.Summarize(project.Total, project.Payments)
	project.PaymentStatus = balance.Status
	project.PaymentDate = nextPaymentDate(project.PaymentDate, balance.Status, s.now())

	if err := s.projectRepo.Update(ctx, nil, project); err != nil {
		return nil, fmt.Errorf("failed to update change orders: %w", err)
	}

	s.logger.Info("change orders updated",
		zap.String("project_id", id.String()),
		zap.Int("change_orders", changeOrders),
		zap.String("payment_status", string(project.PaymentStatus)))

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// UpdateStatus sets the workflow status. Any transition is allowed.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (*domain.ProjectDTO, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if err := s.projectRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ProjectService) editItems(ctx context.Context, projectID uuid.UUID, edit func(b *quotation.Builder) error) (*domain.ProjectDTO, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectStatusDraft {
		return nil, ErrProjectNotDraft
	}

	b := quotation.FromProject(project)
	if err := edit(b); err != nil {
		return nil, err
	}
	b.Apply(project)

	// A draft may already carry payments, so the new total moves the payment status too
	balance := ledger.Summarize(project.Total, project.Payments)
	project.PaymentStatus = balance.Status
	project.PaymentDate = nextPaymentDate(project.PaymentDate, balance.Status, s.now())

	if err := s.projectRepo.ReplaceItems(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project items: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) getProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// builderFor resolves the catalog records named by req into a builder
func (s *ProjectService) builderFor(ctx context.Context, req *domain.QuotationRequest) (*quotation.Builder, error) {
	if req.ChangeOrders < 0 {
		return nil, fmt.Errorf("%w: change orders must not be negative", ErrInvalidInput)
	}

	b := quotation.New()

	if req.BaseID != nil {
		base, err := s.baseRepo.GetByID(ctx, *req.BaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBaseNotFound
			}
			return nil, fmt.Errorf("failed to get base: %w", err)
		}
		b.SetBase(base)
	}

	if req.PropertyID != nil {
		property, err := s.propertyRepo.GetByID(ctx, *req.PropertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPropertyNotFound
			}
			return nil, fmt.Errorf("failed to get property: %w", err)
		}

		var unit *domain.UnitType
		if req.UnitCode != "" {
			for i := range property.Units {
				if property.Units[i].Code == req.UnitCode {
					unit = &property.Units[i]
					break
				}
			}
			if unit == nil {
				return nil, ErrUnitNotFound
			}
		}
		b.SetUnit(property, unit, req.UnitNumber)
	} else if req.UnitNumber != "" {
		b.SetUnit(nil, nil, req.UnitNumber)
	}

	if len(req.ServiceIDs) > 0 {
		services, err := s.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to get services: %w", err)
		}
		for _, id := range req.ServiceIDs {
			svc, ok := services[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
			}
			b.SelectService(&svc)
		}
	}

	b.SetChangeOrders(req.ChangeOrders)
	return b, nil
}
