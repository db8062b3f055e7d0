package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/mapper"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService manages bases and services
type CatalogService struct {
	baseRepo    *repository.BaseRepository
	serviceRepo *repository.ServiceRepository
	logger      *zap.Logger
}

func NewCatalogService(
	baseRepo *repository.BaseRepository,
	serviceRepo *repository.ServiceRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		baseRepo:    baseRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListBases returns bases ordered by name, optionally only active ones
func (s *CatalogService) ListBases(ctx context.Context, sort repository.SortConfig, activeOnly bool) ([]domain.BaseDTO, error) {
	bases, err := s.baseRepo.List(ctx, sort, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list bases: %w", err)
	}

	dtos := make([]domain.BaseDTO, len(bases))
	for i := range bases {
		dtos[i] = mapper.ToBaseDTO(&bases[i])
	}
	return dtos, nil
}

func (s *CatalogService) GetBase(ctx context.Context, id uuid.UUID) (*domain.BaseDTO, error) {
	base, err := s.baseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBaseNotFound
		}
		return nil, fmt.Errorf("failed to get base: %w", err)
	}
	dto := mapper.ToBaseDTO(base)
	return &dto, nil
}

// CreateBase adds a base; new bases are active unless the request says otherwise
func (s *CatalogService) CreateBase(ctx context.Context, req *domain.CreateBaseRequest) (*domain.BaseDTO, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	base := &domain.Base{
		Name:     req.Name,
		Price:    req.Price,
		IsActive: true,
	}
	if req.IsActive != nil {
		base.IsActive = *req.IsActive
	}

	if err := s.baseRepo.Create(ctx, base); err != nil {
		return nil, fmt.Errorf("failed to create base: %w", err)
	}

	s.logger.Info("base created", zap.String("base_id", base.ID.String()), zap.String("name", base.Name))
	dto := mapper.ToBaseDTO(base)
	return &dto, nil
}

func (s *CatalogService) UpdateBase(ctx context.Context, id uuid.UUID, req *domain.UpdateBaseRequest) (*domain.BaseDTO, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	base, err := s.baseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBaseNotFound
		}
		return nil, fmt.Errorf("failed to get base: %w", err)
	}

	base.Name = req.Name
	base.Price = req.Price
	if req.IsActive != nil {
		base.IsActive = *req.IsActive
	}

	if err := s.baseRepo.Update(ctx, base); err != nil {
		return nil, fmt.Errorf("failed to update base: %w", err)
	}

	dto := mapper.ToBaseDTO(base)
	return &dto, nil
}

// ListServices returns services ordered by category then name
func (s *CatalogService) ListServices(ctx context.Context, sort repository.SortConfig, category *domain.ServiceCategory) ([]domain.ServiceDTO, error) {
	if category != nil && !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	services, err := s.serviceRepo.List(ctx, sort, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	dtos := make([]domain.ServiceDTO, len(services))
	for i := range services {
		dtos[i] = mapper.ToServiceDTO(&services[i])
	}
	return dtos, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceDTO, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	dto := mapper.ToServiceDTO(svc)
	return &dto, nil
}

// CreateService adds a catalog service. The multiplier is derived from the unit on save.
func (s *CatalogService) CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.ServiceDTO, error) {
	if !req.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	svc := &domain.Service{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Unit:     req.Unit,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.logger.Info("service created",
		zap.String("service_id", svc.ID.String()),
		zap.String("name", svc.Name),
		zap.Int("multiplier", svc.Multiplier))
	dto := mapper.ToServiceDTO(svc)
	return &dto, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, req *domain.UpdateServiceRequest) (*domain.ServiceDTO, error) {
	if !req.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	svc.Name = req.Name
	svc.Price = req.Price
	svc.Category = req.Category
	svc.Unit = req.Unit

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	dto := mapper.ToServiceDTO(svc)
	return &dto, nil
}
