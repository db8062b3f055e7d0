package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/mapper"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PropertyService manages properties and their unit types
type PropertyService struct {
	propertyRepo *repository.PropertyRepository
	unitRepo     *repository.UnitRepository
	logger       *zap.Logger
}

func NewPropertyService(
	propertyRepo *repository.PropertyRepository,
	unitRepo *repository.UnitRepository,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		logger:       logger,
	}
}

func (s *PropertyService) List(ctx context.Context, sort repository.SortConfig) ([]domain.PropertyDTO, error) {
	properties, err := s.propertyRepo.List(ctx, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	dtos := make([]domain.PropertyDTO, len(properties))
	for i := range properties {
		dtos[i] = mapper.ToPropertyDTO(&properties[i])
	}
	return dtos, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PropertyDTO, error) {
	property, err := s.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToPropertyDTO(property)
	return &dto, nil
}

// Create adds a property with an optional initial set of unit types
func (s *PropertyService) Create(ctx context.Context, req *domain.CreatePropertyRequest) (*domain.PropertyDTO, error) {
	property := &domain.Property{
		Name:           req.Name,
		Address:        req.Address,
		AdditionalInfo: req.AdditionalInfo,
	}

	seen := make(map[string]bool, len(req.Units))
	for _, u := range req.Units {
		code := strings.TrimSpace(u.Code)
		if seen[code] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnitCode, code)
		}
		seen[code] = true
		property.Units = append(property.Units, unitFromRequest(&u))
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.logger.Info("property created",
		zap.String("property_id", property.ID.String()),
		zap.String("name", property.Name),
		zap.Int("units", len(property.Units)))
	dto := mapper.ToPropertyDTO(property)
	return &dto, nil
}

// Update changes the property's own fields; its units are left untouched
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdatePropertyRequest) (*domain.PropertyDTO, error) {
	property, err := s.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	property.Name = req.Name
	property.Address = req.Address
	property.AdditionalInfo = req.AdditionalInfo

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	dto := mapper.ToPropertyDTO(property)
	return &dto, nil
}

func (s *PropertyService) ListUnits(ctx context.Context, propertyID uuid.UUID, sort repository.SortConfig) ([]domain.UnitTypeDTO, error) {
	if _, err := s.getProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	units, err := s.unitRepo.ListByProperty(ctx, propertyID, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	dtos := make([]domain.UnitTypeDTO, len(units))
	for i := range units {
		dtos[i] = mapper.ToUnitTypeDTO(&units[i])
	}
	return dtos, nil
}

// CreateUnit appends a unit type to a property. Codes are unique per property.
func (s *PropertyService) CreateUnit(ctx context.Context, propertyID uuid.UUID, req *domain.CreateUnitTypeRequest) (*domain.UnitTypeDTO, error) {
	if _, err := s.getProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	unit := unitFromRequest(req)
	unit.PropertyID = propertyID
	if err := s.ensureCodeAvailable(ctx, propertyID, unit.Code, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Create(ctx, &unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}

	dto := mapper.ToUnitTypeDTO(&unit)
	return &dto, nil
}

func (s *PropertyService) UpdateUnit(ctx context.Context, propertyID, unitID uuid.UUID, req *domain.UpdateUnitTypeRequest) (*domain.UnitTypeDTO, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit.PropertyID != propertyID {
		return nil, ErrUnitNotFound
	}

	updated := unitFromRequest(req)
	if updated.Code != unit.Code {
		if err := s.ensureCodeAvailable(ctx, propertyID, updated.Code, unit.ID); err != nil {
			return nil, err
		}
	}

	unit.Code = updated.Code
	unit.BasePrice = updated.BasePrice
	unit.SquareFeet = updated.SquareFeet
	unit.Bedrooms = updated.Bedrooms
	unit.Bathrooms = updated.Bathrooms
	unit.HasBalcony = updated.HasBalcony
	unit.HasCurtains = updated.HasCurtains

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}

	dto := mapper.ToUnitTypeDTO(unit)
	return &dto, nil
}

func (s *PropertyService) getProperty(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) ensureCodeAvailable(ctx context.Context, propertyID uuid.UUID, code string, self uuid.UUID) error {
	existing, err := s.unitRepo.GetByCode(ctx, propertyID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check unit code: %w", err)
	}
	if existing.ID != self {
		return fmt.Errorf("%w: %s", ErrDuplicateUnitCode, code)
	}
	return nil
}

func unitFromRequest(req *domain.CreateUnitTypeRequest) domain.UnitType {
	return domain.UnitType{
		Code:        strings.TrimSpace(req.Code),
		BasePrice:   req.BasePrice,
		SquareFeet:  req.SquareFeet,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		HasBalcony:  req.HasBalcony,
		HasCurtains: req.HasCurtains,
	}
}
