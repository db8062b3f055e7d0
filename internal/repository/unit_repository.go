package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"gorm.io/gorm"
)

var unitSortableFields = map[string]string{
	"code":       "code",
	"basePrice":  "base_price",
	"squareFeet": "square_feet",
	"bedrooms":   "bedrooms",
	"position":   "position",
}

// UnitRepository handles unit type data access
type UnitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository instance
func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// ListByProperty returns a property's units, in position order by default
func (r *UnitRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID, sort SortConfig) ([]domain.UnitType, error) {
	var units []domain.UnitType
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order(BuildOrderClause(sort, unitSortableFields, "position ASC, created_at ASC")).
		Find(&units).Error
	return units, err
}

// GetByID retrieves a unit type by its ID
func (r *UnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UnitType, error) {
	var unit domain.UnitType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetByCode finds a unit by its code within a property
func (r *UnitRepository) GetByCode(ctx context.Context, propertyID uuid.UUID, code string) (*domain.UnitType, error) {
	var unit domain.UnitType
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND code = ?", propertyID, code).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// Create appends a unit after the property's existing units
func (r *UnitRepository) Create(ctx context.Context, unit *domain.UnitType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition *int
		if err := tx.Model(&domain.UnitType{}).
			Where("property_id = ?", unit.PropertyID).
			Select("MAX(position)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		unit.Position = 0
		if maxPosition != nil {
			unit.Position = *maxPosition + 1
		}
		return tx.Create(unit).Error
	})
}

// Update saves all fields of an existing unit type
func (r *UnitRepository) Update(ctx context.Context, unit *domain.UnitType) error {
	return r.db.WithContext(ctx).Save(unit).Error
}
