package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"gorm.io/gorm"
)

var propertySortableFields = map[string]string{
	"name":      "name",
	"address":   "address",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// PropertyRepository handles property data access
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func preloadUnits(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

// List returns properties with their units in position order
func (r *PropertyRepository) List(ctx context.Context, sort SortConfig) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.WithContext(ctx).
		Preload("Units", preloadUnits).
		Order(BuildOrderClause(sort, propertySortableFields, "name ASC")).
		Find(&properties).Error
	return properties, err
}

// GetByID retrieves a property with its units
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	err := r.db.WithContext(ctx).
		Preload("Units", preloadUnits).
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Create inserts a property together with any units it carries.
// Unit positions follow slice order.
func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	for i := range property.Units {
		property.Units[i].Position = i
	}
	return r.db.WithContext(ctx).Create(property).Error
}

// Update saves the property's own fields; units are managed through UnitRepository
func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	return r.db.WithContext(ctx).
		Model(property).
		Select("name", "address", "additional_info", "updated_at").
		Updates(property).Error
}
