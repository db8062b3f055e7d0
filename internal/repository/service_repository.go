package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"gorm.io/gorm"
)

var serviceSortableFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"category":  "category",
	"unit":      "unit",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ServiceRepository handles catalog service data access
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// List returns services grouped by category then name, optionally restricted to one category
func (r *ServiceRepository) List(ctx context.Context, sort SortConfig, category *domain.ServiceCategory) ([]domain.Service, error) {
	var services []domain.Service
	query := r.db.WithContext(ctx).Model(&domain.Service{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	err := query.Order(BuildOrderClause(sort, serviceSortableFields, "category ASC, name ASC")).Find(&services).Error
	return services, err
}

// GetByID retrieves a service by its ID
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var service domain.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// GetByIDs returns the services with the given IDs keyed by ID; missing IDs are absent
func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Service, error) {
	result := make(map[uuid.UUID]domain.Service, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var services []domain.Service
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	for _, s := range services {
		result[s.ID] = s
	}
	return result, nil
}

// Create inserts a new service; the multiplier is derived from the unit by the model hook
func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// Update saves all fields of an existing service
func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}
