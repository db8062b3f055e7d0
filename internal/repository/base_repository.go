package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"gorm.io/gorm"
)

var baseSortableFields = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// BaseRepository handles base package data access
type BaseRepository struct {
	db *gorm.DB
}

// NewBaseRepository creates a new base repository instance
func NewBaseRepository(db *gorm.DB) *BaseRepository {
	return &BaseRepository{db: db}
}

// List returns all bases, by name unless sort names another field
func (r *BaseRepository) List(ctx context.Context, sort SortConfig, activeOnly bool) ([]domain.Base, error) {
	var bases []domain.Base
	query := r.db.WithContext(ctx).Model(&domain.Base{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order(BuildOrderClause(sort, baseSortableFields, "name ASC")).Find(&bases).Error
	return bases, err
}

// GetByID retrieves a base by its ID
func (r *BaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Base, error) {
	var base domain.Base
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&base).Error; err != nil {
		return nil, err
	}
	return &base, nil
}

// Create inserts a new base
func (r *BaseRepository) Create(ctx context.Context, base *domain.Base) error {
	return r.db.WithContext(ctx).Create(base).Error
}

// Update saves all fields of an existing base
func (r *BaseRepository) Update(ctx context.Context, base *domain.Base) error {
	return r.db.WithContext(ctx).Save(base).Error
}
