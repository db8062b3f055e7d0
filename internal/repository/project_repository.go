package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectFilters defines filter options for project listing
type ProjectFilters struct {
	Status        *domain.ProjectStatus
	PaymentStatus *domain.PaymentStatus
	// Outstanding excludes projects whose status is paid
	Outstanding bool
	// Search matches unit number or property name, case-insensitively
	Search string
}

var projectSortableFields = map[string]string{
	"date":          "date",
	"total":         "total",
	"propertyName":  "property_name",
	"unitNumber":    "unit_number",
	"status":        "status",
	"paymentStatus": "payment_status",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

const projectDefaultOrder = "date DESC, created_at DESC"

// ProjectRepository handles project (persisted quotation) data access
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTransaction runs fn inside a database transaction
func (r *ProjectRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ProjectRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func withChildren(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func applyProjectFilters(query *gorm.DB, filters *ProjectFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filters.PaymentStatus)
	}
	if filters.Outstanding {
		query = query.Where("status <> ?", domain.ProjectStatusPaid)
	}
	if filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.Where(`(LOWER(unit_number) LIKE ? ESCAPE '\' OR LOWER(property_name) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return query
}

// Create inserts a project together with its items
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit("Payments").Create(project).Error
}

// GetByID retrieves a project with its items and payments
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := withChildren(r.db.WithContext(ctx)).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByID loads the project's own columns, without children, on tx when given
func (r *ProjectRepository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// LockByID is FindByID holding the row lock until tx ends, so concurrent
// payments derive the payment status one after another. sqlite ignores the lock.
func (r *ProjectRepository) LockByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns a page of projects with nested items and payments
func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, filters *ProjectFilters, sort SortConfig) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	page, pageSize = normalizePage(page, pageSize)

	query := applyProjectFilters(r.db.WithContext(ctx).Model(&domain.Project{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := withChildren(query).
		Order(BuildOrderClause(sort, projectSortableFields, projectDefaultOrder)).
		Offset(offset).
		Limit(pageSize).
		Find(&projects).Error

	return projects, total, err
}

// ListAll returns every project matching filters, with children, for reporting and export
func (r *ProjectRepository) ListAll(ctx context.Context, filters *ProjectFilters) ([]domain.Project, error) {
	var projects []domain.Project
	query := applyProjectFilters(r.db.WithContext(ctx).Model(&domain.Project{}), filters)
	err := withChildren(query).Order(projectDefaultOrder).Find(&projects).Error
	return projects, err
}

// ListDrafts returns draft projects, newest first
func (r *ProjectRepository) ListDrafts(ctx context.Context, limit int) ([]domain.Project, error) {
	var projects []domain.Project
	query := withChildren(r.db.WithContext(ctx)).
		Where("status = ?", domain.ProjectStatusDraft).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// Update saves the project's own columns, leaving items and payments untouched
func (r *ProjectRepository) Update(ctx context.Context, tx *gorm.DB, project *domain.Project) error {
	return r.conn(tx).WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// ReplaceItems swaps the project's items for project.Items and saves the derived totals
func (r *ProjectRepository) ReplaceItems(ctx context.Context, project *domain.Project) error {
	return r.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&domain.QuotationItem{}).Error; err != nil {
			return err
		}
		for i := range project.Items {
			project.Items[i].ProjectID = project.ID
		}
		if len(project.Items) > 0 {
			if err := tx.Create(&project.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(project).Error
	})
}

// UpdateStatus writes the workflow status
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	return r.updateColumns(ctx, nil, id, map[string]interface{}{"status": status})
}

// UpdateDocumentPath records where the last rendered PDF was stored
func (r *ProjectRepository) UpdateDocumentPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.updateColumns(ctx, nil, id, map[string]interface{}{"document_path": path})
}

// UpdatePaymentStatus writes the derived payment status and payment date
func (r *ProjectRepository) UpdatePaymentStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.PaymentStatus, paymentDate *time.Time) error {
	return r.updateColumns(ctx, tx, id, map[string]interface{}{
		"payment_status": status,
		"payment_date":   paymentDate,
	})
}

func (r *ProjectRepository) updateColumns(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	result := r.conn(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
