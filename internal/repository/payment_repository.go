package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"gorm.io/gorm"
)

// PaymentFilters defines filter options for payment listing
type PaymentFilters struct {
	ProjectID     *uuid.UUID
	PaymentMethod *domain.PaymentMethod
}

var paymentSortableFields = map[string]string{
	"createdAt":     "created_at",
	"amount":        "amount",
	"paymentMethod": "payment_method",
}

// PaymentRepository handles payment data access. Payments are append-only.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create appends a payment
func (r *PaymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error {
	return r.conn(tx).WithContext(ctx).Create(payment).Error
}

// ListByProject returns a project's payments in insertion order
func (r *PaymentRepository) ListByProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.conn(tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

// List returns a page of payments, newest first by default
func (r *PaymentRepository) List(ctx context.Context, page, pageSize int, filters *PaymentFilters, sort SortConfig) ([]domain.Payment, int64, error) {
	var payments []domain.Payment
	var total int64

	page, pageSize = normalizePage(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Payment{})
	if filters != nil {
		if filters.ProjectID != nil {
			query = query.Where("project_id = ?", *filters.ProjectID)
		}
		if filters.PaymentMethod != nil {
			query = query.Where("payment_method = ?", *filters.PaymentMethod)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order(BuildOrderClause(sort, paymentSortableFields, "created_at DESC")).
		Offset(offset).
		Limit(pageSize).
		Find(&payments).Error

	return payments, total, err
}
