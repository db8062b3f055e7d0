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
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService records payments and keeps each project's payment status in step with them
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		projectRepo: projectRepo,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Record appends a payment and writes the derived payment status in the same
// transaction. There is no upper bound, so overpayment is accepted.
func (s *PaymentService) Record(ctx context.Context, req *domain.CreatePaymentRequest) (*domain.RecordPaymentResult, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !req.PaymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	payment := &domain.Payment{
		ProjectID:       req.ProjectID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}

	var balance ledger.Balance
	err := s.projectRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		project, err := s.projectRepo.LockByID(ctx, tx, req.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to get project: %w", err)
		}

		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		payments, err := s.paymentRepo.ListByProject(ctx, tx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}

		balance = ledger.Summarize(project.Total, payments)
		paymentDate := nextPaymentDate(project.PaymentDate, balance.Status, payment.CreatedAt)
		if err := s.projectRepo.UpdatePaymentStatus(ctx, tx, project.ID, balance.Status, paymentDate); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("project_id", req.ProjectID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("payment_status", string(balance.Status)))

	return &domain.RecordPaymentResult{
		Payment: mapper.ToPaymentDTO(payment),
		Balance: mapper.ToBalanceDTO(req.ProjectID, balance),
	}, nil
}

// Balance returns the ledger view of a project
func (s *PaymentService) Balance(ctx context.Context, projectID uuid.UUID) (*domain.BalanceDTO, error) {
	project, err := s.projectRepo.FindByID(ctx, nil, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	payments, err := s.paymentRepo.ListByProject(ctx, nil, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	dto := mapper.ToBalanceDTO(projectID, ledger.Summarize(project.Total, payments))
	return &dto, nil
}

// List returns a page of payments
func (s *PaymentService) List(ctx context.Context, page, pageSize int, filters *repository.PaymentFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	if filters != nil && filters.PaymentMethod != nil && !filters.PaymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
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

	payments, total, err := s.paymentRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	dtos := make([]domain.PaymentDTO, len(payments))
	for i := range payments {
		dtos[i] = mapper.ToPaymentDTO(&payments[i])
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

// Reconcile derives the payment status of every project again and writes the
// ones that drifted. It returns how many projects were corrected.
func (s *PaymentService) Reconcile(ctx context.Context) (int, error) {
	projects, err := s.projectRepo.ListAll(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list projects: %w", err)
	}

	fixed := 0
	for i := range projects {
		if err := ctx.Err(); err != nil {
			return fixed, err
		}

		p := &projects[i]
		status := ledger.Summarize(p.Total, p.Payments).Status
		paymentDate := nextPaymentDate(p.PaymentDate, status, lastPaymentAt(p.Payments, s.now()))
		if status == p.PaymentStatus && sameDate(paymentDate, p.PaymentDate) {
			continue
		}

		if err := s.projectRepo.UpdatePaymentStatus(ctx, nil, p.ID, status, paymentDate); err != nil {
			return fixed, fmt.Errorf("failed to update payment status for %s: %w", p.ID, err)
		}
		s.logger.Warn("payment status corrected",
			zap.String("project_id", p.ID.String()),
			zap.String("from", string(p.PaymentStatus)),
			zap.String("to", string(status)))
		fixed++
	}
	return fixed, nil
}

// nextPaymentDate keeps an existing payment date while the project stays paid,
// stamps at the first time it becomes paid and clears it otherwise.
func nextPaymentDate(current *time.Time, status domain.PaymentStatus, at time.Time) *time.Time {
	if status != domain.PaymentStatusPaid {
		return nil
	}
	if current != nil {
		return current
	}
	at = at.UTC()
	return &at
}

func lastPaymentAt(payments []domain.Payment, fallback time.Time) time.Time {
	if len(payments) == 0 {
		return fallback
	}
	return payments[len(payments)-1].CreatedAt
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
