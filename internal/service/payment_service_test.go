package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"github.com/mrqz-remodeling/console-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pay(projectID uuid.UUID, amount int64) *domain.CreatePaymentRequest {
	return &domain.CreatePaymentRequest{
		ProjectID:     projectID,
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: domain.PaymentMethodTransfer,
	}
}

func TestPaymentService_RecordMovesThroughStatuses(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	base := testutil.CreateBase(t, s.db, "Turnover", 1000)
	project := testutil.CreateProject(t, s.db, "Cherry Creek", "101", base, nil, 0)

	first, err := s.payment.Record(ctx, pay(project.ID, 400))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPartial, first.Balance.Status)
	assert.True(t, decimal.NewFromInt(600).Equal(first.Balance.AmountRemaining))
	assert.True(t, decimal.NewFromInt(600).Equal(first.Balance.SuggestedAmount))
	assert.Equal(t, project.ID, first.Payment.ProjectID)

	partial, err := s.project.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPartial, partial.PaymentStatus)
	assert.Empty(t, partial.PaymentDate)

	second, err := s.payment.Record(ctx, pay(project.ID, 600))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, second.Balance.Status)
	assert.True(t, second.Balance.AmountRemaining.IsZero())

	paid, err := s.project.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, domain.ProjectStatusDraft, paid.Status, "workflow status is never set by payments")
	require.NotEmpty(t, paid.PaymentDate)

	over, err := s.payment.Record(ctx, pay(project.ID, 50))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, over.Balance.Status)
	assert.True(t, decimal.NewFromInt(-50).Equal(over.Balance.AmountRemaining))
	assert.True(t, over.Balance.SuggestedAmount.IsZero())

	still, err := s.project.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, paid.PaymentDate, still.PaymentDate, "first paid date is kept")
	assert.Len(t, still.Payments, 3)
}

func TestPaymentService_RecordValidation(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, s.db, "Cherry Creek", "101", nil, nil, 1)

	_, err := s.payment.Record(ctx, pay(project.ID, 0))
	assert.ErrorIs(t, err, service.ErrInvalidAmount)

	req := pay(project.ID, 10)
	req.PaymentMethod = "bitcoin"
	_, err = s.payment.Record(ctx, req)
	assert.ErrorIs(t, err, service.ErrInvalidPaymentMethod)

	_, err = s.payment.Record(ctx, pay(uuid.New(), 10))
	assert.ErrorIs(t, err, service.ErrProjectNotFound)

	var count int64
	require.NoError(t, s.db.Model(&domain.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentService_Balance(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	project := testutil.CreateProject(t, s.db, "Cherry Creek", "101", nil, nil, 5)

	balance, err := s.payment.Balance(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, balance.Status)
	assert.True(t, decimal.NewFromInt(50).Equal(balance.Total))
	assert.True(t, balance.AmountPaid.IsZero())

	_, err = s.payment.Balance(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestPaymentService_List(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	a := testutil.CreateProject(t, s.db, "Cherry Creek", "101", nil, nil, 5)
	b := testutil.CreateProject(t, s.db, "Highlands", "7", nil, nil, 5)
	testutil.AddPayment(t, s.db, a.ID, "10", domain.PaymentMethodCash)
	testutil.AddPayment(t, s.db, a.ID, "15", domain.PaymentMethodCheck)
	testutil.AddPayment(t, s.db, b.ID, "20", domain.PaymentMethodCash)

	all, err := s.payment.List(ctx, 1, 50, nil, repository.SortConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	forA, err := s.payment.List(ctx, 1, 50, &repository.PaymentFilters{ProjectID: &a.ID}, repository.SortConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), forA.Total)

	bad := domain.PaymentMethod("bitcoin")
	_, err = s.payment.List(ctx, 1, 50, &repository.PaymentFilters{PaymentMethod: &bad}, repository.SortConfig{})
	assert.ErrorIs(t, err, service.ErrInvalidPaymentMethod)
}

func TestPaymentService_ReconcileFixesDrift(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	base := testutil.CreateBase(t, s.db, "Turnover", 100)

	drifted := testutil.CreateProject(t, s.db, "Cherry Creek", "101", base, nil, 0)
	testutil.AddPayment(t, s.db, drifted.ID, "100", domain.PaymentMethodCash)
	inSync := testutil.CreateProject(t, s.db, "Highlands", "7", base, nil, 0)

	fixed, err := s.payment.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)

	got, err := s.project.GetByID(ctx, drifted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
	assert.NotEmpty(t, got.PaymentDate)

	untouched, err := s.project.GetByID(ctx, inSync.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, untouched.PaymentStatus)

	again, err := s.payment.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}
