package ledger_test

import (
	"testing"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func payments(amounts ...int64) []domain.Payment {
	out := make([]domain.Payment, len(amounts))
	for i, a := range amounts {
		out[i] = domain.Payment{Amount: decimal.NewFromInt(a), PaymentMethod: domain.PaymentMethodCash}
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		payments      []domain.Payment
		wantPaid      int64
		wantRemaining int64
		wantStatus    domain.PaymentStatus
	}{
		{
			name:          "no payments is pending",
			total:         1000,
			wantPaid:      0,
			wantRemaining: 1000,
			wantStatus:    domain.PaymentStatusPending,
		},
		{
			name:          "two partial payments",
			total:         1000,
			payments:      payments(300, 300),
			wantPaid:      600,
			wantRemaining: 400,
			wantStatus:    domain.PaymentStatusPartial,
		},
		{
			name:          "exactly settled",
			total:         1000,
			payments:      payments(400, 600),
			wantPaid:      1000,
			wantRemaining: 0,
			wantStatus:    domain.PaymentStatusPaid,
		},
		{
			name:          "overpaid stays paid with negative remaining",
			total:         1000,
			payments:      payments(1200),
			wantPaid:      1200,
			wantRemaining: -200,
			wantStatus:    domain.PaymentStatusPaid,
		},
		{
			name:          "zero total with no payments is pending",
			total:         0,
			wantPaid:      0,
			wantRemaining: 0,
			wantStatus:    domain.PaymentStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ledger.Summarize(decimal.NewFromInt(tt.total), tt.payments)
			assert.True(t, decimal.NewFromInt(tt.wantPaid).Equal(b.AmountPaid), "paid: %s", b.AmountPaid)
			assert.True(t, decimal.NewFromInt(tt.wantRemaining).Equal(b.AmountRemaining), "remaining: %s", b.AmountRemaining)
			assert.Equal(t, tt.wantStatus, b.Status)
		})
	}
}

func TestBalance_SuggestedAmount(t *testing.T) {
	partial := ledger.Summarize(decimal.NewFromInt(1000), payments(250))
	assert.True(t, decimal.NewFromInt(750).Equal(partial.SuggestedAmount()))

	overpaid := ledger.Summarize(decimal.NewFromInt(100), payments(150))
	assert.True(t, overpaid.SuggestedAmount().IsZero())
}

func TestClassify_FractionalAmounts(t *testing.T) {
	total := decimal.RequireFromString("99.99")

	assert.Equal(t, domain.PaymentStatusPartial, ledger.Classify(total, decimal.RequireFromString("99.98")))
	assert.Equal(t, domain.PaymentStatusPaid, ledger.Classify(total, decimal.RequireFromString("99.99")))
	assert.Equal(t, domain.PaymentStatusPending, ledger.Classify(total, decimal.Zero))
}
