// Package ledger derives a project's paid amount, remaining balance and
// payment status from its recorded payments.
package ledger

import (
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Balance is the derived payment state of one project.
type Balance struct {
	Total           decimal.Decimal
	AmountPaid      decimal.Decimal
	AmountRemaining decimal.Decimal
	Status          domain.PaymentStatus
}

// SuggestedAmount is the pre-filled amount for the next payment. It never
// goes below zero, even when the project is overpaid.
func (b Balance) SuggestedAmount() decimal.Decimal {
	if b.AmountRemaining.IsNegative() {
		return decimal.Zero
	}
	return b.AmountRemaining
}

// Summarize folds payments into a Balance against total.
func Summarize(total decimal.Decimal, payments []domain.Payment) Balance {
	paid := AmountPaid(payments)
	return Balance{
		Total:           total,
		AmountPaid:      paid,
		AmountRemaining: total.Sub(paid),
		Status:          Classify(total, paid),
	}
}

// AmountPaid sums the payment amounts.
func AmountPaid(payments []domain.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// Classify maps paid-vs-total onto a payment status. Nothing paid is always
// pending, including for zero-total projects.
func Classify(total, paid decimal.Decimal) domain.PaymentStatus {
	switch {
	case !paid.IsPositive():
		return domain.PaymentStatusPending
	case paid.GreaterThanOrEqual(total):
		return domain.PaymentStatusPaid
	default:
		return domain.PaymentStatusPartial
	}
}
