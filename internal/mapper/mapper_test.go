package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/mapper"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToProjectDTO_IncludesLedgerView(t *testing.T) {
	paidAt := time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)
	project := &domain.Project{
		PropertyName: "Cherry Creek",
		UnitNumber:   "101",
		Total:        decimal.NewFromInt(1000),
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:       domain.ProjectStatusSent,
		PaymentDate:  &paidAt,
		Items: []domain.QuotationItem{
			{Type: domain.ItemTypeService, Name: "Pintura", Price: decimal.NewFromInt(100), Multiplier: 3},
		},
		Payments: []domain.Payment{
			{Amount: decimal.NewFromInt(300)},
			{Amount: decimal.NewFromInt(300)},
		},
	}
	project.ID = uuid.New()

	dto := mapper.ToProjectDTO(project)

	assert.Equal(t, project.ID, dto.ID)
	assert.Equal(t, "2025-03-01T00:00:00Z", dto.Date)
	assert.Equal(t, "2025-03-04T15:00:00Z", dto.PaymentDate)
	assert.True(t, decimal.NewFromInt(600).Equal(dto.AmountPaid))
	assert.True(t, decimal.NewFromInt(400).Equal(dto.AmountRemaining))
	require.Len(t, dto.Items, 1)
	assert.True(t, decimal.NewFromInt(300).Equal(dto.Items[0].Amount))
	assert.Len(t, dto.Payments, 2)
}

func TestToProjectDTO_EmptyCollectionsAreNotNil(t *testing.T) {
	dto := mapper.ToProjectDTO(&domain.Project{})
	assert.NotNil(t, dto.Items)
	assert.NotNil(t, dto.Payments)
	assert.Empty(t, dto.PaymentDate)
}

func TestQuantityLabel(t *testing.T) {
	assert.Equal(t, "X3", mapper.QuantityLabel(&domain.QuotationItem{Multiplier: 3}))
	assert.Equal(t, "1", mapper.QuantityLabel(&domain.QuotationItem{Multiplier: 1}))
	assert.Equal(t, "1", mapper.QuantityLabel(&domain.QuotationItem{}))
}

func TestToPropertyDTO_PreservesUnitOrder(t *testing.T) {
	property := &domain.Property{
		Name: "Highlands",
		Units: []domain.UnitType{
			{Code: "B1"},
			{Code: "A1"},
		},
	}
	dto := mapper.ToPropertyDTO(property)
	require.Len(t, dto.Units, 2)
	assert.Equal(t, "B1", dto.Units[0].Code)
	assert.Equal(t, "A1", dto.Units[1].Code)
}
