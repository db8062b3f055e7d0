package report_test

import (
	"testing"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func serviceItem(name string, price int64, multiplier int) domain.QuotationItem {
	return domain.QuotationItem{Type: domain.ItemTypeService, Name: name, Price: d(price), Multiplier: multiplier}
}

func project(property string, total int64, status domain.PaymentStatus, items ...domain.QuotationItem) domain.Project {
	return domain.Project{
		PropertyName:  property,
		Total:         d(total),
		PaymentStatus: status,
		Items:         items,
	}
}

func TestBuild_Empty(t *testing.T) {
	s := report.Build(nil)

	assert.Equal(t, 0, s.TotalProjects)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.TotalPaid.IsZero())
	assert.True(t, s.TotalPending.IsZero())
	assert.True(t, s.AverageProjectValue.IsZero())
	assert.Empty(t, s.Properties)
	assert.Empty(t, s.TopServices)
	assert.NotNil(t, s.Properties)
	assert.NotNil(t, s.TopServices)
}

func TestBuild_Totals(t *testing.T) {
	projects := []domain.Project{
		project("Cherry Creek", 1000, domain.PaymentStatusPaid),
		project("Cherry Creek", 500, domain.PaymentStatusPartial),
		project("Highlands", 250, domain.PaymentStatusPending),
	}

	s := report.Build(projects)

	assert.Equal(t, 3, s.TotalProjects)
	assert.True(t, d(1750).Equal(s.TotalRevenue))
	assert.True(t, d(1000).Equal(s.TotalPaid))
	assert.True(t, d(750).Equal(s.TotalPending))
	assert.True(t, decimal.RequireFromString("583.33").Equal(s.AverageProjectValue.Round(2)))
	assert.False(t, s.AverageProjectValue.Equal(s.AverageProjectValueRounded()), "aggregate stays unrounded")
	assert.True(t, d(583).Equal(s.AverageProjectValueRounded()))
}

func TestBuild_PropertyStatsFirstOccurrenceOrder(t *testing.T) {
	paid := project("Zeta", 300, domain.PaymentStatusPartial)
	paid.Payments = []domain.Payment{{Amount: d(120)}, {Amount: d(30)}}

	projects := []domain.Project{
		paid,
		project("", 100, domain.PaymentStatusPending),
		project("Alpha", 200, domain.PaymentStatusPending),
		project("Zeta", 700, domain.PaymentStatusPending),
	}

	s := report.Build(projects)

	require.Len(t, s.Properties, 3)
	assert.Equal(t, "Zeta", s.Properties[0].PropertyName)
	assert.Equal(t, report.UnknownProperty, s.Properties[1].PropertyName)
	assert.Equal(t, "Alpha", s.Properties[2].PropertyName)

	zeta := s.Properties[0]
	assert.Equal(t, 2, zeta.Count)
	assert.True(t, d(1000).Equal(zeta.Revenue))
	assert.True(t, d(800).Equal(zeta.EstimatedPaid))
	assert.True(t, d(150).Equal(zeta.Collected))
}

func TestBuild_ServiceStats(t *testing.T) {
	projects := []domain.Project{
		project("A", 0, domain.PaymentStatusPending,
			domain.QuotationItem{Type: domain.ItemTypeBase, Name: "Base", Price: d(500)},
			serviceItem("Paint", 100, 2),
			serviceItem("Clean", 50, 0),
		),
		project("B", 0, domain.PaymentStatusPending,
			serviceItem("Paint", 100, 1),
		),
	}

	s := report.Build(projects)

	require.Len(t, s.TopServices, 2)
	assert.Equal(t, "Paint", s.TopServices[0].Name)
	assert.Equal(t, 2, s.TopServices[0].Count)
	assert.True(t, d(300).Equal(s.TopServices[0].Revenue))
	assert.Equal(t, int64(100), s.TopServices[0].UsagePercent)

	assert.Equal(t, "Clean", s.TopServices[1].Name)
	assert.Equal(t, 1, s.TopServices[1].Count)
	assert.True(t, d(50).Equal(s.TopServices[1].Revenue), "unset multiplier counts as 1")
	assert.Equal(t, int64(50), s.TopServices[1].UsagePercent)
}

func TestBuild_TopFiveWithAlphabeticalTieBreak(t *testing.T) {
	items := []domain.QuotationItem{
		serviceItem("Golf", 1, 1),
		serviceItem("Echo", 1, 1),
		serviceItem("Delta", 1, 1),
		serviceItem("Charlie", 1, 1),
		serviceItem("Foxtrot", 1, 1),
		serviceItem("Bravo", 1, 1),
		serviceItem("Alpha", 1, 1),
		serviceItem("Alpha", 1, 1),
	}
	s := report.Build([]domain.Project{project("P", 0, domain.PaymentStatusPending, items...)})

	require.Len(t, s.TopServices, report.TopServiceLimit)
	names := make([]string, 0, len(s.TopServices))
	for _, st := range s.TopServices {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}, names)
}
