package quotation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/quotation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newService(name string, price int64, unit string) *domain.Service {
	svc := &domain.Service{
		Name:       name,
		Price:      dec(price),
		Category:   domain.ServiceCategoryFinishes,
		Unit:       unit,
		Multiplier: domain.ParseMultiplier(unit),
	}
	svc.ID = uuid.New()
	return svc
}

// sequentialIDs returns deterministic IDs so assertions can name them
func sequentialIDs() quotation.IDFunc {
	n := 0
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = byte(n)
		return id
	}
}

func TestBuilder_Total(t *testing.T) {
	base := &domain.Base{Name: "Turnover", Price: dec(500)}

	b := quotation.New()
	b.SetBase(base)
	b.SelectService(newService("Paint", 100, "X2"))
	b.SelectService(newService("Clean", 50, "Unidad"))
	b.SetChangeOrders(3)

	assert.True(t, dec(500).Equal(b.BasePrice()))
	assert.True(t, dec(250).Equal(b.ServicesTotal()), "services total: %s", b.ServicesTotal())
	assert.True(t, dec(30).Equal(b.ChangeOrderTotal()))
	assert.True(t, dec(780).Equal(b.Total()), "total: %s", b.Total())
}

func TestBuilder_MissingSelectionsContributeZero(t *testing.T) {
	tests := []struct {
		name         string
		base         *domain.Base
		services     []*domain.Service
		changeOrders int
		want         int64
	}{
		{name: "nothing selected", want: 0},
		{name: "base only", base: &domain.Base{Name: "B", Price: dec(400)}, want: 400},
		{name: "services only", services: []*domain.Service{newService("Tile", 30, "X3")}, want: 90},
		{name: "change orders only", changeOrders: 5, want: 50},
		{name: "negative change orders clamp to zero", changeOrders: -2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := quotation.New()
			b.SetBase(tt.base)
			for _, svc := range tt.services {
				b.SelectService(svc)
			}
			b.SetChangeOrders(tt.changeOrders)
			assert.True(t, dec(tt.want).Equal(b.Total()), "got %s", b.Total())
		})
	}
}

func TestBuilder_ItemsOrder(t *testing.T) {
	b := quotation.New(quotation.WithIDFunc(sequentialIDs()))
	b.SelectService(newService("First", 10, ""))
	b.SetBase(&domain.Base{Name: "Base", Price: dec(100)})
	b.SelectService(newService("Second", 20, ""))
	b.SetChangeOrders(2)

	items := b.Items()
	require.Len(t, items, 3, "change orders are not itemized")

	assert.Equal(t, domain.ItemTypeBase, items[0].Type)
	assert.Equal(t, "Base", items[0].Name)
	assert.Equal(t, domain.ItemTypeService, items[1].Type)
	assert.Equal(t, "First", items[1].Name)
	assert.Equal(t, "Second", items[2].Name)

	for i, item := range items {
		assert.Equal(t, i, item.Position)
	}
}

func TestBuilder_AddServiceCreatesEmptySlot(t *testing.T) {
	b := quotation.New()
	id := b.AddService()

	services := b.Services()
	require.Len(t, services, 1)
	assert.Equal(t, id, services[0].ID)
	assert.Empty(t, services[0].Name)
	assert.True(t, services[0].Price.IsZero())
	assert.Nil(t, services[0].ServiceID)
	assert.True(t, b.Total().IsZero())
}

func TestBuilder_AssignServicePreservesID(t *testing.T) {
	b := quotation.New()
	id := b.AddService()

	serviceA := newService("Paint", 100, "X2")
	serviceB := newService("Drywall", 75, "Metro")

	require.True(t, b.AssignService(id, serviceA))
	require.True(t, b.AssignService(id, serviceB))

	services := b.Services()
	require.Len(t, services, 1)
	assert.Equal(t, id, services[0].ID)
	assert.Equal(t, "Drywall", services[0].Name)
	assert.True(t, dec(75).Equal(services[0].Price))
	assert.Equal(t, 1, services[0].Multiplier)
	require.NotNil(t, services[0].ServiceID)
	assert.Equal(t, serviceB.ID, *services[0].ServiceID)
}

func TestBuilder_AssignUnknownID(t *testing.T) {
	b := quotation.New()
	b.AddService()

	assert.False(t, b.AssignService(uuid.New(), newService("Paint", 100, "")))
	assert.Empty(t, b.Services()[0].Name)
}

func TestBuilder_RemoveService(t *testing.T) {
	b := quotation.New()
	first := b.SelectService(newService("A", 10, ""))
	second := b.SelectService(newService("B", 20, ""))

	b.RemoveService(uuid.New())
	require.Len(t, b.Services(), 2, "unknown id is a no-op")

	b.RemoveService(first)
	services := b.Services()
	require.Len(t, services, 1)
	assert.Equal(t, second, services[0].ID)
	assert.True(t, dec(20).Equal(b.Total()))
}

func TestBuilder_ProjectAndFromProjectRoundTrip(t *testing.T) {
	base := &domain.Base{Name: "Base", Price: dec(500)}
	base.ID = uuid.New()
	property := &domain.Property{Name: "Cherry Creek"}
	property.ID = uuid.New()
	unit := &domain.UnitType{Code: "A1", SquareFeet: 750, Bedrooms: 1, Bathrooms: 1}
	unit.ID = uuid.New()

	b := quotation.New()
	b.SetBase(base)
	b.SetUnit(property, unit, "204")
	svcID := b.SelectService(newService("Paint", 100, "X2"))
	b.SetChangeOrders(1)

	project := b.Project()
	assert.Equal(t, domain.ProjectStatusDraft, project.Status)
	assert.Equal(t, domain.PaymentStatusPending, project.PaymentStatus)
	assert.Equal(t, "Cherry Creek", project.PropertyName)
	assert.Equal(t, "204", project.UnitNumber)
	assert.Equal(t, "A1", project.UnitType)
	assert.Equal(t, 750, project.SquareFeet)
	require.NotNil(t, project.BaseID)
	assert.Equal(t, base.ID, *project.BaseID)
	assert.True(t, dec(710).Equal(project.Total))
	assert.True(t, dec(10).Equal(project.ChangeOrderTotal))

	rebuilt := quotation.FromProject(project)
	assert.True(t, project.Total.Equal(rebuilt.Total()))

	rebuilt.RemoveService(svcID)
	rebuilt.Apply(project)
	assert.True(t, dec(510).Equal(project.Total))
	require.Len(t, project.Items, 1)
	assert.Equal(t, domain.ItemTypeBase, project.Items[0].Type)
}
