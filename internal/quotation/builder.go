// Package quotation assembles a project's line items from catalog selections
// and computes its totals. It performs no I/O.
package quotation

import (
	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ChangeOrderUnitPrice is the fixed price of a single change order.
var ChangeOrderUnitPrice = decimal.NewFromInt(10)

// IDFunc generates identifiers for new line items.
type IDFunc func() uuid.UUID

// Builder holds the current selections of a draft quotation.
type Builder struct {
	base         *domain.Base
	baseItemID   uuid.UUID
	property     *domain.Property
	unit         *domain.UnitType
	unitNumber   string
	services     []domain.QuotationItem
	changeOrders int
	newID        IDFunc
}

// Option configures a Builder.
type Option func(*Builder)

// WithIDFunc overrides the line item ID generator.
func WithIDFunc(fn IDFunc) Option {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// New returns an empty builder.
func New(opts ...Option) *Builder {
	b := &Builder{newID: uuid.New}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetBase selects the base package. nil clears it.
func (b *Builder) SetBase(base *domain.Base) {
	b.base = base
	if base != nil && b.baseItemID == uuid.Nil {
		b.baseItemID = b.newID()
	}
}

// SetUnit selects the property and unit type. They are descriptive only and
// never affect the price.
func (b *Builder) SetUnit(property *domain.Property, unit *domain.UnitType, unitNumber string) {
	b.property = property
	b.unit = unit
	b.unitNumber = unitNumber
}

// SetChangeOrders sets the change order count. Negative counts are treated as zero.
func (b *Builder) SetChangeOrders(n int) {
	if n < 0 {
		n = 0
	}
	b.changeOrders = n
}

// ChangeOrders returns the change order count.
func (b *Builder) ChangeOrders() int {
	return b.changeOrders
}

// AddService appends an empty service slot and returns its ID.
func (b *Builder) AddService() uuid.UUID {
	item := domain.QuotationItem{
		Type:       domain.ItemTypeService,
		Price:      decimal.Zero,
		Multiplier: 1,
	}
	item.ID = b.newID()
	b.services = append(b.services, item)
	return item.ID
}

// AssignService fills the slot identified by id with a catalog service.
// The slot keeps its ID. It reports false if no slot has that ID.
func (b *Builder) AssignService(id uuid.UUID, svc *domain.Service) bool {
	for i := range b.services {
		if b.services[i].ID != id {
			continue
		}
		serviceID := svc.ID
		b.services[i].ServiceID = &serviceID
		b.services[i].Name = svc.Name
		b.services[i].Price = svc.Price
		b.services[i].Multiplier = domain.ParseMultiplier(svc.Unit)
		b.services[i].Category = string(svc.Category)
		return true
	}
	return false
}

// SelectService adds a slot and assigns svc to it in one step.
func (b *Builder) SelectService(svc *domain.Service) uuid.UUID {
	id := b.AddService()
	b.AssignService(id, svc)
	return id
}

// RemoveService deletes the slot identified by id. Unknown IDs are ignored.
func (b *Builder) RemoveService(id uuid.UUID) {
	for i := range b.services {
		if b.services[i].ID == id {
			b.services = append(b.services[:i], b.services[i+1:]...)
			return
		}
	}
}

// BasePrice returns the selected base price or zero.
func (b *Builder) BasePrice() decimal.Decimal {
	if b.base == nil {
		return decimal.Zero
	}
	return b.base.Price
}

// ServicesTotal returns Σ price × multiplier over the service slots.
func (b *Builder) ServicesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.services {
		total = total.Add(item.Amount())
	}
	return total
}

// ChangeOrderTotal returns changeOrders × ChangeOrderUnitPrice.
func (b *Builder) ChangeOrderTotal() decimal.Decimal {
	return ChangeOrderUnitPrice.Mul(decimal.NewFromInt(int64(b.changeOrders)))
}

// Total returns base + services + change orders.
func (b *Builder) Total() decimal.Decimal {
	return b.BasePrice().Add(b.ServicesTotal()).Add(b.ChangeOrderTotal())
}

// Items returns the canonical line item sequence: the base first (when
// selected), then services in selection order. Positions are assigned here.
func (b *Builder) Items() []domain.QuotationItem {
	items := make([]domain.QuotationItem, 0, len(b.services)+1)
	if b.base != nil {
		baseItem := domain.QuotationItem{
			Type:       domain.ItemTypeBase,
			Name:       b.base.Name,
			Price:      b.base.Price,
			Multiplier: 1,
		}
		baseItem.ID = b.baseItemID
		items = append(items, baseItem)
	}
	items = append(items, b.services...)
	for i := range items {
		items[i].Position = i
	}
	return items
}

// Services returns a copy of the service slots.
func (b *Builder) Services() []domain.QuotationItem {
	out := make([]domain.QuotationItem, len(b.services))
	copy(out, b.services)
	return out
}

// Project returns a new draft project populated from the current selections.
func (b *Builder) Project() *domain.Project {
	p := &domain.Project{
		Status:        domain.ProjectStatusDraft,
		PaymentStatus: domain.PaymentStatusPending,
	}
	b.Apply(p)
	return p
}

// Apply writes the builder's items, descriptive fields and totals onto p.
func (b *Builder) Apply(p *domain.Project) {
	p.BaseID = nil
	if b.base != nil && b.base.ID != uuid.Nil {
		id := b.base.ID
		p.BaseID = &id
	}
	if b.property != nil {
		id := b.property.ID
		p.PropertyID = &id
		p.PropertyName = b.property.Name
	}
	if b.unit != nil {
		id := b.unit.ID
		p.UnitID = &id
		p.UnitType = b.unit.Code
		p.SquareFeet = b.unit.SquareFeet
		p.Bedrooms = b.unit.Bedrooms
		p.Bathrooms = b.unit.Bathrooms
	}
	if b.unitNumber != "" {
		p.UnitNumber = b.unitNumber
	}

	items := b.Items()
	for i := range items {
		items[i].ProjectID = p.ID
	}
	p.Items = items
	p.ChangeOrders = b.changeOrders
	p.ChangeOrderTotal = b.ChangeOrderTotal()
	p.Total = b.Total()
}

// FromProject rebuilds a builder from a persisted project so its items can be
// edited. The base item is recovered from the item list; services keep their IDs.
func FromProject(p *domain.Project, opts ...Option) *Builder {
	b := New(opts...)
	b.changeOrders = p.ChangeOrders
	b.unitNumber = p.UnitNumber

	for _, item := range p.Items {
		switch item.Type {
		case domain.ItemTypeBase:
			base := &domain.Base{Name: item.Name, Price: item.Price, IsActive: true}
			if p.BaseID != nil {
				base.ID = *p.BaseID
			}
			b.base = base
			b.baseItemID = item.ID
		case domain.ItemTypeService:
			b.services = append(b.services, item)
		}
	}
	return b
}
