package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BaseModel holds the fields shared by every persisted entity
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID in Go so postgres and sqlite behave the same way
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Base is a flat-rate starting package priced independently of add-ons
type Base struct {
	BaseModel
	Name     string          `gorm:"type:varchar(200);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive bool            `gorm:"not null;column:is_active"`
}

// Service is an itemizable add-on with its own price and quantity multiplier
type Service struct {
	BaseModel
	Name       string          `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category   ServiceCategory `gorm:"type:varchar(50);not null"`
	Unit       string          `gorm:"type:varchar(50)"`
	Multiplier int             `gorm:"not null;default:1"`
}

// BeforeSave keeps Multiplier in sync with Unit
func (s *Service) BeforeSave(tx *gorm.DB) error {
	s.Multiplier = ParseMultiplier(s.Unit)
	return nil
}

// Property is a rental property that owns its unit types
type Property struct {
	BaseModel
	Name           string     `gorm:"type:varchar(200);not null"`
	Address        string     `gorm:"type:varchar(500);not null"`
	AdditionalInfo *string    `gorm:"type:text;column:additional_info"`
	Units          []UnitType `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// UnitType describes one kind of unit within a property (A1, B1, ...)
type UnitType struct {
	BaseModel
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_units_property_code"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_property_code"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;column:base_price"`
	SquareFeet  int             `gorm:"not null;default:0;column:square_feet"`
	Bedrooms    int             `gorm:"not null;default:0"`
	Bathrooms   float64         `gorm:"not null;default:0"`
	HasBalcony  bool            `gorm:"not null;default:false;column:has_balcony"`
	HasCurtains bool            `gorm:"not null;default:false;column:has_curtains"`
	Position    int             `gorm:"not null;default:0"`
}

// TableName keeps the table name the console has always used
func (UnitType) TableName() string {
	return "units"
}

// Project is a priced quotation for work on a specific property unit
type Project struct {
	BaseModel
	PropertyID       *uuid.UUID      `gorm:"type:uuid;column:property_id"`
	UnitID           *uuid.UUID      `gorm:"type:uuid;column:unit_id"`
	BaseID           *uuid.UUID      `gorm:"type:uuid;column:base_id"`
	PropertyName     string          `gorm:"type:varchar(200);column:property_name"`
	UnitNumber       string          `gorm:"type:varchar(50);column:unit_number"`
	UnitType         string          `gorm:"type:varchar(50);column:unit_type"`
	SquareFeet       int             `gorm:"not null;default:0;column:square_feet"`
	Bedrooms         int             `gorm:"not null;default:0"`
	Bathrooms        float64         `gorm:"not null;default:0"`
	Items            []QuotationItem `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	ChangeOrders     int             `gorm:"not null;default:0;column:change_orders"`
	ChangeOrderTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;column:change_order_total"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date             time.Time       `gorm:"not null"`
	Status           ProjectStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending';column:payment_status"`
	PaymentDate      *time.Time      `gorm:"column:payment_date"`
	Notes            *string         `gorm:"type:text"`
	DocumentPath     string          `gorm:"type:varchar(500);column:document_path"`
	Payments         []Payment       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// QuotationItem is a line item owned by a project
type QuotationItem struct {
	BaseModel
	ProjectID  uuid.UUID       `gorm:"type:uuid;not null;index;column:project_id"`
	Position   int             `gorm:"not null;default:0"`
	Type       ItemType        `gorm:"type:varchar(20);not null"`
	ServiceID  *uuid.UUID      `gorm:"type:uuid;column:service_id"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Multiplier int             `gorm:"not null;default:1"`
	Quantity   *int
	Category   string  `gorm:"type:varchar(50)"`
	Notes      *string `gorm:"type:text"`
}

// TableName keeps the table name the console has always used
func (QuotationItem) TableName() string {
	return "project_items"
}

// EffectiveMultiplier returns the multiplier, treating unset values as 1
func (i QuotationItem) EffectiveMultiplier() int {
	if i.Multiplier < 1 {
		return 1
	}
	return i.Multiplier
}

// Amount returns price × multiplier
func (i QuotationItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.EffectiveMultiplier())))
}

// Payment is an immutable record of money received against a project
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID       `gorm:"type:uuid;not null;index;column:project_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);not null;column:payment_method"`
	ReferenceNumber *string         `gorm:"type:varchar(100);column:reference_number"`
	Notes           *string         `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// BeforeCreate assigns the payment ID
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
