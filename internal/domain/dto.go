package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog DTOs

type BaseDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"isActive"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type ServiceDTO struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   ServiceCategory `json:"category"`
	Unit       string          `json:"unit,omitempty"`
	Multiplier int             `json:"multiplier"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

type PropertyDTO struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	AdditionalInfo *string       `json:"additionalInfo,omitempty"`
	Units          []UnitTypeDTO `json:"units"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
}

type UnitTypeDTO struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"propertyId"`
	Code        string          `json:"code"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	SquareFeet  int             `json:"squareFeet"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   float64         `json:"bathrooms"`
	HasBalcony  bool            `json:"hasBalcony"`
	HasCurtains bool            `json:"hasCurtains"`
}

// Catalog requests

type CreateBaseRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	IsActive *bool           `json:"isActive,omitempty"`
}

type UpdateBaseRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	IsActive *bool           `json:"isActive,omitempty"`
}

type CreateServiceRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Category ServiceCategory `json:"category" validate:"required"`
	Unit     string          `json:"unit" validate:"max=50"`
}

type UpdateServiceRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Category ServiceCategory `json:"category" validate:"required"`
	Unit     string          `json:"unit" validate:"max=50"`
}

type CreatePropertyRequest struct {
	Name           string                  `json:"name" validate:"required,max=200"`
	Address        string                  `json:"address" validate:"required,max=500"`
	AdditionalInfo *string                 `json:"additionalInfo,omitempty"`
	Units          []CreateUnitTypeRequest `json:"units,omitempty" validate:"dive"`
}

type UpdatePropertyRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Address        string  `json:"address" validate:"required,max=500"`
	AdditionalInfo *string `json:"additionalInfo,omitempty"`
}

type CreateUnitTypeRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	BasePrice   decimal.Decimal `json:"basePrice" validate:"gte=0"`
	SquareFeet  int             `json:"squareFeet" validate:"gte=0"`
	Bedrooms    int             `json:"bedrooms" validate:"gte=0"`
	Bathrooms   float64         `json:"bathrooms" validate:"gte=0"`
	HasBalcony  bool            `json:"hasBalcony"`
	HasCurtains bool            `json:"hasCurtains"`
}

type UpdateUnitTypeRequest = CreateUnitTypeRequest

// Quotation DTOs

type QuotationItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	Type       ItemType        `json:"type"`
	ServiceID  *uuid.UUID      `json:"serviceId,omitempty"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Multiplier int             `json:"multiplier"`
	Quantity   *int            `json:"quantity,omitempty"`
	Category   string          `json:"category,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// QuotationRequest selects the catalog records a quotation is built from
type QuotationRequest struct {
	BaseID       *uuid.UUID  `json:"baseId,omitempty"`
	PropertyID   *uuid.UUID  `json:"propertyId,omitempty"`
	UnitCode     string      `json:"unitCode,omitempty" validate:"max=50"`
	UnitNumber   string      `json:"unitNumber" validate:"max=50"`
	ServiceIDs   []uuid.UUID `json:"serviceIds,omitempty"`
	ChangeOrders int         `json:"changeOrders" validate:"gte=0"`
	Notes        *string     `json:"notes,omitempty"`
	Date         *time.Time  `json:"date,omitempty"`
}

type QuotationPreviewDTO struct {
	Items            []QuotationItemDTO `json:"items"`
	BasePrice        decimal.Decimal    `json:"basePrice"`
	ServicesTotal    decimal.Decimal    `json:"servicesTotal"`
	ChangeOrders     int                `json:"changeOrders"`
	ChangeOrderTotal decimal.Decimal    `json:"changeOrderTotal"`
	Total            decimal.Decimal    `json:"total"`
}

// Project DTOs

type ProjectDTO struct {
	ID               uuid.UUID          `json:"id"`
	PropertyID       *uuid.UUID         `json:"propertyId,omitempty"`
	UnitID           *uuid.UUID         `json:"unitId,omitempty"`
	BaseID           *uuid.UUID         `json:"baseId,omitempty"`
	PropertyName     string             `json:"propertyName"`
	UnitNumber       string             `json:"unitNumber"`
	UnitType         string             `json:"unitType"`
	SquareFeet       int                `json:"squareFeet"`
	Bedrooms         int                `json:"bedrooms"`
	Bathrooms        float64            `json:"bathrooms"`
	Items            []QuotationItemDTO `json:"items"`
	ChangeOrders     int                `json:"changeOrders"`
	ChangeOrderTotal decimal.Decimal    `json:"changeOrderTotal"`
	Total            decimal.Decimal    `json:"total"`
	Date             string             `json:"date"`
	Status           ProjectStatus      `json:"status"`
	PaymentStatus    PaymentStatus      `json:"paymentStatus"`
	PaymentDate      string             `json:"paymentDate,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
	DocumentPath     string             `json:"documentPath,omitempty"`
	AmountPaid       decimal.Decimal    `json:"amountPaid"`
	AmountRemaining  decimal.Decimal    `json:"amountRemaining"`
	Payments         []PaymentDTO       `json:"payments"`
	CreatedAt        string             `json:"createdAt"`
	UpdatedAt        string             `json:"updatedAt"`
}

type UpdateProjectStatusRequest struct {
	Status ProjectStatus `json:"status" validate:"required,oneof=draft sent approved invoiced paid cancelled"`
}

type UpdateChangeOrdersRequest struct {
	ChangeOrders int `json:"changeOrders" validate:"gte=0"`
}

type AssignItemRequest struct {
	ServiceID uuid.UUID `json:"serviceId" validate:"required"`
}

type SendQuotationRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject,omitempty" validate:"max=200"`
	Message string `json:"message,omitempty" validate:"max=5000"`
}

// Payment DTOs

type PaymentDTO struct {
	ID              uuid.UUID       `json:"id"`
	ProjectID       uuid.UUID       `json:"projectId"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

type CreatePaymentRequest struct {
	ProjectID       uuid.UUID       `json:"projectId" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" validate:"required,oneof=cash check transfer credit_card"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty" validate:"omitempty,max=100"`
	Notes           *string         `json:"notes,omitempty"`
}

type BalanceDTO struct {
	ProjectID       uuid.UUID       `json:"projectId"`
	Total           decimal.Decimal `json:"total"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	AmountRemaining decimal.Decimal `json:"amountRemaining"`
	SuggestedAmount decimal.Decimal `json:"suggestedAmount"`
	Status          PaymentStatus   `json:"status"`
}

// RecordPaymentResult is returned after a payment is appended
type RecordPaymentResult struct {
	Payment PaymentDTO `json:"payment"`
	Balance BalanceDTO `json:"balance"`
}

// Dashboard DTOs

type PropertyStatsDTO struct {
	PropertyName  string          `json:"propertyName"`
	Count         int             `json:"count"`
	Revenue       decimal.Decimal `json:"revenue"`
	EstimatedPaid decimal.Decimal `json:"estimatedPaid"`
	Collected     decimal.Decimal `json:"collected"`
}

type ServiceStatsDTO struct {
	Name         string          `json:"name"`
	Count        int             `json:"count"`
	Revenue      decimal.Decimal `json:"revenue"`
	UsagePercent int64           `json:"usagePercent"`
}

type DashboardDTO struct {
	TotalProjects              int                `json:"totalProjects"`
	TotalRevenue               decimal.Decimal    `json:"totalRevenue"`
	TotalPaid                  decimal.Decimal    `json:"totalPaid"`
	TotalPending               decimal.Decimal    `json:"totalPending"`
	AverageProjectValue        decimal.Decimal    `json:"averageProjectValue"`
	AverageProjectValueRounded decimal.Decimal    `json:"averageProjectValueRounded"`
	PropertyStats              []PropertyStatsDTO `json:"propertyStats"`
	TopServices                []ServiceStatsDTO  `json:"topServices"`
	RecentDrafts               []ProjectDTO       `json:"recentDrafts"`
}

// Auth DTOs

type SessionDTO struct {
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	System    bool   `json:"system"`
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
