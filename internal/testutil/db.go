// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/database"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/quotation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory sqlite database with the schema migrated.
// A single connection is used so every query sees the same memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// Money parses a decimal literal, failing the test on bad input
func Money(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

// CreateBase inserts an active base
func CreateBase(t *testing.T, db *gorm.DB, name string, price int64) *domain.Base {
	t.Helper()
	base := &domain.Base{Name: name, Price: decimal.NewFromInt(price), IsActive: true}
	require.NoError(t, db.Create(base).Error)
	return base
}

// CreateService inserts a catalog service; the multiplier follows the unit
func CreateService(t *testing.T, db *gorm.DB, name string, price int64, category domain.ServiceCategory, unit string) *domain.Service {
	t.Helper()
	service := &domain.Service{Name: name, Price: decimal.NewFromInt(price), Category: category, Unit: unit}
	require.NoError(t, db.Create(service).Error)
	return service
}

// CreateProperty inserts a property with one unit per code, in order
func CreateProperty(t *testing.T, db *gorm.DB, name string, codes ...string) *domain.Property {
	t.Helper()
	property := &domain.Property{Name: name, Address: name + " St, Denver, CO"}
	for i, code := range codes {
		property.Units = append(property.Units, domain.UnitType{
			Code:       code,
			BasePrice:  decimal.NewFromInt(int64(100 * (i + 1))),
			SquareFeet: 700 + 100*i,
			Bedrooms:   1 + i,
			Bathrooms:  1,
			Position:   i,
		})
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

// CreateProject persists a quotation built from the given base and services
func CreateProject(t *testing.T, db *gorm.DB, propertyName, unitNumber string, base *domain.Base, services []*domain.Service, changeOrders int) *domain.Project {
	t.Helper()

	b := quotation.New()
	if base != nil {
		b.SetBase(base)
	}
	for _, s := range services {
		b.SelectService(s)
	}
	b.SetChangeOrders(changeOrders)

	project := b.Project()
	project.Date = time.Now().UTC()
	project.PropertyName = propertyName
	project.UnitNumber = unitNumber

	require.NoError(t, db.Omit("Payments").Create(project).Error)
	return project
}

// AddPayment appends a payment directly, bypassing status derivation
func AddPayment(t *testing.T, db *gorm.DB, projectID uuid.UUID, amount string, method domain.PaymentMethod) *domain.Payment {
	t.Helper()
	payment := &domain.Payment{
		ProjectID:     projectID,
		Amount:        Money(t, amount),
		PaymentMethod: method,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(payment).Error)
	return payment
}
