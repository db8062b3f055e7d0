package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildOrderClause(t *testing.T) {
	fields := map[string]string{"name": "name", "createdAt": "created_at"}

	tests := []struct {
		name   string
		config repository.SortConfig
		want   string
	}{
		{"whitelisted asc", repository.SortConfig{Field: "name", Order: repository.SortOrderAsc}, "name ASC"},
		{"whitelisted desc", repository.SortConfig{Field: "createdAt", Order: repository.SortOrderDesc}, "created_at DESC"},
		{"empty field uses default", repository.SortConfig{}, "category ASC, name ASC"},
		{"unknown field uses default", repository.SortConfig{Field: "name; DROP TABLE", Order: repository.SortOrderAsc}, "category ASC, name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repository.BuildOrderClause(tt.config, fields, "category ASC, name ASC"))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder("DESC"))
	assert.Equal(t, repository.SortOrderAsc, repository.ParseSortOrder("asc"))
	assert.Equal(t, repository.SortOrderAsc, repository.ParseSortOrder(""))
}

func TestBaseRepository_ListOrderAndActiveFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewBaseRepository(db)
	ctx := context.Background()

	testutil.CreateBase(t, db, "Turnover", 500)
	testutil.CreateBase(t, db, "Deep clean", 300)
	retired := &domain.Base{Name: "Annual", Price: decimal.NewFromInt(900), IsActive: false}
	require.NoError(t, repo.Create(ctx, retired))

	all, err := repo.List(ctx, repository.SortConfig{}, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Annual", "Deep clean", "Turnover"}, []string{all[0].Name, all[1].Name, all[2].Name})

	active, err := repo.List(ctx, repository.SortConfig{Field: "price", Order: repository.SortOrderDesc}, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Turnover", active[0].Name)

	stored, err := repo.GetByID(ctx, retired.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestBaseRepository_GetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, err := repository.NewBaseRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestServiceRepository_MultiplierDerivedOnCreateAndUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	svc := &domain.Service{Name: "Puertas", Price: decimal.NewFromInt(220), Category: domain.ServiceCategoryCarpentry, Unit: "X3", Multiplier: 99}
	require.NoError(t, repo.Create(ctx, svc))

	stored, err := repo.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Multiplier)

	stored.Unit = "Metro"
	require.NoError(t, repo.Update(ctx, stored))

	stored, err = repo.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Multiplier)
}

func TestServiceRepository_ListByCategoryThenName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)
	ctx := context.Background()

	testutil.CreateService(t, db, "Pintura", 480, domain.ServiceCategoryFinishes, "Unidad")
	testutil.CreateService(t, db, "Drywall", 150, domain.ServiceCategoryStructural, "Unidad")
	testutil.CreateService(t, db, "Barniz", 90, domain.ServiceCategoryFinishes, "Unidad")

	services, err := repo.List(ctx, repository.SortConfig{}, nil)
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "Barniz", services[0].Name)
	assert.Equal(t, "Pintura", services[1].Name)
	assert.Equal(t, "Drywall", services[2].Name)

	category := domain.ServiceCategoryStructural
	filtered, err := repo.List(ctx, repository.SortConfig{}, &category)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Drywall", filtered[0].Name)
}

func TestServiceRepository_GetByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewServiceRepository(db)

	a := testutil.CreateService(t, db, "A", 1, domain.ServiceCategoryCleaning, "Unidad")
	missing := uuid.New()

	found, err := repo.GetByIDs(context.Background(), []uuid.UUID{a.ID, missing})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "A", found[a.ID].Name)

	empty, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPropertyRepository_UnitsKeepInsertionOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPropertyRepository(db)
	ctx := context.Background()

	property := &domain.Property{
		Name:    "Cherry Creek",
		Address: "100 Main St",
		Units: []domain.UnitType{
			{Code: "C1", BasePrice: decimal.NewFromInt(300)},
			{Code: "A1", BasePrice: decimal.NewFromInt(100)},
			{Code: "B1", BasePrice: decimal.NewFromInt(200)},
		},
	}
	require.NoError(t, repo.Create(ctx, property))

	stored, err := repo.GetByID(ctx, property.ID)
	require.NoError(t, err)
	require.Len(t, stored.Units, 3)
	assert.Equal(t, []string{"C1", "A1", "B1"}, []string{stored.Units[0].Code, stored.Units[1].Code, stored.Units[2].Code})

	units := repository.NewUnitRepository(db)
	added := &domain.UnitType{PropertyID: property.ID, Code: "D1", BasePrice: decimal.NewFromInt(400)}
	require.NoError(t, units.Create(ctx, added))
	assert.Equal(t, 3, added.Position)

	listed, err := units.ListByProperty(ctx, property.ID, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, listed, 4)
	assert.Equal(t, "D1", listed[3].Code)

	byCode, err := units.GetByCode(ctx, property.ID, "A1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(byCode.BasePrice))
}

func TestPropertyRepository_UpdateLeavesUnits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPropertyRepository(db)
	ctx := context.Background()

	property := testutil.CreateProperty(t, db, "Highlands", "A1", "B1")
	info := "Gate code 1234"
	property.Name = "Highlands Lofts"
	property.AdditionalInfo = &info
	property.Units = nil
	require.NoError(t, repo.Update(ctx, property))

	stored, err := repo.GetByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Highlands Lofts", stored.Name)
	require.NotNil(t, stored.AdditionalInfo)
	assert.Equal(t, info, *stored.AdditionalInfo)
	assert.Len(t, stored.Units, 2)
}

func TestPropertyRepository_ListByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPropertyRepository(db)

	testutil.CreateProperty(t, db, "Zeta", "A1")
	testutil.CreateProperty(t, db, "Alpha")

	properties, err := repo.List(context.Background(), repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "Alpha", properties[0].Name)
	assert.Empty(t, properties[0].Units)
	assert.Len(t, properties[1].Units, 1)
}
