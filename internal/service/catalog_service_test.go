package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"github.com/mrqz-remodeling/console-api/internal/service"
	"github.com/mrqz-remodeling/console-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateBaseDefaultsActive(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	created, err := s.catalog.CreateBase(ctx, &domain.CreateBaseRequest{Name: "Turnover", Price: decimal.NewFromInt(1500)})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	inactive := false
	hidden, err := s.catalog.CreateBase(ctx, &domain.CreateBaseRequest{Name: "Legacy", Price: decimal.NewFromInt(900), IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)

	active, err := s.catalog.ListBases(ctx, repository.SortConfig{}, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Turnover", active[0].Name)
}

func TestCatalogService_UpdateBase(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	base := testutil.CreateBase(t, s.db, "Turnover", 1500)

	updated, err := s.catalog.UpdateBase(ctx, base.ID, &domain.UpdateBaseRequest{Name: "Turnover Plus", Price: decimal.NewFromInt(1800)})
	require.NoError(t, err)
	assert.Equal(t, "Turnover Plus", updated.Name)
	assert.True(t, decimal.NewFromInt(1800).Equal(updated.Price))
	assert.True(t, updated.IsActive)

	_, err = s.catalog.UpdateBase(ctx, uuid.New(), &domain.UpdateBaseRequest{Name: "x"})
	assert.ErrorIs(t, err, service.ErrBaseNotFound)
}

func TestCatalogService_ServiceMultiplierFollowsUnit(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	created, err := s.catalog.CreateService(ctx, &domain.CreateServiceRequest{
		Name: "Puertas", Price: decimal.NewFromInt(100), Category: domain.ServiceCategoryCarpentry, Unit: "X3",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Multiplier)

	updated, err := s.catalog.UpdateService(ctx, created.ID, &domain.UpdateServiceRequest{
		Name: "Puertas", Price: decimal.NewFromInt(100), Category: domain.ServiceCategoryCarpentry, Unit: "Unidad",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Multiplier)

	fetched, err := s.catalog.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.Multiplier)
}

func TestCatalogService_RejectsInvalidInput(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	_, err := s.catalog.CreateService(ctx, &domain.CreateServiceRequest{Name: "x", Category: "Plumbing"})
	assert.ErrorIs(t, err, service.ErrInvalidCategory)

	_, err = s.catalog.CreateService(ctx, &domain.CreateServiceRequest{
		Name: "x", Category: domain.ServiceCategoryPlumbing, Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.catalog.CreateBase(ctx, &domain.CreateBaseRequest{Name: "x", Price: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	bad := domain.ServiceCategory("Other")
	_, err = s.catalog.ListServices(ctx, repository.SortConfig{}, &bad)
	assert.ErrorIs(t, err, service.ErrInvalidCategory)
}

func TestCatalogService_ListServicesByCategoryThenName(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	testutil.CreateService(t, s.db, "Pintura", 50, domain.ServiceCategoryFinishes, "Unidad")
	testutil.CreateService(t, s.db, "Closet", 80, domain.ServiceCategoryCarpentry, "Unidad")
	testutil.CreateService(t, s.db, "Alfombra", 60, domain.ServiceCategoryFinishes, "Pie")

	list, err := s.catalog.ListServices(ctx, repository.SortConfig{}, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Alfombra", "Pintura", "Closet"}, []string{list[0].Name, list[1].Name, list[2].Name})

	finishes := domain.ServiceCategoryFinishes
	filtered, err := s.catalog.ListServices(ctx, repository.SortConfig{}, &finishes)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}
