package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/pkg/utils"
)

func newProductService(f *fixture) ProductServiceInterface {
	return NewProductService(f.productRepo, f.storeRepo, f.subRepo, f.planRepo, testLogger())
}

func TestCreateProductBasicLimit(t *testing.T) {
	f := newFixture(t)
	svc := newProductService(f)
	ctx := context.Background()

	owner := f.seller(t, "limit@example.com")
	f.activeStore(t, owner, "limit-fuels")
	category := f.category(t, "Limit Oils")

	// Basic allows five products.
	for i := 0; i < 5; i++ {
		_, err := svc.CreateProduct(ctx, owner.ID.String(), request_models.CreateProductRequest{
			CategoryID: category.ID.String(),
			Name:       "Oil " + string(rune('A'+i)),
			Unit:       "liter",
			PriceMinor: 1000,
			Quantity:   10,
		})
		require.NoError(t, err)
	}

	_, err := svc.CreateProduct(ctx, owner.ID.String(), request_models.CreateProductRequest{
		CategoryID: category.ID.String(),
		Name:       "One Too Many",
		Unit:       "liter",
		PriceMinor: 1000,
	})
	assert.ErrorIs(t, err, utils.ErrProductLimitReached)
}

func TestCreateProductPaidPlanRaisesLimit(t *testing.T) {
	f := newFixture(t)
	svc := newProductService(f)
	ctx := context.Background()

	owner := f.seller(t, "raised@example.com")
	store := f.activeStore(t, owner, "raised-fuels")
	category := f.category(t, "Raised Oils")
	f.activeSubscription(t, store, db_models.PlanSilver)

	for i := 0; i < 6; i++ {
		_, err := svc.CreateProduct(ctx, owner.ID.String(), request_models.CreateProductRequest{
			CategoryID: category.ID.String(),
			Name:       "Product " + string(rune('A'+i)),
			Unit:       "barrel",
			PriceMinor: 2000,
		})
		require.NoError(t, err)
	}
}

func TestCreateProductRequiresActiveStore(t *testing.T) {
	f := newFixture(t)
	svc := newProductService(f)
	ctx := context.Background()

	owner := f.seller(t, "inactive@example.com")
	store := &db_models.Store{
		OwnerID:      owner.ID,
		Name:         "Pending Store",
		Slug:         "pending-store",
		Subscription: string(db_models.PlanBasic),
		Status:       db_models.StoreStatusPending,
	}
	require.NoError(t, f.storeRepo.Create(ctx, store))
	category := f.category(t, "Pending Oils")

	_, err := svc.CreateProduct(ctx, owner.ID.String(), request_models.CreateProductRequest{
		CategoryID: category.ID.String(),
		Name:       "Blocked",
		Unit:       "liter",
		PriceMinor: 1000,
	})
	assert.ErrorIs(t, err, utils.ErrStoreNotActive)
}

func TestUpdateProductOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newProductService(f)
	ctx := context.Background()

	owner := f.seller(t, "owner@example.com")
	store := f.activeStore(t, owner, "owner-fuels")
	category := f.category(t, "Owner Oils")
	product := f.activeProduct(t, store, category, "Owned Oil")

	intruder := f.seller(t, "intruder@example.com")
	f.activeStore(t, intruder, "intruder-fuels")

	_, err := svc.UpdateProduct(ctx, intruder.ID.String(), product.ID.String(), request_models.UpdateProductRequest{Name: "Stolen"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := svc.UpdateProduct(ctx, owner.ID.String(), product.ID.String(), request_models.UpdateProductRequest{Name: "Renamed Oil"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Oil", updated.Name)
	assert.Equal(t, "renamed-oil", updated.Slug)
}

func TestSearchOnlyActiveProducts(t *testing.T) {
	f := newFixture(t)
	svc := newProductService(f)
	ctx := context.Background()

	owner := f.seller(t, "search@example.com")
	store := f.activeStore(t, owner, "search-fuels")
	category := f.category(t, "Search Oils")
	f.activeProduct(t, store, category, "Visible Oil")
	hidden := f.activeProduct(t, store, category, "Hidden Oil")
	require.NoError(t, f.productRepo.UpdateStatus(ctx, hidden.ID, db_models.ProductStatusInactive))

	results, total, err := svc.Search(ctx, "Oil", "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Visible Oil", results[0].Name)
}
