package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"petromart/internal/models/db_models"
	"petromart/internal/testutil"
)

func categoryCount(t *testing.T, db *gorm.DB, id interface{}) int64 {
	t.Helper()
	var category db_models.Category
	require.NoError(t, db.First(&category, "id = ?", id).Error)
	return category.TotalProducts
}

func seedStore(t *testing.T, db *gorm.DB) *db_models.Store {
	t.Helper()
	account := &db_models.Account{Email: "counter@example.com", PasswordHash: "x", Role: db_models.RoleSeller}
	require.NoError(t, db.Create(account).Error)
	store := &db_models.Store{OwnerID: account.ID, Name: "Counter Store", Slug: "counter-store", Status: db_models.StoreStatusActive}
	require.NoError(t, db.Create(store).Error)
	return store
}

func TestCategoryCounterFollowsProductLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	store := seedStore(t, db)
	category := &db_models.Category{Name: "Lubricants", Slug: "lubricants"}
	require.NoError(t, db.Create(category).Error)

	product := &db_models.Product{
		StoreID:    store.ID,
		CategoryID: category.ID,
		Name:       "Gear Oil",
		Slug:       "gear-oil",
		Unit:       "liter",
		PriceMinor: 1500,
		Status:     db_models.ProductStatusActive,
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.EqualValues(t, 1, categoryCount(t, db, category.ID))

	// Deactivation removes it from the count.
	require.NoError(t, repo.UpdateStatus(ctx, product.ID, db_models.ProductStatusInactive))
	assert.EqualValues(t, 0, categoryCount(t, db, category.ID))

	// Setting the same status again must not move the counter.
	require.NoError(t, repo.UpdateStatus(ctx, product.ID, db_models.ProductStatusInactive))
	assert.EqualValues(t, 0, categoryCount(t, db, category.ID))

	require.NoError(t, repo.UpdateStatus(ctx, product.ID, db_models.ProductStatusActive))
	assert.EqualValues(t, 1, categoryCount(t, db, category.ID))

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.EqualValues(t, 0, categoryCount(t, db, category.ID))

	// Deleting an already-deleted row is a no-op.
	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.EqualValues(t, 0, categoryCount(t, db, category.ID))
}

func TestCategoryCounterFollowsCategoryMove(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	store := seedStore(t, db)
	oils := &db_models.Category{Name: "Oils", Slug: "oils"}
	fuels := &db_models.Category{Name: "Fuels", Slug: "fuels"}
	require.NoError(t, db.Create(oils).Error)
	require.NoError(t, db.Create(fuels).Error)

	product := &db_models.Product{
		StoreID:    store.ID,
		CategoryID: oils.ID,
		Name:       "Crude Light",
		Slug:       "crude-light",
		Unit:       "barrel",
		PriceMinor: 80000,
		Status:     db_models.ProductStatusActive,
	}
	require.NoError(t, repo.Create(ctx, product))

	product.CategoryID = fuels.ID
	require.NoError(t, repo.Update(ctx, product))

	assert.EqualValues(t, 0, categoryCount(t, db, oils.ID))
	assert.EqualValues(t, 1, categoryCount(t, db, fuels.ID))
}

func TestCreateInactiveDoesNotCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	store := seedStore(t, db)
	category := &db_models.Category{Name: "Additives", Slug: "additives"}
	require.NoError(t, db.Create(category).Error)

	product := &db_models.Product{
		StoreID:    store.ID,
		CategoryID: category.ID,
		Name:       "Draft Product",
		Slug:       "draft-product",
		Unit:       "can",
		PriceMinor: 500,
		Status:     db_models.ProductStatusInactive,
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.EqualValues(t, 0, categoryCount(t, db, category.ID))
}
