package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petromart/internal/models/db_models"
	"petromart/internal/testutil"
	"petromart/pkg/utils"
)

func TestSlotCountSurvivesSoftDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPromotionRepository(db)
	planRepo := NewPlanRepository(db)
	ctx := context.Background()

	store := seedStore(t, db)
	category := &db_models.Category{Name: "Slots", Slug: "slots"}
	require.NoError(t, db.Create(category).Error)
	product := &db_models.Product{
		StoreID:    store.ID,
		CategoryID: category.ID,
		Name:       "Slot Oil",
		Slug:       "slot-oil",
		Unit:       "liter",
		PriceMinor: 1000,
		Status:     db_models.ProductStatusActive,
	}
	require.NoError(t, db.Create(product).Error)

	plan, err := planRepo.GetByType(ctx, db_models.PlanSilver)
	require.NoError(t, err)
	sub := &db_models.Subscription{
		StoreID:          store.ID,
		PlanID:           plan.ID,
		SubscriptionCode: "SUB-20260901-TESTCODE-AAAAAA",
		Status:           db_models.SubStatusActive,
	}
	require.NoError(t, db.Create(sub).Error)

	fp := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         plan.PlanType,
		FeaturedAt:       utils.NowUnixSeconds(),
		IsActive:         true,
	}
	_, err = repo.CreateFeaturedWithLimit(ctx, fp, sub.ID, plan.MaxFeaturedSlots)
	require.NoError(t, err)

	// Soft-delete the placement; the slot stays consumed.
	require.NoError(t, db.Delete(&db_models.FeaturedProduct{}, "id = ?", fp.ID).Error)

	count, err := repo.CountFeaturedByCode(ctx, sub.SubscriptionCode)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	second := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         plan.PlanType,
		FeaturedAt:       utils.NowUnixSeconds(),
		IsActive:         true,
	}
	_, err = repo.CreateFeaturedWithLimit(ctx, second, sub.ID, plan.MaxFeaturedSlots)
	assert.ErrorIs(t, err, utils.ErrSlotLimitReached)
}

func TestCreateWithLimitReturnsRemaining(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPromotionRepository(db)
	planRepo := NewPlanRepository(db)
	ctx := context.Background()

	store := seedStore(t, db)
	category := &db_models.Category{Name: "Remaining", Slug: "remaining"}
	require.NoError(t, db.Create(category).Error)
	product := &db_models.Product{
		StoreID:    store.ID,
		CategoryID: category.ID,
		Name:       "Remaining Oil",
		Slug:       "remaining-oil",
		Unit:       "liter",
		PriceMinor: 1000,
		Status:     db_models.ProductStatusActive,
	}
	require.NoError(t, db.Create(product).Error)

	plan, err := planRepo.GetByType(ctx, db_models.PlanPlatinum)
	require.NoError(t, err)
	sub := &db_models.Subscription{
		StoreID:          store.ID,
		PlanID:           plan.ID,
		SubscriptionCode: "SUB-20260901-TESTCODE-BBBBBB",
		Status:           db_models.SubStatusActive,
	}
	require.NoError(t, db.Create(sub).Error)

	for want := plan.MaxFeaturedSlots - 1; want >= 0; want-- {
		fp := &db_models.FeaturedProduct{
			ProductID:        product.ID,
			StoreID:          store.ID,
			SubscriptionCode: sub.SubscriptionCode,
			PlanType:         plan.PlanType,
			FeaturedAt:       utils.NowUnixSeconds(),
			IsActive:         true,
		}
		remaining, err := repo.CreateFeaturedWithLimit(ctx, fp, sub.ID, plan.MaxFeaturedSlots)
		require.NoError(t, err)
		assert.Equal(t, want, remaining)
	}
}
