package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petromart/internal/infra/kafka"
	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/pkg/utils"
)

func newPromotionService(f *fixture) PromotionServiceInterface {
	return NewPromotionService(
		f.promoRepo, f.subRepo, f.storeRepo, f.productRepo, f.planRepo, f.accountRepo,
		nopMail{}, kafka.NopPublisher{}, newTestMetrics(), nil, testLogger())
}

func TestFeatureProductSlotLimit(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "gold@example.com")
	store := f.activeStore(t, owner, "gold-fuels")
	category := f.category(t, "Lubricants")
	f.activeSubscription(t, store, db_models.PlanGold)

	products := []*db_models.Product{
		f.activeProduct(t, store, category, "Engine Oil A"),
		f.activeProduct(t, store, category, "Engine Oil B"),
		f.activeProduct(t, store, category, "Engine Oil C"),
	}

	first, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: products[0].ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, first.RemainingSlots)

	second, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: products[1].ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 0, second.RemainingSlots)

	_, err = svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: products[2].ID.String()})
	require.Error(t, err)

	var slotErr *utils.SlotLimitError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "featured", slotErr.PromotionType)
	assert.Equal(t, 2, slotErr.MaxSlots)
	assert.True(t, errors.Is(err, utils.ErrSlotLimitReached))
}

// Rotating out a placement must not free its slot: the count is per
// subscription code over all rows, active or not.
func TestFeatureProductExpiredRowsStillCount(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "silver@example.com")
	store := f.activeStore(t, owner, "silver-fuels")
	category := f.category(t, "Diesel")
	f.activeSubscription(t, store, db_models.PlanSilver)

	productA := f.activeProduct(t, store, category, "Diesel A")
	productB := f.activeProduct(t, store, category, "Diesel B")

	featured, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: productA.ID.String()})
	require.NoError(t, err)

	flipped, err := svc.ExpireFeaturedByID(ctx, featured.ID, "sweep")
	require.NoError(t, err)
	require.True(t, flipped)

	_, err = svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: productB.ID.String()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrSlotLimitReached))
}

// A new subscription carries a new code, so slot accounting starts over.
func TestNewSubscriptionCodeResetsSlots(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "renewal@example.com")
	store := f.activeStore(t, owner, "renewal-fuels")
	category := f.category(t, "Petrol")
	product := f.activeProduct(t, store, category, "Petrol 95")

	oldSub := f.activeSubscription(t, store, db_models.PlanSilver)
	_, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: product.ID.String()})
	require.NoError(t, err)

	// Silver allows one featured slot; it is exhausted.
	_, err = svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: product.ID.String()})
	require.Error(t, err)

	f.expireSubscriptionRow(t, oldSub, utils.NowUnixSeconds()-1)
	f.activeSubscription(t, store, db_models.PlanSilver)

	featured, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: product.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 0, featured.RemainingSlots)
	assert.NotEqual(t, oldSub.SubscriptionCode, featured.SubscriptionCode)
}

func TestFeatureProductConcurrent(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "race@example.com")
	store := f.activeStore(t, owner, "race-fuels")
	category := f.category(t, "Gas")
	product := f.activeProduct(t, store, category, "LPG Cylinder")
	f.activeSubscription(t, store, db_models.PlanGold)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: product.ID.String()})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, utils.ErrSlotLimitReached):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, attempts-2, rejected)

	count, err := f.promoRepo.CountFeaturedByCode(ctx, mustCurrentCode(t, f, store))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestFeatureProductWithoutSubscriptionRejectedAsBasic(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "nosub@example.com")
	store := f.activeStore(t, owner, "nosub-fuels")
	category := f.category(t, "Kerosene")
	product := f.activeProduct(t, store, category, "Kerosene Drum")

	// Without an active subscription the store resolves to basic, which
	// grants zero slots: the request is rejected like a full plan, not
	// treated as a missing record.
	_, err := svc.FeatureProduct(ctx, owner.ID.String(), request_models.FeatureProductRequest{ProductID: product.ID.String()})
	require.ErrorIs(t, err, utils.ErrSlotLimitReached)

	var slotErr *utils.SlotLimitError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "featured", slotErr.PromotionType)
	assert.Equal(t, 0, slotErr.MaxSlots)
	assert.Equal(t, 0, slotErr.Remaining)

	now := utils.NowUnixSeconds()
	_, err = svc.CreateHotDeal(ctx, owner.ID.String(), request_models.CreateHotDealRequest{
		ProductID:   product.ID.String(),
		DealPrice:   7500,
		DealStartAt: now,
		DealEndAt:   now + 3600,
	})
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "hot_deal", slotErr.PromotionType)
	assert.Equal(t, 0, slotErr.MaxSlots)
}

func TestCreateHotDealValidation(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "deals@example.com")
	store := f.activeStore(t, owner, "deal-fuels")
	category := f.category(t, "Additives")
	product := f.activeProduct(t, store, category, "Octane Booster")
	f.activeSubscription(t, store, db_models.PlanPlatinum)

	now := utils.NowUnixSeconds()

	_, err := svc.CreateHotDeal(ctx, owner.ID.String(), request_models.CreateHotDealRequest{
		ProductID:   product.ID.String(),
		DealPrice:   5000,
		DealStartAt: now + 3600,
		DealEndAt:   now + 1800,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidDealWindow)

	_, err = svc.CreateHotDeal(ctx, owner.ID.String(), request_models.CreateHotDealRequest{
		ProductID:   product.ID.String(),
		DealPrice:   product.PriceMinor,
		DealStartAt: now,
		DealEndAt:   now + 3600,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidDealPrice)

	deal, err := svc.CreateHotDeal(ctx, owner.ID.String(), request_models.CreateHotDealRequest{
		ProductID:   product.ID.String(),
		DealPrice:   7500,
		DealStartAt: now,
		DealEndAt:   now + 3600,
	})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, deal.DiscountPercentage, 0.01)
	assert.True(t, deal.CurrentlyActive)
	assert.Equal(t, 2, deal.RemainingSlots)
}

func TestSweepFeaturedIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "sweep@example.com")
	store := f.activeStore(t, owner, "sweep-fuels")
	category := f.category(t, "Crude")
	product := f.activeProduct(t, store, category, "Crude Barrel")
	sub := f.activeSubscription(t, store, db_models.PlanGold)

	now := utils.NowUnixSeconds()
	overdue := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         sub.Plan.PlanType,
		FeaturedAt:       now - 40*86400,
		FinishTime:       utils.Int64Ptr(now - 10*86400),
		IsActive:         true,
	}
	require.NoError(t, f.db.Create(overdue).Error)

	current := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         sub.Plan.PlanType,
		FeaturedAt:       now,
		FinishTime:       utils.Int64Ptr(now + 10*86400),
		IsActive:         true,
	}
	require.NoError(t, f.db.Create(current).Error)

	count, err := svc.SweepFeatured(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var reloaded db_models.FeaturedProduct
	require.NoError(t, f.db.First(&reloaded, "id = ?", overdue.ID).Error)
	assert.False(t, reloaded.IsActive)
	require.NotNil(t, reloaded.RotatedOutAt)

	count, err = svc.SweepFeatured(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

// A legacy row without a finish time expires off the plan duration from its
// creation timestamp.
func TestSweepFeaturedPlanDurationFallback(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "fallback@example.com")
	store := f.activeStore(t, owner, "fallback-fuels")
	category := f.category(t, "Bitumen")
	product := f.activeProduct(t, store, category, "Bitumen Drum")
	sub := f.activeSubscription(t, store, db_models.PlanGold)

	now := utils.NowUnixSeconds()
	legacy := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         sub.Plan.PlanType,
		FeaturedAt:       now - 31*86400,
		IsActive:         true,
	}
	require.NoError(t, f.db.Create(legacy).Error)

	count, err := svc.SweepFeatured(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSweepHotDeals(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "dealsweep@example.com")
	store := f.activeStore(t, owner, "dealsweep-fuels")
	category := f.category(t, "Solvents")
	product := f.activeProduct(t, store, category, "Solvent Can")
	sub := f.activeSubscription(t, store, db_models.PlanPlatinum)

	now := utils.NowUnixSeconds()
	ended := &db_models.HotDeal{
		ProductID:          product.ID,
		StoreID:            store.ID,
		SubscriptionCode:   sub.SubscriptionCode,
		PlanType:           sub.Plan.PlanType,
		OriginalPrice:      10000,
		DealPrice:          8000,
		DiscountPercentage: 20,
		DealStartAt:        now - 7200,
		DealEndAt:          now - 3600,
		IsActive:           true,
		ActivatedAt:        now - 7200,
	}
	require.NoError(t, f.db.Create(ended).Error)

	running := &db_models.HotDeal{
		ProductID:          product.ID,
		StoreID:            store.ID,
		SubscriptionCode:   sub.SubscriptionCode,
		PlanType:           sub.Plan.PlanType,
		OriginalPrice:      10000,
		DealPrice:          9000,
		DiscountPercentage: 10,
		DealStartAt:        now - 3600,
		DealEndAt:          now + 3600,
		IsActive:           true,
		ActivatedAt:        now - 3600,
	}
	require.NoError(t, f.db.Create(running).Error)

	count, err := svc.SweepHotDeals(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var reloaded db_models.HotDeal
	require.NoError(t, f.db.First(&reloaded, "id = ?", ended.ID).Error)
	assert.False(t, reloaded.IsActive)

	var reloadedRunning db_models.HotDeal
	require.NoError(t, f.db.First(&reloadedRunning, "id = ?", running.ID).Error)
	assert.True(t, reloadedRunning.IsActive)

	count, err = svc.SweepHotDeals(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestExpireHotDealByIDNoOpWhenInactive(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "noop@example.com")
	store := f.activeStore(t, owner, "noop-fuels")
	category := f.category(t, "Grease")
	product := f.activeProduct(t, store, category, "Grease Tub")
	f.activeSubscription(t, store, db_models.PlanSilver)

	now := utils.NowUnixSeconds()
	deal, err := svc.CreateHotDeal(ctx, owner.ID.String(), request_models.CreateHotDealRequest{
		ProductID:   product.ID.String(),
		DealPrice:   6000,
		DealStartAt: now,
		DealEndAt:   now + 3600,
	})
	require.NoError(t, err)

	flipped, err := svc.ExpireHotDealByID(ctx, deal.ID, "delay")
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = svc.ExpireHotDealByID(ctx, deal.ID, "sweep")
	require.NoError(t, err)
	assert.False(t, flipped)
}

func mustCurrentCode(t *testing.T, f *fixture, store *db_models.Store) string {
	t.Helper()
	sub, err := f.subRepo.CurrentActiveForStore(context.Background(), store.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub.SubscriptionCode
}

func TestSweepHotDealsLeavesScheduledDeal(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "scheduled@example.com")
	store := f.activeStore(t, owner, "scheduled-fuels")
	category := f.category(t, "Additives")
	product := f.activeProduct(t, store, category, "Octane Booster")
	sub := f.activeSubscription(t, store, db_models.PlanPlatinum)

	now := utils.NowUnixSeconds()
	scheduled := &db_models.HotDeal{
		ProductID:          product.ID,
		StoreID:            store.ID,
		SubscriptionCode:   sub.SubscriptionCode,
		PlanType:           sub.Plan.PlanType,
		OriginalPrice:      10000,
		DealPrice:          8500,
		DiscountPercentage: 15,
		DealStartAt:        now + 3600,
		DealEndAt:          now + 7200,
		IsActive:           true,
		ActivatedAt:        now,
	}
	require.NoError(t, f.db.Create(scheduled).Error)

	count, err := svc.SweepHotDeals(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	var reloaded db_models.HotDeal
	require.NoError(t, f.db.First(&reloaded, "id = ?", scheduled.ID).Error)
	assert.True(t, reloaded.IsActive)
	// Flag stays on until the window ends, but the deal is not yet shown.
	assert.False(t, reloaded.CurrentlyActive(now))

	deals, err := svc.PublicHotDeals(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestSweepFeaturedUnresolvableExpiryRotatesImmediately(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "orphan@example.com")
	store := f.activeStore(t, owner, "orphan-fuels")
	category := f.category(t, "Greases")
	product := f.activeProduct(t, store, category, "Grease Tub")
	sub := f.activeSubscription(t, store, db_models.PlanGold)

	orphan := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         db_models.PlanType("retired-tier"),
		IsActive:         true,
	}
	require.NoError(t, f.db.Create(orphan).Error)

	count, err := svc.SweepFeatured(ctx, utils.NowUnixSeconds())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var reloaded db_models.FeaturedProduct
	require.NoError(t, f.db.First(&reloaded, "id = ?", orphan.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestSweepFeaturedZeroDurationPlanExpiresImmediately(t *testing.T) {
	f := newFixture(t)
	svc := newPromotionService(f)
	ctx := context.Background()

	owner := f.seller(t, "zeroday@example.com")
	store := f.activeStore(t, owner, "zeroday-fuels")
	category := f.category(t, "Diesel")
	product := f.activeProduct(t, store, category, "Diesel Barrel")
	sub := f.activeSubscription(t, store, db_models.PlanGold)

	now := utils.NowUnixSeconds()
	snapshotted := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         sub.Plan.PlanType,
		FeaturedAt:       now,
		FinishTime:       utils.Int64Ptr(now + 30*86400),
		IsActive:         true,
	}
	require.NoError(t, f.db.Create(snapshotted).Error)

	// The plan stops granting featured days: even rows holding a later
	// finish time snapshot expire on the next sweep.
	require.NoError(t, f.db.Model(&db_models.SubscriptionPlan{}).
		Where("plan_type = ?", db_models.PlanGold).
		Update("duration_days", 0).Error)

	count, err := svc.SweepFeatured(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var reloaded db_models.FeaturedProduct
	require.NoError(t, f.db.First(&reloaded, "id = ?", snapshotted.ID).Error)
	assert.False(t, reloaded.IsActive)

	// New placements under the zero-duration plan get no window either.
	created, err := svc.FeatureProduct(ctx, owner.ID.String(),
		request_models.FeatureProductRequest{ProductID: product.ID.String()})
	require.NoError(t, err)

	var fresh db_models.FeaturedProduct
	require.NoError(t, f.db.First(&fresh, "id = ?", created.ID).Error)
	require.NotNil(t, fresh.FinishTime)
	assert.LessOrEqual(t, *fresh.FinishTime, utils.NowUnixSeconds())

	count, err = svc.SweepFeatured(ctx, utils.NowUnixSeconds())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
