package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petromart/internal/infra/kafka"
	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/pkg/utils"
)

func newSubscriptionService(f *fixture) SubscriptionServiceInterface {
	return NewSubscriptionService(
		f.subRepo, f.planRepo, f.storeRepo, f.accountRepo, f.promoRepo, f.auditRepo,
		nopMail{}, kafka.NopPublisher{}, newTestMetrics(), testLogger())
}

func TestSubscribeCreatesPending(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(f)
	ctx := context.Background()

	owner := f.seller(t, "pending@example.com")
	store := f.activeStore(t, owner, "pending-fuels")

	sub, err := svc.Subscribe(ctx, owner.ID.String(), request_models.SubscribeRequest{PlanType: "gold"})
	require.NoError(t, err)
	assert.Equal(t, "pending", sub.Status)
	assert.Equal(t, "gold", sub.PlanType)
	assert.True(t, strings.HasPrefix(sub.SubscriptionCode, "SUB-"))
	assert.Zero(t, sub.StartsAt)

	// A second request while one is pending is refused.
	_, err = svc.Subscribe(ctx, owner.ID.String(), request_models.SubscribeRequest{PlanType: "silver"})
	assert.ErrorIs(t, err, utils.ErrSubscriptionInvalid)

	// The store tier does not change until approval.
	reloaded, err := f.storeRepo.GetByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.PlanBasic), reloaded.Subscription)
}

func TestApproveActivatesAndStampsStore(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(f)
	ctx := context.Background()

	owner := f.seller(t, "approve@example.com")
	store := f.activeStore(t, owner, "approve-fuels")
	admin := f.seller(t, "admin@example.com")

	pending, err := svc.Subscribe(ctx, owner.ID.String(), request_models.SubscribeRequest{PlanType: "gold"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, admin.ID.String(), pending.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "active", approved.Status)
	assert.Equal(t, approved.StartsAt+30*86400, approved.EndsAt)
	assert.Equal(t, 2, approved.FeaturedSlotsRemaining)
	assert.Equal(t, 1, approved.HotDealSlotsRemaining)

	reloaded, err := f.storeRepo.GetByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, "gold", reloaded.Subscription)

	// A settled subscription cannot be approved twice.
	_, err = svc.Approve(ctx, admin.ID.String(), pending.ID.String())
	assert.ErrorIs(t, err, utils.ErrSubscriptionInvalid)

	entries, total, err := f.auditRepo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "subscription.approve", entries[0].Action)
}

func TestRejectLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(f)
	ctx := context.Background()

	owner := f.seller(t, "reject@example.com")
	store := f.activeStore(t, owner, "reject-fuels")
	admin := f.seller(t, "admin2@example.com")

	pending, err := svc.Subscribe(ctx, owner.ID.String(), request_models.SubscribeRequest{PlanType: "platinum"})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, admin.ID.String(), pending.ID.String()))

	reloaded, err := f.storeRepo.GetByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.PlanBasic), reloaded.Subscription)

	// Rejection frees the seller to request again.
	_, err = svc.Subscribe(ctx, owner.ID.String(), request_models.SubscribeRequest{PlanType: "silver"})
	require.NoError(t, err)
}

func TestExpireDueCascade(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(f)
	ctx := context.Background()

	owner := f.seller(t, "cascade@example.com")
	store := f.activeStore(t, owner, "cascade-fuels")
	lubricants := f.category(t, "Cascade Lubricants")
	fuels := f.category(t, "Cascade Fuels")

	f.activeProduct(t, store, lubricants, "Oil One")
	f.activeProduct(t, store, lubricants, "Oil Two")
	f.activeProduct(t, store, fuels, "Fuel One")

	sub := f.activeSubscription(t, store, db_models.PlanGold)
	require.NoError(t, f.db.Model(&db_models.Subscription{}).
		Where("id = ?", sub.ID).
		Update("ends_at", utils.NowUnixSeconds()-10).Error)
	require.NoError(t, f.db.Model(&db_models.Store{}).
		Where("id = ?", store.ID).
		Update("subscription", "gold").Error)

	expired, err := svc.ExpireDue(ctx, utils.NowUnixSeconds())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	reloadedSub, err := f.subRepo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.SubStatusExpired, reloadedSub.Status)

	reloadedStore, err := f.storeRepo.GetByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.PlanBasic), reloadedStore.Subscription)

	var suspended int64
	require.NoError(t, f.db.Model(&db_models.Product{}).
		Where("store_id = ? AND status = ?", store.ID, db_models.ProductStatusSuspended).
		Count(&suspended).Error)
	assert.EqualValues(t, 3, suspended)

	var lubCategory db_models.Category
	require.NoError(t, f.db.First(&lubCategory, "id = ?", lubricants.ID).Error)
	assert.EqualValues(t, 0, lubCategory.TotalProducts)
	var fuelCategory db_models.Category
	require.NoError(t, f.db.First(&fuelCategory, "id = ?", fuels.ID).Error)
	assert.EqualValues(t, 0, fuelCategory.TotalProducts)

	// A second pass finds nothing to do.
	expired, err = svc.ExpireDue(ctx, utils.NowUnixSeconds())
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestMySubscriptionSlotUsage(t *testing.T) {
	f := newFixture(t)
	svc := newSubscriptionService(f)
	ctx := context.Background()

	owner := f.seller(t, "usage@example.com")
	store := f.activeStore(t, owner, "usage-fuels")
	category := f.category(t, "Usage Oils")
	product := f.activeProduct(t, store, category, "Usage Oil")
	sub := f.activeSubscription(t, store, db_models.PlanGold)

	fp := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         sub.Plan.PlanType,
		FeaturedAt:       utils.NowUnixSeconds(),
		IsActive:         true,
	}
	require.NoError(t, f.db.Create(fp).Error)

	resp, err := svc.MySubscription(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.FeaturedSlotsUsed)
	assert.Equal(t, 1, resp.FeaturedSlotsRemaining)
	assert.EqualValues(t, 0, resp.HotDealSlotsUsed)
	assert.Equal(t, 1, resp.HotDealSlotsRemaining)
}
