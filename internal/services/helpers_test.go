package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petromart/internal/infra"
	"petromart/internal/models/db_models"
	"petromart/internal/repositories"
	"petromart/internal/testutil"
	"petromart/pkg/utils"
)

type nopMail struct{}

func (nopMail) SendSubscriptionApproved(string, string, string, int64) error { return nil }
func (nopMail) SendSubscriptionExpired(string, string) error                 { return nil }
func (nopMail) SendPromotionExpired(string, string, string) error            { return nil }
func (nopMail) SendDocumentReviewed(string, string, string, string) error    { return nil }
func (nopMail) SendPasswordReset(string, string) error                       { return nil }

func newTestMetrics() *infra.Metrics {
	return infra.NewMetrics(prometheus.NewRegistry())
}

type fixture struct {
	db *gorm.DB

	accountRepo  repositories.IAccountRepository
	storeRepo    repositories.IStoreRepository
	categoryRepo repositories.ICategoryRepository
	productRepo  repositories.IProductRepository
	planRepo     repositories.IPlanRepository
	subRepo      repositories.ISubscriptionRepository
	promoRepo    repositories.IPromotionRepository
	reportRepo   repositories.IReportRepository
	auditRepo    repositories.IAuditRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	return &fixture{
		db:           db,
		accountRepo:  repositories.NewAccountRepository(db),
		storeRepo:    repositories.NewStoreRepository(db),
		categoryRepo: repositories.NewCategoryRepository(db),
		productRepo:  repositories.NewProductRepository(db),
		planRepo:     repositories.NewPlanRepository(db),
		subRepo:      repositories.NewSubscriptionRepository(db),
		promoRepo:    repositories.NewPromotionRepository(db),
		reportRepo:   repositories.NewReportRepository(db),
		auditRepo:    repositories.NewAuditRepository(db),
	}
}

func (f *fixture) seller(t *testing.T, email string) *db_models.Account {
	t.Helper()
	account := &db_models.Account{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Test Seller",
		Role:         db_models.RoleSeller,
		Status:       db_models.AccountStatusActive,
	}
	require.NoError(t, f.accountRepo.Create(context.Background(), account))
	return account
}

func (f *fixture) activeStore(t *testing.T, owner *db_models.Account, slug string) *db_models.Store {
	t.Helper()
	store := &db_models.Store{
		OwnerID:      owner.ID,
		Name:         "Store " + slug,
		Slug:         slug,
		Subscription: string(db_models.PlanBasic),
		Status:       db_models.StoreStatusActive,
	}
	require.NoError(t, f.storeRepo.Create(context.Background(), store))
	return store
}

func (f *fixture) category(t *testing.T, name string) *db_models.Category {
	t.Helper()
	category := &db_models.Category{Name: name, Slug: utils.Slugify(name)}
	require.NoError(t, f.categoryRepo.Create(context.Background(), category))
	return category
}

func (f *fixture) activeProduct(t *testing.T, store *db_models.Store, category *db_models.Category, name string) *db_models.Product {
	t.Helper()
	product := &db_models.Product{
		StoreID:    store.ID,
		CategoryID: category.ID,
		Name:       name,
		Slug:       utils.Slugify(name),
		Unit:       "barrel",
		PriceMinor: 10000,
		Quantity:   100,
		Status:     db_models.ProductStatusActive,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	return product
}

func (f *fixture) plan(t *testing.T, planType db_models.PlanType) *db_models.SubscriptionPlan {
	t.Helper()
	plan, err := f.planRepo.GetByType(context.Background(), planType)
	require.NoError(t, err)
	require.NotNil(t, plan)
	return plan
}

// activeSubscription creates an approved subscription running from now for
// the plan's full duration.
func (f *fixture) activeSubscription(t *testing.T, store *db_models.Store, planType db_models.PlanType) *db_models.Subscription {
	t.Helper()
	plan := f.plan(t, planType)

	code, err := utils.NewSubscriptionCode(store.ID, utils.FromUnixSeconds(utils.NowUnixSeconds()))
	require.NoError(t, err)

	now := utils.NowUnixSeconds()
	sub := &db_models.Subscription{
		StoreID:          store.ID,
		PlanID:           plan.ID,
		SubscriptionCode: code,
		Status:           db_models.SubStatusActive,
		StartsAt:         now,
		EndsAt:           now + int64(plan.DurationDays)*86400,
		ApprovedAt:       &now,
	}
	require.NoError(t, f.subRepo.Create(context.Background(), sub))
	sub.Plan = *plan
	return sub
}

func (f *fixture) expireSubscriptionRow(t *testing.T, sub *db_models.Subscription, endsAt int64) {
	t.Helper()
	require.NoError(t, f.db.Model(&db_models.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(map[string]interface{}{"status": db_models.SubStatusExpired, "ends_at": endsAt}).Error)
	sub.Status = db_models.SubStatusExpired
	sub.EndsAt = endsAt
}

func testLogger() *zap.Logger { return zap.NewNop() }
