package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"petromart/internal/models/db_models"
	"petromart/pkg/utils"
)

// IPromotionRepository owns both promotion kinds. Slot accounting counts
// active AND inactive rows per subscription_code: expiry never frees a slot,
// only a new subscription code does.
type IPromotionRepository interface {
	CreateFeaturedWithLimit(ctx context.Context, fp *db_models.FeaturedProduct, subscriptionID uuid.UUID, maxSlots int) (int, error)
	CreateHotDealWithLimit(ctx context.Context, deal *db_models.HotDeal, subscriptionID uuid.UUID, maxSlots int) (int, error)

	CountFeaturedByCode(ctx context.Context, code string) (int64, error)
	CountHotDealsByCode(ctx context.Context, code string) (int64, error)

	GetFeaturedByID(ctx context.Context, id uuid.UUID) (*db_models.FeaturedProduct, error)
	GetHotDealByID(ctx context.Context, id uuid.UUID) (*db_models.HotDeal, error)

	ListActiveFeatured(ctx context.Context, limit int) ([]db_models.FeaturedProduct, error)
	ListCurrentHotDeals(ctx context.Context, now int64, limit int) ([]db_models.HotDeal, error)
	ListFeaturedByStore(ctx context.Context, storeID uuid.UUID) ([]db_models.FeaturedProduct, error)
	ListHotDealsByStore(ctx context.Context, storeID uuid.UUID) ([]db_models.HotDeal, error)

	FindActiveFeatured(ctx context.Context) ([]db_models.FeaturedProduct, error)
	DeactivateFeatured(ctx context.Context, ids []uuid.UUID, now int64) (int64, error)
	DeactivateExpiredHotDeals(ctx context.Context, now int64) (int64, error)

	DeactivateFeaturedByID(ctx context.Context, id uuid.UUID, now int64) (bool, error)
	DeactivateHotDealByID(ctx context.Context, id uuid.UUID, now int64) (bool, error)
}

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) IPromotionRepository {
	return &PromotionRepository{db: db}
}

// lockSubscription serializes concurrent slot checks on the same
// subscription. Row locks are a postgres feature; the sqlite test dialect
// relies on the service-level keyed mutex instead.
func lockSubscription(tx *gorm.DB, subscriptionID uuid.UUID) error {
	query := tx.Model(&db_models.Subscription{})
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var sub db_models.Subscription
	return query.First(&sub, "id = ?", subscriptionID).Error
}

func (r *PromotionRepository) CreateFeaturedWithLimit(ctx context.Context, fp *db_models.FeaturedProduct, subscriptionID uuid.UUID, maxSlots int) (int, error) {
	remaining := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSubscription(tx, subscriptionID); err != nil {
			return err
		}

		var count int64
		if err := tx.Unscoped().Model(&db_models.FeaturedProduct{}).
			Where("subscription_code = ?", fp.SubscriptionCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(maxSlots) {
			return utils.ErrSlotLimitReached
		}

		if err := tx.Create(fp).Error; err != nil {
			return err
		}
		remaining = maxSlots - int(count) - 1
		return nil
	})
	return remaining, err
}

func (r *PromotionRepository) CreateHotDealWithLimit(ctx context.Context, deal *db_models.HotDeal, subscriptionID uuid.UUID, maxSlots int) (int, error) {
	remaining := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSubscription(tx, subscriptionID); err != nil {
			return err
		}

		var count int64
		if err := tx.Unscoped().Model(&db_models.HotDeal{}).
			Where("subscription_code = ?", deal.SubscriptionCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(maxSlots) {
			return utils.ErrSlotLimitReached
		}

		if err := tx.Create(deal).Error; err != nil {
			return err
		}
		remaining = maxSlots - int(count) - 1
		return nil
	})
	return remaining, err
}

func (r *PromotionRepository) CountFeaturedByCode(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.FeaturedProduct{}).
		Where("subscription_code = ?", code).
		Count(&count).Error
	return count, err
}

func (r *PromotionRepository) CountHotDealsByCode(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.HotDeal{}).
		Where("subscription_code = ?", code).
		Count(&count).Error
	return count, err
}

func (r *PromotionRepository) GetFeaturedByID(ctx context.Context, id uuid.UUID) (*db_models.FeaturedProduct, error) {
	var fp db_models.FeaturedProduct
	err := r.db.WithContext(ctx).First(&fp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fp, nil
}

func (r *PromotionRepository) GetHotDealByID(ctx context.Context, id uuid.UUID) (*db_models.HotDeal, error) {
	var deal db_models.HotDeal
	err := r.db.WithContext(ctx).First(&deal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

func (r *PromotionRepository) ListActiveFeatured(ctx context.Context, limit int) ([]db_models.FeaturedProduct, error) {
	var fps []db_models.FeaturedProduct
	err := r.db.WithContext(ctx).Preload("Product").
		Where("is_active = ?", true).
		Order("featured_at DESC").
		Limit(limit).
		Find(&fps).Error
	if err != nil {
		return nil, err
	}
	return fps, nil
}

func (r *PromotionRepository) ListCurrentHotDeals(ctx context.Context, now int64, limit int) ([]db_models.HotDeal, error) {
	var deals []db_models.HotDeal
	err := r.db.WithContext(ctx).Preload("Product").
		Where("is_active = ? AND deal_start_at <= ? AND deal_end_at >= ?", true, now, now).
		Order("deal_end_at ASC").
		Limit(limit).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *PromotionRepository) ListFeaturedByStore(ctx context.Context, storeID uuid.UUID) ([]db_models.FeaturedProduct, error) {
	var fps []db_models.FeaturedProduct
	err := r.db.WithContext(ctx).Preload("Product").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&fps).Error
	if err != nil {
		return nil, err
	}
	return fps, nil
}

func (r *PromotionRepository) ListHotDealsByStore(ctx context.Context, storeID uuid.UUID) ([]db_models.HotDeal, error) {
	var deals []db_models.HotDeal
	err := r.db.WithContext(ctx).Preload("Product").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *PromotionRepository) FindActiveFeatured(ctx context.Context) ([]db_models.FeaturedProduct, error) {
	var fps []db_models.FeaturedProduct
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&fps).Error
	if err != nil {
		return nil, err
	}
	return fps, nil
}

// DeactivateFeatured rotates out the given rows. The is_active guard makes
// the update idempotent: rows already rotated out are untouched.
func (r *PromotionRepository) DeactivateFeatured(ctx context.Context, ids []uuid.UUID, now int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&db_models.FeaturedProduct{}).
		Where("id IN ? AND is_active = ?", ids, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"rotated_out_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *PromotionRepository) DeactivateExpiredHotDeals(ctx context.Context, now int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&db_models.HotDeal{}).
		Where("is_active = ? AND deal_end_at < ?", true, now).
		Updates(map[string]interface{}{
			"is_active":      false,
			"deactivated_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *PromotionRepository) DeactivateFeaturedByID(ctx context.Context, id uuid.UUID, now int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&db_models.FeaturedProduct{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"rotated_out_at": now,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *PromotionRepository) DeactivateHotDealByID(ctx context.Context, id uuid.UUID, now int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&db_models.HotDeal{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"deactivated_at": now,
		})
	return res.RowsAffected > 0, res.Error
}
