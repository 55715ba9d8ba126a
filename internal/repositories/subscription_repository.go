package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petromart/internal/models/db_models"
)

type ISubscriptionRepository interface {
	Create(ctx context.Context, sub *db_models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error)
	GetByCode(ctx context.Context, code string) (*db_models.Subscription, error)

	// CurrentActiveForStore resolves the subscription that currently governs
	// a store's slots and limits: the most recent active row, tie-broken by
	// created_at then id so a data anomaly with two active rows still yields
	// a deterministic answer. Returns nil when the store is on basic.
	CurrentActiveForStore(ctx context.Context, storeID uuid.UUID) (*db_models.Subscription, error)

	LatestForStore(ctx context.Context, storeID uuid.UUID) (*db_models.Subscription, error)
	ListByStatus(ctx context.Context, status db_models.SubscriptionStatus, page, pageSize int) ([]db_models.Subscription, int64, error)

	Approve(ctx context.Context, id uuid.UUID, startsAt, endsAt int64, storeTier string) error
	Reject(ctx context.Context, id uuid.UUID) error

	FindExpired(ctx context.Context, now int64) ([]db_models.Subscription, error)
	ExpireCascade(ctx context.Context, sub *db_models.Subscription) error
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").Preload("Store").First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) GetByCode(ctx context.Context, code string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").First(&sub, "subscription_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) CurrentActiveForStore(ctx context.Context, storeID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("store_id = ? AND status = ?", storeID, db_models.SubStatusActive).
		Order("created_at DESC").Order("id DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) LatestForStore(ctx context.Context, storeID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("store_id = ?", storeID).
		Order("created_at DESC").Order("id DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) ListByStatus(ctx context.Context, status db_models.SubscriptionStatus, page, pageSize int) ([]db_models.Subscription, int64, error) {
	var subs []db_models.Subscription
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.Subscription{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Plan").Preload("Store").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Approve activates a pending subscription and stamps the store's current
// tier in the same transaction.
func (r *SubscriptionRepository) Approve(ctx context.Context, id uuid.UUID, startsAt, endsAt int64, storeTier string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub db_models.Subscription
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&db_models.Subscription{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":      db_models.SubStatusActive,
				"starts_at":   startsAt,
				"ends_at":     endsAt,
				"approved_at": startsAt,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.Store{}).
			Where("id = ?", sub.StoreID).
			Update("subscription", storeTier).Error
	})
}

func (r *SubscriptionRepository) Reject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&db_models.Subscription{}).
		Where("id = ?", id).
		Update("status", db_models.SubStatusRejected).Error
}

func (r *SubscriptionRepository) FindExpired(ctx context.Context, now int64) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").Preload("Store").
		Where("status = ? AND ends_at <= ?", db_models.SubStatusActive, now).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// ExpireCascade flips one subscription to expired, resets the store tier to
// basic and suspends the store's whole active catalog, all in one
// transaction so a crash cannot leave a half-applied state. Re-running on an
// already-expired subscription is a no-op.
func (r *SubscriptionRepository) ExpireCascade(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Subscription{}).
			Where("id = ? AND status = ?", sub.ID, db_models.SubStatusActive).
			Update("status", db_models.SubStatusExpired)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&db_models.Store{}).
			Where("id = ?", sub.StoreID).
			Update("subscription", string(db_models.PlanBasic)).Error; err != nil {
			return err
		}

		// Suspending the catalog removes those products from the active
		// counts, so the category counters move in the same transaction.
		var perCategory []struct {
			CategoryID uuid.UUID
			Cnt        int64
		}
		if err := tx.Model(&db_models.Product{}).
			Select("category_id, COUNT(*) AS cnt").
			Where("store_id = ? AND status = ?", sub.StoreID, db_models.ProductStatusActive).
			Group("category_id").
			Scan(&perCategory).Error; err != nil {
			return err
		}
		for _, row := range perCategory {
			if err := tx.Model(&db_models.Category{}).
				Where("id = ?", row.CategoryID).
				Update("total_products", gorm.Expr("total_products - ?", row.Cnt)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&db_models.Product{}).
			Where("store_id = ? AND status = ?", sub.StoreID, db_models.ProductStatusActive).
			Update("status", db_models.ProductStatusSuspended).Error
	})
}
