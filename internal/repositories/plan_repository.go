package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petromart/internal/models/db_models"
)

type IPlanRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPlan, error)
	GetByType(ctx context.Context, planType db_models.PlanType) (*db_models.SubscriptionPlan, error)
	List(ctx context.Context, onlyActive bool) ([]db_models.SubscriptionPlan, error)
	Save(ctx context.Context, plan *db_models.SubscriptionPlan) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPlan, error) {
	var plan db_models.SubscriptionPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) GetByType(ctx context.Context, planType db_models.PlanType) (*db_models.SubscriptionPlan, error) {
	var plan db_models.SubscriptionPlan
	err := r.db.WithContext(ctx).First(&plan, "plan_type = ?", planType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) List(ctx context.Context, onlyActive bool) ([]db_models.SubscriptionPlan, error) {
	var plans []db_models.SubscriptionPlan
	query := r.db.WithContext(ctx).Order("price_minor ASC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepository) Save(ctx context.Context, plan *db_models.SubscriptionPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}
