package services

import (
	"context"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

type PlanServiceInterface interface {
	ListPlans(ctx context.Context, includeInactive bool) ([]response_models.PlanResponse, error)
	UpsertPlan(ctx context.Context, req request_models.UpsertPlanRequest) (response_models.PlanResponse, error)
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{planRepo: planRepo}
}

func (s *PlanService) ListPlans(ctx context.Context, includeInactive bool) ([]response_models.PlanResponse, error) {
	plans, err := s.planRepo.List(ctx, !includeInactive)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	return out, nil
}

// UpsertPlan updates a plan's pricing and ceilings in place; plan types are a
// fixed set, so an unknown type creates the row for that tier.
func (s *PlanService) UpsertPlan(ctx context.Context, req request_models.UpsertPlanRequest) (response_models.PlanResponse, error) {
	planType := db_models.PlanType(req.PlanType)
	plan, err := s.planRepo.GetByType(ctx, planType)
	if err != nil {
		return response_models.PlanResponse{}, utils.ErrDatabaseError
	}
	if plan == nil {
		plan = &db_models.SubscriptionPlan{PlanType: planType}
	}

	plan.Name = req.Name
	if req.Description != "" {
		plan.Description = &req.Description
	}
	plan.PriceMinor = req.PriceMinor
	plan.Currency = req.Currency
	plan.DurationDays = req.DurationDays
	plan.ProductLimit = req.ProductLimit
	plan.MaxFeaturedSlots = req.MaxFeaturedSlots
	plan.MaxHotDealSlots = req.MaxHotDealSlots
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	} else if plan.CreatedAt == 0 {
		plan.IsActive = true
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return response_models.PlanResponse{}, utils.ErrDatabaseError
	}
	return toPlanResponse(plan), nil
}

func toPlanResponse(plan *db_models.SubscriptionPlan) response_models.PlanResponse {
	return response_models.PlanResponse{
		ID:               plan.ID,
		PlanType:         string(plan.PlanType),
		Name:             plan.Name,
		Description:      plan.Description,
		PriceMinor:       plan.PriceMinor,
		Currency:         plan.Currency,
		DurationDays:     plan.DurationDays,
		ProductLimit:     plan.ProductLimit,
		MaxFeaturedSlots: plan.MaxFeaturedSlots,
		MaxHotDealSlots:  plan.MaxHotDealSlots,
		IsActive:         plan.IsActive,
	}
}
