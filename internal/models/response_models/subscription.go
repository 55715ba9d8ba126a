package response_models

import "github.com/google/uuid"

type PlanResponse struct {
	ID               uuid.UUID `json:"id"`
	PlanType         string    `json:"plan_type"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	PriceMinor       int64     `json:"price_minor"`
	Currency         string    `json:"currency"`
	DurationDays     int       `json:"duration_days"`
	ProductLimit     int       `json:"product_limit"`
	MaxFeaturedSlots int       `json:"max_featured_slots"`
	MaxHotDealSlots  int       `json:"max_hot_deal_slots"`
	IsActive         bool      `json:"is_active"`
}

type SubscriptionResponse struct {
	ID               uuid.UUID `json:"id"`
	StoreID          uuid.UUID `json:"store_id"`
	SubscriptionCode string    `json:"subscription_code"`
	PlanType         string    `json:"plan_type"`
	Status           string    `json:"status"`
	StartsAt         int64     `json:"starts_at,omitempty"`
	EndsAt           int64     `json:"ends_at,omitempty"`

	// Slot accounting for the dashboard: used counts include inactive rows.
	FeaturedSlotsUsed      int64 `json:"featured_slots_used"`
	FeaturedSlotsRemaining int   `json:"featured_slots_remaining"`
	HotDealSlotsUsed       int64 `json:"hot_deal_slots_used"`
	HotDealSlotsRemaining  int   `json:"hot_deal_slots_remaining"`
}
