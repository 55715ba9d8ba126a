package response_models

import "github.com/google/uuid"

type FeaturedProductResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	StoreID          uuid.UUID `json:"store_id"`
	SubscriptionCode string    `json:"subscription_code"`
	PlanType         string    `json:"plan_type"`
	FeaturedAt       int64     `json:"featured_at"`
	FinishTime       *int64    `json:"finish_time,omitempty"`
	RotatedOutAt     *int64    `json:"rotated_out_at,omitempty"`
	IsActive         bool      `json:"is_active"`
	RemainingSlots   int       `json:"remaining_slots"`
}

type HotDealResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name,omitempty"`
	StoreID            uuid.UUID `json:"store_id"`
	SubscriptionCode   string    `json:"subscription_code"`
	PlanType           string    `json:"plan_type"`
	OriginalPrice      int64     `json:"original_price"`
	DealPrice          int64     `json:"deal_price"`
	DiscountPercentage float64   `json:"discount_percentage"`
	DealStartAt        int64     `json:"deal_start_at"`
	DealEndAt          int64     `json:"deal_end_at"`
	IsActive           bool      `json:"is_active"`
	CurrentlyActive    bool      `json:"currently_active"`
	RemainingSlots     int       `json:"remaining_slots"`
}

type StorePromotionsResponse struct {
	Featured []FeaturedProductResponse `json:"featured"`
	HotDeals []HotDealResponse         `json:"hot_deals"`

	FeaturedSlotsRemaining int `json:"featured_slots_remaining"`
	HotDealSlotsRemaining  int `json:"hot_deal_slots_remaining"`
}
