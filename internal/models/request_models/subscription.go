package request_models

type SubscribeRequest struct {
	PlanType string `json:"plan_type" binding:"required,oneof=silver gold platinum"`
}

type UpsertPlanRequest struct {
	PlanType         string `json:"plan_type" binding:"required,oneof=basic silver gold platinum"`
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	PriceMinor       int64  `json:"price_minor" binding:"gte=0"`
	Currency         string `json:"currency" binding:"required,len=3"`
	DurationDays     int    `json:"duration_days" binding:"gte=0"`
	ProductLimit     int    `json:"product_limit" binding:"gte=0"`
	MaxFeaturedSlots int    `json:"max_featured_slots" binding:"gte=0"`
	MaxHotDealSlots  int    `json:"max_hot_deal_slots" binding:"gte=0"`
	IsActive         *bool  `json:"is_active"`
}
