package request_models

type FeatureProductRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

type CreateHotDealRequest struct {
	ProductID   string `json:"product_id" binding:"required,uuid"`
	DealPrice   int64  `json:"deal_price" binding:"required,gt=0"`
	DealStartAt int64  `json:"deal_start_at" binding:"required"`
	DealEndAt   int64  `json:"deal_end_at" binding:"required"`
}
