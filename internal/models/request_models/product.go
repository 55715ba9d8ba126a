package request_models

type CreateProductRequest struct {
	CategoryID  string   `json:"category_id" binding:"required,uuid"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Unit        string   `json:"unit" binding:"required"`
	PriceMinor  int64    `json:"price_minor" binding:"required,gt=0"`
	Quantity    int64    `json:"quantity" binding:"gte=0"`
	Images      []string `json:"images"`
}

type UpdateProductRequest struct {
	CategoryID  string   `json:"category_id" binding:"omitempty,uuid"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	PriceMinor  int64    `json:"price_minor" binding:"omitempty,gt=0"`
	Quantity    *int64   `json:"quantity"`
	Images      []string `json:"images"`
	Status      string   `json:"status" binding:"omitempty,oneof=active inactive"`
}
