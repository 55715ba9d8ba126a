package request_models

type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

type UpdateStoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

type SubmitDocumentRequest struct {
	DocType string `json:"doc_type" binding:"required"`
	FileURL string `json:"file_url" binding:"required,url"`
}

type ReportStoreRequest struct {
	StoreID string `json:"store_id" binding:"required,uuid"`
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details"`
}
