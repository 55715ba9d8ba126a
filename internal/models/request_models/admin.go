package request_models

type ReviewDocumentRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Note   string `json:"note"`
}

type ResolveReportRequest struct {
	Status     string `json:"status" binding:"required,oneof=resolved dismissed"`
	Resolution string `json:"resolution"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
