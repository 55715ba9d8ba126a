package response_models

import "github.com/google/uuid"

type StoreResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	Subscription string    `json:"subscription"`
	Status       string    `json:"status"`
}

type StoreDocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	DocType    string    `json:"doc_type"`
	FileURL    string    `json:"file_url"`
	Status     string    `json:"status"`
	ReviewNote string    `json:"review_note,omitempty"`
	ReviewedAt *int64    `json:"reviewed_at,omitempty"`
}

type StoreReportResponse struct {
	ID         uuid.UUID `json:"id"`
	StoreID    uuid.UUID `json:"store_id"`
	StoreName  string    `json:"store_name,omitempty"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details,omitempty"`
	Status     string    `json:"status"`
	Resolution string    `json:"resolution,omitempty"`
}
