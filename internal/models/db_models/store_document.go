package db_models

import (
	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// StoreDocument is a compliance document a seller uploads for verification
// (trade license, safety certificate, etc). Files live in external storage;
// only the URL is recorded here.
type StoreDocument struct {
	BaseModel
	StoreID    uuid.UUID      `gorm:"index;not null"`
	DocType    string         `gorm:"not null"`
	FileURL    string         `gorm:"not null"`
	Status     DocumentStatus `gorm:"index;default:pending"`
	ReviewNote string
	ReviewedAt *int64

	Store Store `gorm:"foreignKey:StoreID"`
}
