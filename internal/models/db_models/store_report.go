package db_models

import (
	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusOpen      ReportStatus = "open"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type StoreReport struct {
	BaseModel
	StoreID    uuid.UUID `gorm:"index;not null"`
	ReporterID uuid.UUID `gorm:"index;not null"`

	Reason  string `gorm:"not null"`
	Details string

	Status     ReportStatus `gorm:"index;default:open"`
	Resolution string
	ResolvedAt *int64

	Store    Store   `gorm:"foreignKey:StoreID"`
	Reporter Account `gorm:"foreignKey:ReporterID"`
}
