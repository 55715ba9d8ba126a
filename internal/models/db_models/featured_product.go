package db_models

import (
	"github.com/google/uuid"
)

// FeaturedProduct is a paid storefront placement. The row keeps a snapshot
// of the plan tier at creation time so later plan edits never change how an
// existing placement expires.
type FeaturedProduct struct {
	BaseModel
	ProductID uuid.UUID `gorm:"index;not null"`
	StoreID   uuid.UUID `gorm:"index;not null"`

	SubscriptionCode string   `gorm:"index;not null"`
	PlanType         PlanType `gorm:"not null"`

	FeaturedAt   int64
	StartTime    *int64
	FinishTime   *int64
	RotatedOutAt *int64
	IsActive     bool `gorm:"index;default:true"`

	Product Product `gorm:"foreignKey:ProductID"`
}
