package db_models

import (
	"github.com/google/uuid"
)

type HotDeal struct {
	BaseModel
	ProductID uuid.UUID `gorm:"index;not null"`
	StoreID   uuid.UUID `gorm:"index;not null"`

	SubscriptionCode string   `gorm:"index;not null"`
	PlanType         PlanType `gorm:"not null"`

	OriginalPrice      int64   `gorm:"not null"`
	DealPrice          int64   `gorm:"not null"`
	DiscountPercentage float64 `gorm:"not null"`

	DealStartAt   int64 `gorm:"not null"`
	DealEndAt     int64 `gorm:"not null"`
	IsActive      bool  `gorm:"index;default:true"`
	ActivatedAt   int64
	DeactivatedAt *int64

	Product Product `gorm:"foreignKey:ProductID"`
}

// CurrentlyActive reports whether the deal should be shown to buyers.
// IsActive and "within window" are independent predicates: the sweep only
// owns the end-of-window flip, so a deal scheduled for the future is
// IsActive=true but not yet visible.
func (h *HotDeal) CurrentlyActive(now int64) bool {
	return h.IsActive && h.DealStartAt <= now && now <= h.DealEndAt
}
