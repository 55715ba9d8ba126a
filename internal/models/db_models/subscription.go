package db_models

import (
	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubStatusPending  SubscriptionStatus = "pending"
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusExpired  SubscriptionStatus = "expired"
	SubStatusRejected SubscriptionStatus = "rejected"
)

type Subscription struct {
	BaseModel
	StoreID uuid.UUID `gorm:"index;not null"`
	PlanID  uuid.UUID `gorm:"index;not null"`

	// Stable human-readable identifier for this subscription period, shaped
	// SUB-<date>-<store>-<random>. Immutable once set; promotions join on it,
	// so a new subscription (new code) restarts slot accounting from zero.
	SubscriptionCode string `gorm:"uniqueIndex;not null"`

	Status     SubscriptionStatus `gorm:"index;default:pending"`
	StartsAt   int64
	EndsAt     int64
	ApprovedAt *int64

	Store Store            `gorm:"foreignKey:StoreID"`
	Plan  SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
