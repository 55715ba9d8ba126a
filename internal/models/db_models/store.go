package db_models

import (
	"github.com/google/uuid"
)

type StoreStatus string

const (
	StoreStatusPending   StoreStatus = "pending"
	StoreStatusActive    StoreStatus = "active"
	StoreStatusSuspended StoreStatus = "suspended"
)

type Store struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"index;not null"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description string
	Phone       string
	Email       string
	Address     string

	// Current plan tier, kept in sync with the latest approved subscription.
	// Falls back to "basic" when a subscription expires.
	Subscription string      `gorm:"default:basic"`
	Status       StoreStatus `gorm:"index;default:pending"`

	Owner Account `gorm:"foreignKey:OwnerID"`
}
