package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProductStatus string

const (
	ProductStatusActive    ProductStatus = "active"
	ProductStatusInactive  ProductStatus = "inactive"
	ProductStatusSuspended ProductStatus = "suspended"
)

type Product struct {
	BaseModel
	StoreID    uuid.UUID `gorm:"index;not null"`
	CategoryID uuid.UUID `gorm:"index;not null"`

	Name        string `gorm:"not null"`
	Slug        string `gorm:"index;not null"`
	Description string
	Unit        string // "liter", "barrel", "gallon", "kg"
	PriceMinor  int64  `gorm:"not null"` // 1050 = $10.50
	Quantity    int64  `gorm:"default:0"`

	Images datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Status ProductStatus  `gorm:"index;default:active"`

	Store    Store    `gorm:"foreignKey:StoreID"`
	Category Category `gorm:"foreignKey:CategoryID"`
}
