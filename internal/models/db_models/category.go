package db_models

type Category struct {
	BaseModel
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string

	// Denormalized count of ACTIVE products in this category. Maintained by
	// the product repository inside the same transaction as every product
	// mutation; must always equal count(products where category_id = this
	// AND status = 'active').
	TotalProducts int64 `gorm:"default:0"`
}
