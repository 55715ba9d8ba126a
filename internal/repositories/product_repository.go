package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petromart/internal/models/db_models"
)

type IProductRepository interface {
	Create(ctx context.Context, product *db_models.Product) error
	Update(ctx context.Context, product *db_models.Product) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ProductStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Product, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, page, pageSize int) ([]db_models.Product, int64, error)
	Search(ctx context.Context, query string, categoryID *uuid.UUID, page, pageSize int) ([]db_models.Product, int64, error)
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) IProductRepository {
	return &ProductRepository{db: db}
}

func counted(status db_models.ProductStatus) bool {
	return status == db_models.ProductStatusActive
}

func adjustCategoryCount(tx *gorm.DB, categoryID uuid.UUID, delta int) error {
	return tx.Model(&db_models.Category{}).
		Where("id = ?", categoryID).
		Update("total_products", gorm.Expr("total_products + ?", delta)).Error
}

// Create inserts the product and keeps Category.TotalProducts in sync inside
// the same transaction. The counter only tracks active products.
func (r *ProductRepository) Create(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if counted(product.Status) {
			return adjustCategoryCount(tx, product.CategoryID, 1)
		}
		return nil
	})
}

func (r *ProductRepository) Update(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.Product
		if err := tx.First(&existing, "id = ?", product.ID).Error; err != nil {
			return err
		}

		if err := tx.Save(product).Error; err != nil {
			return err
		}

		wasCounted, isCounted := counted(existing.Status), counted(product.Status)
		switch {
		case wasCounted && !isCounted:
			return adjustCategoryCount(tx, existing.CategoryID, -1)
		case !wasCounted && isCounted:
			return adjustCategoryCount(tx, product.CategoryID, 1)
		case wasCounted && isCounted && existing.CategoryID != product.CategoryID:
			if err := adjustCategoryCount(tx, existing.CategoryID, -1); err != nil {
				return err
			}
			return adjustCategoryCount(tx, product.CategoryID, 1)
		}
		return nil
	})
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ProductStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}
		if existing.Status == status {
			return nil
		}

		if err := tx.Model(&db_models.Product{}).
			Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return err
		}

		switch {
		case counted(existing.Status) && !counted(status):
			return adjustCategoryCount(tx, existing.CategoryID, -1)
		case !counted(existing.Status) && counted(status):
			return adjustCategoryCount(tx, existing.CategoryID, 1)
		}
		return nil
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		if counted(existing.Status) {
			return adjustCategoryCount(tx, existing.CategoryID, -1)
		}
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, page, pageSize int) ([]db_models.Product, int64, error) {
	var products []db_models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.Product{}).Where("store_id = ?", storeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Search(ctx context.Context, search string, categoryID *uuid.UUID, page, pageSize int) ([]db_models.Product, int64, error) {
	var products []db_models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.Product{}).
		Where("status = ?", db_models.ProductStatusActive)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Product{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}
