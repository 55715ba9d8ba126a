package catalog_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petromart/internal/repositories"
	"petromart/internal/services"
)

var Module = fx.Provide(
	provideCategoryRepo, provideProductRepo,
	provideCategoryService, provideProductService)

func provideCategoryRepo(db *gorm.DB) repositories.ICategoryRepository {
	return repositories.NewCategoryRepository(db)
}

func provideProductRepo(db *gorm.DB) repositories.IProductRepository {
	return repositories.NewProductRepository(db)
}

func provideCategoryService(categoryRepo repositories.ICategoryRepository) services.CategoryServiceInterface {
	return services.NewCategoryService(categoryRepo)
}

func provideProductService(
	productRepo repositories.IProductRepository,
	storeRepo repositories.IStoreRepository,
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	logger *zap.Logger,
) services.ProductServiceInterface {
	return services.NewProductService(productRepo, storeRepo, subRepo, planRepo, logger)
}
