package promotion_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petromart/internal/infra"
	"petromart/internal/infra/kafka"
	"petromart/internal/repositories"
	"petromart/internal/services"
	"petromart/internal/workers"
)

var Module = fx.Provide(
	providePromotionRepo, providePromotionService)

func providePromotionRepo(db *gorm.DB) repositories.IPromotionRepository {
	return repositories.NewPromotionRepository(db)
}

func providePromotionService(
	promoRepo repositories.IPromotionRepository,
	subRepo repositories.ISubscriptionRepository,
	storeRepo repositories.IStoreRepository,
	productRepo repositories.IProductRepository,
	planRepo repositories.IPlanRepository,
	accountRepo repositories.IAccountRepository,
	mailService services.IMailService,
	publisher kafka.EventPublisher,
	metrics *infra.Metrics,
	delayQueue *workers.DelayQueue,
	logger *zap.Logger,
) services.PromotionServiceInterface {
	return services.NewPromotionService(
		promoRepo, subRepo, storeRepo, productRepo, planRepo, accountRepo,
		mailService, publisher, metrics, delayQueue, logger)
}
