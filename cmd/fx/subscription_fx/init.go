package subscription_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petromart/internal/infra"
	"petromart/internal/infra/kafka"
	"petromart/internal/repositories"
	"petromart/internal/services"
)

var Module = fx.Provide(
	providePlanRepo, provideSubscriptionRepo,
	providePlanService, provideSubscriptionService)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.ISubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository) services.PlanServiceInterface {
	return services.NewPlanService(planRepo)
}

func provideSubscriptionService(
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	storeRepo repositories.IStoreRepository,
	accountRepo repositories.IAccountRepository,
	promoRepo repositories.IPromotionRepository,
	auditRepo repositories.IAuditRepository,
	mailService services.IMailService,
	publisher kafka.EventPublisher,
	metrics *infra.Metrics,
	logger *zap.Logger,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(
		subRepo, planRepo, storeRepo, accountRepo, promoRepo, auditRepo,
		mailService, publisher, metrics, logger)
}
