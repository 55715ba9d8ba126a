package store_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petromart/internal/repositories"
	"petromart/internal/services"
)

var Module = fx.Provide(
	provideStoreRepo, provideReportRepo, provideAuditRepo,
	provideStoreService, provideReportService, provideAdminService)

func provideStoreRepo(db *gorm.DB) repositories.IStoreRepository {
	return repositories.NewStoreRepository(db)
}

func provideReportRepo(db *gorm.DB) repositories.IReportRepository {
	return repositories.NewReportRepository(db)
}

func provideAuditRepo(db *gorm.DB) repositories.IAuditRepository {
	return repositories.NewAuditRepository(db)
}

func provideStoreService(storeRepo repositories.IStoreRepository, logger *zap.Logger) services.StoreServiceInterface {
	return services.NewStoreService(storeRepo, logger)
}

func provideReportService(
	reportRepo repositories.IReportRepository,
	storeRepo repositories.IStoreRepository,
	auditRepo repositories.IAuditRepository,
	logger *zap.Logger,
) services.ReportServiceInterface {
	return services.NewReportService(reportRepo, storeRepo, auditRepo, logger)
}

func provideAdminService(
	storeRepo repositories.IStoreRepository,
	accountRepo repositories.IAccountRepository,
	auditRepo repositories.IAuditRepository,
	mailService services.IMailService,
	logger *zap.Logger,
) services.AdminServiceInterface {
	return services.NewAdminService(storeRepo, accountRepo, auditRepo, mailService, logger)
}
