package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petromart/internal/repositories"
	"petromart/internal/services"
	mem "petromart/pkg/memcache"
	"petromart/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.IAccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.IAccountRepository,
	tokens *utils.TokenMaker,
	resetTokens mem.ResetTokenStore,
	mailService services.IMailService,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, resetTokens, mailService, logger)
}
