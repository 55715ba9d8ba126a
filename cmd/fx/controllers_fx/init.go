package controllers_fx

import (
	"go.uber.org/fx"

	"petromart/internal/api/controllers"
	"petromart/internal/workers"
)

var Module = fx.Options(
	fx.Provide(func(s *workers.Sweeper) controllers.SweepRunner { return s }),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewStoreController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewPromotionController),
	fx.Provide(controllers.NewAdminController))
