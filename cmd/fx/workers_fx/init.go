package workers_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"petromart/internal/config"
	"petromart/internal/infra"
	"petromart/internal/services"
	"petromart/internal/workers"
)

var Module = fx.Options(
	fx.Provide(provideDelayQueue, provideSweeper),
	fx.Invoke(runWorkers),
)

func provideDelayQueue(logger *zap.Logger) *workers.DelayQueue {
	return workers.NewDelayQueue(logger)
}

func provideSweeper(
	promotionService services.PromotionServiceInterface,
	subscriptionService services.SubscriptionServiceInterface,
	metrics *infra.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *workers.Sweeper {
	return workers.NewSweeper(promotionService, subscriptionService, metrics, cfg.Sweep.Interval, logger)
}

func runWorkers(lc fx.Lifecycle, queue *workers.DelayQueue, sweeper *workers.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go queue.Run(context.Background())
			go sweeper.Run(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			queue.Stop()
			sweeper.Stop()
			return nil
		},
	})
}
