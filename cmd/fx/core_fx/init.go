package core_fx

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"petromart/internal/config"
	"petromart/internal/infra"
	"petromart/internal/infra/kafka"
	"petromart/pkg/utils"
)

var Module = fx.Provide(
	provideConfig, provideLogger, provideTokenMaker, provideMetrics, providePublisher)

func provideConfig() *config.Config {
	return config.MustLoad()
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func provideTokenMaker(cfg *config.Config) *utils.TokenMaker {
	return utils.NewTokenMaker(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideMetrics() *infra.Metrics {
	return infra.NewMetrics(prometheus.DefaultRegisterer)
}

func providePublisher(cfg *config.Config, lc fx.Lifecycle) kafka.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return kafka.NopPublisher{}
	}
	publisher := kafka.NewPublisher(cfg.Kafka.Brokers)
	lc.Append(fx.StopHook(publisher.Close))
	return publisher
}
