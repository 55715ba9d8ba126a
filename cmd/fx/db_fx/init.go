package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"petromart/internal/config"
	"petromart/internal/infra"
)

var Module = fx.Provide(provideDB)

func provideDB(cfg *config.Config, lc fx.Lifecycle) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() error {
		return infra.ClosePostgresql(db)
	}))
	return db, nil
}
