package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"petromart/internal/config"
	"petromart/internal/models/db_models"
)

func InitPostgresql(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.Dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema and seeds the plan catalog. Shared with the
// test helpers so both paths create identical tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Store{},
		&db_models.StoreDocument{},
		&db_models.Category{},
		&db_models.Product{},
		&db_models.SubscriptionPlan{},
		&db_models.Subscription{},
		&db_models.FeaturedProduct{},
		&db_models.HotDeal{},
		&db_models.StoreReport{},
		&db_models.AuditLog{},
	); err != nil {
		return err
	}
	return seedPlans(db)
}

func seedPlans(db *gorm.DB) error {
	for _, plan := range db_models.DefaultPlans() {
		p := plan
		if err := db.Where("plan_type = ?", p.PlanType).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
