package repositories

import (
	"context"

	"gorm.io/gorm"

	"petromart/internal/models/db_models"
)

type IAuditRepository interface {
	Record(ctx context.Context, entry *db_models.AuditLog) error
	List(ctx context.Context, page, pageSize int) ([]db_models.AuditLog, int64, error)
}

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) IAuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entry *db_models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) List(ctx context.Context, page, pageSize int) ([]db_models.AuditLog, int64, error) {
	var entries []db_models.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.AuditLog{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
