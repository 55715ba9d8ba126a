package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petromart/internal/models/db_models"
)

type IReportRepository interface {
	Create(ctx context.Context, report *db_models.StoreReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.StoreReport, error)
	ListByStatus(ctx context.Context, status db_models.ReportStatus, page, pageSize int) ([]db_models.StoreReport, int64, error)
	Resolve(ctx context.Context, id uuid.UUID, status db_models.ReportStatus, resolution string, resolvedAt int64) error
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) IReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *db_models.StoreReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.StoreReport, error) {
	var report db_models.StoreReport
	err := r.db.WithContext(ctx).Preload("Store").First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ListByStatus(ctx context.Context, status db_models.ReportStatus, page, pageSize int) ([]db_models.StoreReport, int64, error) {
	var reports []db_models.StoreReport
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.StoreReport{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Store").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepository) Resolve(ctx context.Context, id uuid.UUID, status db_models.ReportStatus, resolution string, resolvedAt int64) error {
	return r.db.WithContext(ctx).Model(&db_models.StoreReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"resolution":  resolution,
			"resolved_at": resolvedAt,
		}).Error
}
