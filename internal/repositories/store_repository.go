package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petromart/internal/models/db_models"
)

type IStoreRepository interface {
	Create(ctx context.Context, store *db_models.Store) error
	Update(ctx context.Context, store *db_models.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Store, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Store, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.Store, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.StoreStatus) error
	List(ctx context.Context, page, pageSize int) ([]db_models.Store, int64, error)

	CreateDocument(ctx context.Context, doc *db_models.StoreDocument) error
	GetDocumentByID(ctx context.Context, id uuid.UUID) (*db_models.StoreDocument, error)
	ListDocumentsByStore(ctx context.Context, storeID uuid.UUID) ([]db_models.StoreDocument, error)
	ReviewDocument(ctx context.Context, id uuid.UUID, status db_models.DocumentStatus, note string, reviewedAt int64) error
}

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) IStoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *db_models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *StoreRepository) Update(ctx context.Context, store *db_models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Store, error) {
	var store db_models.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Store, error) {
	var store db_models.Store
	err := r.db.WithContext(ctx).First(&store, "owner_id = ?", ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Store, error) {
	var store db_models.Store
	err := r.db.WithContext(ctx).First(&store, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.StoreStatus) error {
	return r.db.WithContext(ctx).Model(&db_models.Store{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *StoreRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Store, int64, error) {
	var stores []db_models.Store
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.Store{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *StoreRepository) CreateDocument(ctx context.Context, doc *db_models.StoreDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *StoreRepository) GetDocumentByID(ctx context.Context, id uuid.UUID) (*db_models.StoreDocument, error) {
	var doc db_models.StoreDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *StoreRepository) ListDocumentsByStore(ctx context.Context, storeID uuid.UUID) ([]db_models.StoreDocument, error) {
	var docs []db_models.StoreDocument
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *StoreRepository) ReviewDocument(ctx context.Context, id uuid.UUID, status db_models.DocumentStatus, note string, reviewedAt int64) error {
	return r.db.WithContext(ctx).Model(&db_models.StoreDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"review_note": note,
			"reviewed_at": reviewedAt,
		}).Error
}
