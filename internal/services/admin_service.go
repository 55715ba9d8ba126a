package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

type AdminServiceInterface interface {
	ListStores(ctx context.Context, page, pageSize int) ([]response_models.StoreResponse, int64, error)
	ReviewDocument(ctx context.Context, adminID, documentID string, req request_models.ReviewDocumentRequest) error
	SuspendStore(ctx context.Context, adminID, storeID string) error
	ReactivateStore(ctx context.Context, adminID, storeID string) error
	ListAuditLog(ctx context.Context, page, pageSize int) ([]response_models.AuditLogResponse, int64, error)
}

type AdminService struct {
	storeRepo   repositories.IStoreRepository
	accountRepo repositories.IAccountRepository
	auditRepo   repositories.IAuditRepository
	mail        IMailService
	logger      *zap.Logger
}

func NewAdminService(
	storeRepo repositories.IStoreRepository,
	accountRepo repositories.IAccountRepository,
	auditRepo repositories.IAuditRepository,
	mail IMailService,
	logger *zap.Logger,
) AdminServiceInterface {
	return &AdminService{
		storeRepo:   storeRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		mail:        mail,
		logger:      logger,
	}
}

func (s *AdminService) ListStores(ctx context.Context, page, pageSize int) ([]response_models.StoreResponse, int64, error) {
	stores, total, err := s.storeRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	out := make([]response_models.StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, toStoreResponse(&stores[i]))
	}
	return out, total, nil
}

// ReviewDocument settles a pending compliance document. Approval of any
// document activates a store still in pending; rejection leaves the store
// as it was.
func (s *AdminService) ReviewDocument(ctx context.Context, adminID, documentID string, req request_models.ReviewDocumentRequest) error {
	admin, err := parseUUID(adminID)
	if err != nil {
		return utils.ErrForbidden
	}
	id, err := parseUUID(documentID)
	if err != nil {
		return utils.RecordNotFound
	}
	doc, err := s.storeRepo.GetDocumentByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if doc == nil {
		return utils.RecordNotFound
	}
	if doc.Status != db_models.DocumentStatusPending {
		return utils.ErrForbidden
	}

	now := utils.NowUnixSeconds()
	status := db_models.DocumentStatus(req.Status)
	if err := s.storeRepo.ReviewDocument(ctx, id, status, req.Note, now); err != nil {
		return utils.ErrDatabaseError
	}

	if status == db_models.DocumentStatusApproved {
		store, err := s.storeRepo.GetByID(ctx, doc.StoreID)
		if err == nil && store != nil && store.Status == db_models.StoreStatusPending {
			if err := s.storeRepo.UpdateStatus(ctx, store.ID, db_models.StoreStatusActive); err != nil {
				s.logger.Error("store activation failed",
					zap.String("store_id", store.ID.String()), zap.Error(err))
			}
		}
	}

	s.auditStore(ctx, admin, "document.review", doc.StoreID, map[string]string{
		"document_id": doc.ID.String(),
		"doc_type":    doc.DocType,
		"status":      req.Status,
	})
	s.notifyDocumentReviewed(doc.StoreID, doc.DocType, req.Status, req.Note)
	return nil
}

func (s *AdminService) SuspendStore(ctx context.Context, adminID, storeID string) error {
	return s.setStoreStatus(ctx, adminID, storeID, db_models.StoreStatusSuspended, "store.suspend")
}

func (s *AdminService) ReactivateStore(ctx context.Context, adminID, storeID string) error {
	return s.setStoreStatus(ctx, adminID, storeID, db_models.StoreStatusActive, "store.reactivate")
}

func (s *AdminService) setStoreStatus(ctx context.Context, adminID, storeID string, status db_models.StoreStatus, action string) error {
	admin, err := parseUUID(adminID)
	if err != nil {
		return utils.ErrForbidden
	}
	id, err := parseUUID(storeID)
	if err != nil {
		return utils.RecordNotFound
	}
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if store == nil {
		return utils.RecordNotFound
	}
	if store.Status == status {
		return nil
	}

	if err := s.storeRepo.UpdateStatus(ctx, id, status); err != nil {
		return utils.ErrDatabaseError
	}
	s.auditStore(ctx, admin, action, id, map[string]string{
		"from": string(store.Status),
		"to":   string(status),
	})
	return nil
}

func (s *AdminService) ListAuditLog(ctx context.Context, page, pageSize int) ([]response_models.AuditLogResponse, int64, error) {
	entries, total, err := s.auditRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	out := make([]response_models.AuditLogResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		out = append(out, response_models.AuditLogResponse{
			ID:         entry.ID,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Metadata:   json.RawMessage(entry.Metadata),
			CreatedAt:  entry.CreatedAt,
		})
	}
	return out, total, nil
}

func (s *AdminService) auditStore(ctx context.Context, actorID uuid.UUID, action string, storeID uuid.UUID, meta map[string]string) {
	raw, _ := json.Marshal(meta)
	entry := &db_models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: "store",
		EntityID:   storeID.String(),
		Metadata:   datatypes.JSON(raw),
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.logger.Error("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *AdminService) notifyDocumentReviewed(storeID uuid.UUID, docType, status, note string) {
	go func() {
		ctx := context.Background()
		store, err := s.storeRepo.GetByID(ctx, storeID)
		if err != nil || store == nil {
			return
		}
		account, err := s.accountRepo.GetByID(ctx, store.OwnerID)
		if err != nil || account == nil {
			return
		}
		if err := s.mail.SendDocumentReviewed(account.Email, docType, status, note); err != nil {
			s.logger.Warn("document review mail failed", zap.Error(err))
		}
	}()
}
