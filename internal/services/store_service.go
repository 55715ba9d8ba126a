package services

import (
	"context"

	"go.uber.org/zap"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

type StoreServiceInterface interface {
	CreateStore(ctx context.Context, ownerID string, req request_models.CreateStoreRequest) (response_models.StoreResponse, error)
	UpdateStore(ctx context.Context, ownerID string, req request_models.UpdateStoreRequest) (response_models.StoreResponse, error)
	MyStore(ctx context.Context, ownerID string) (response_models.StoreResponse, error)
	GetStoreBySlug(ctx context.Context, slug string) (response_models.StoreResponse, error)

	SubmitDocument(ctx context.Context, ownerID string, req request_models.SubmitDocumentRequest) (response_models.StoreDocumentResponse, error)
	MyDocuments(ctx context.Context, ownerID string) ([]response_models.StoreDocumentResponse, error)
}

type StoreService struct {
	storeRepo repositories.IStoreRepository
	logger    *zap.Logger
}

func NewStoreService(storeRepo repositories.IStoreRepository, logger *zap.Logger) StoreServiceInterface {
	return &StoreService{storeRepo: storeRepo, logger: logger}
}

func (s *StoreService) CreateStore(ctx context.Context, ownerID string, req request_models.CreateStoreRequest) (response_models.StoreResponse, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return response_models.StoreResponse{}, utils.ErrForbidden
	}

	existing, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return response_models.StoreResponse{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.StoreResponse{}, utils.ErrStoreExists
	}

	slug := utils.Slugify(req.Name)
	if taken, err := s.storeRepo.GetBySlug(ctx, slug); err != nil {
		return response_models.StoreResponse{}, utils.ErrDatabaseError
	} else if taken != nil {
		// Disambiguate with the owner's short id rather than failing.
		slug = slug + "-" + ownerID[:8]
	}

	store := &db_models.Store{
		OwnerID:      owner,
		Name:         req.Name,
		Slug:         slug,
		Description:  req.Description,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Subscription: string(db_models.PlanBasic),
		Status:       db_models.StoreStatusPending,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return response_models.StoreResponse{}, utils.ErrDatabaseError
	}

	s.logger.Info("store created",
		zap.String("store_id", store.ID.String()),
		zap.String("owner_id", ownerID))
	return toStoreResponse(store), nil
}

func (s *StoreService) UpdateStore(ctx context.Context, ownerID string, req request_models.UpdateStoreRequest) (response_models.StoreResponse, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return response_models.StoreResponse{}, err
	}

	if req.Name != "" {
		store.Name = req.Name
	}
	if req.Description != "" {
		store.Description = req.Description
	}
	if req.Phone != "" {
		store.Phone = req.Phone
	}
	if req.Email != "" {
		store.Email = req.Email
	}
	if req.Address != "" {
		store.Address = req.Address
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return response_models.StoreResponse{}, utils.ErrDatabaseError
	}
	return toStoreResponse(store), nil
}

func (s *StoreService) MyStore(ctx context.Context, ownerID string) (response_models.StoreResponse, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return response_models.StoreResponse{}, err
	}
	return toStoreResponse(store), nil
}

func (s *StoreService) GetStoreBySlug(ctx context.Context, slug string) (response_models.StoreResponse, error) {
	store, err := s.storeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return response_models.StoreResponse{}, utils.ErrDatabaseError
	}
	if store == nil {
		return response_models.StoreResponse{}, utils.RecordNotFound
	}
	return toStoreResponse(store), nil
}

func (s *StoreService) SubmitDocument(ctx context.Context, ownerID string, req request_models.SubmitDocumentRequest) (response_models.StoreDocumentResponse, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return response_models.StoreDocumentResponse{}, err
	}

	doc := &db_models.StoreDocument{
		StoreID: store.ID,
		DocType: req.DocType,
		FileURL: req.FileURL,
		Status:  db_models.DocumentStatusPending,
	}
	if err := s.storeRepo.CreateDocument(ctx, doc); err != nil {
		return response_models.StoreDocumentResponse{}, utils.ErrDatabaseError
	}
	return toDocumentResponse(doc), nil
}

func (s *StoreService) MyDocuments(ctx context.Context, ownerID string) ([]response_models.StoreDocumentResponse, error) {
	store, err := s.ownedStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	docs, err := s.storeRepo.ListDocumentsByStore(ctx, store.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.StoreDocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, toDocumentResponse(&docs[i]))
	}
	return out, nil
}

func (s *StoreService) ownedStore(ctx context.Context, ownerID string) (*db_models.Store, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return nil, utils.ErrForbidden
	}
	store, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if store == nil {
		return nil, utils.RecordNotFound
	}
	return store, nil
}

func toStoreResponse(store *db_models.Store) response_models.StoreResponse {
	return response_models.StoreResponse{
		ID:           store.ID,
		Name:         store.Name,
		Slug:         store.Slug,
		Description:  store.Description,
		Phone:        store.Phone,
		Email:        store.Email,
		Address:      store.Address,
		Subscription: store.Subscription,
		Status:       string(store.Status),
	}
}

func toDocumentResponse(doc *db_models.StoreDocument) response_models.StoreDocumentResponse {
	return response_models.StoreDocumentResponse{
		ID:         doc.ID,
		DocType:    doc.DocType,
		FileURL:    doc.FileURL,
		Status:     string(doc.Status),
		ReviewNote: doc.ReviewNote,
		ReviewedAt: doc.ReviewedAt,
	}
}
