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

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, ownerID string, req request_models.CreateProductRequest) (response_models.ProductResponse, error)
	UpdateProduct(ctx context.Context, ownerID, productID string, req request_models.UpdateProductRequest) (response_models.ProductResponse, error)
	DeleteProduct(ctx context.Context, ownerID, productID string) error
	MyProducts(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.ProductResponse, int64, error)

	GetProduct(ctx context.Context, productID string) (response_models.ProductResponse, error)
	Search(ctx context.Context, query, categoryID string, page, pageSize int) ([]response_models.ProductResponse, int64, error)
}

type ProductService struct {
	productRepo repositories.IProductRepository
	storeRepo   repositories.IStoreRepository
	subRepo     repositories.ISubscriptionRepository
	planRepo    repositories.IPlanRepository
	logger      *zap.Logger
}

func NewProductService(
	productRepo repositories.IProductRepository,
	storeRepo repositories.IStoreRepository,
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	logger *zap.Logger,
) ProductServiceInterface {
	return &ProductService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		subRepo:     subRepo,
		planRepo:    planRepo,
		logger:      logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, req request_models.CreateProductRequest) (response_models.ProductResponse, error) {
	store, err := s.activeOwnedStore(ctx, ownerID)
	if err != nil {
		return response_models.ProductResponse{}, err
	}

	limit, err := s.productLimit(ctx, store.ID)
	if err != nil {
		return response_models.ProductResponse{}, err
	}
	count, err := s.productRepo.CountByStore(ctx, store.ID)
	if err != nil {
		return response_models.ProductResponse{}, utils.ErrDatabaseError
	}
	if count >= int64(limit) {
		return response_models.ProductResponse{}, utils.ErrProductLimitReached
	}

	categoryID, err := parseUUID(req.CategoryID)
	if err != nil {
		return response_models.ProductResponse{}, utils.RecordNotFound
	}

	images, err := imagesJSON(req.Images)
	if err != nil {
		return response_models.ProductResponse{}, err
	}

	product := &db_models.Product{
		StoreID:     store.ID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Unit:        req.Unit,
		PriceMinor:  req.PriceMinor,
		Quantity:    req.Quantity,
		Images:      images,
		Status:      db_models.ProductStatusActive,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return response_models.ProductResponse{}, utils.ErrDatabaseError
	}
	return toProductResponse(product), nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, ownerID, productID string, req request_models.UpdateProductRequest) (response_models.ProductResponse, error) {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return response_models.ProductResponse{}, err
	}

	if req.CategoryID != "" {
		categoryID, err := parseUUID(req.CategoryID)
		if err != nil {
			return response_models.ProductResponse{}, utils.RecordNotFound
		}
		product.CategoryID = categoryID
	}
	if req.Name != "" {
		product.Name = req.Name
		product.Slug = utils.Slugify(req.Name)
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	if req.PriceMinor > 0 {
		product.PriceMinor = req.PriceMinor
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if len(req.Images) > 0 {
		images, err := imagesJSON(req.Images)
		if err != nil {
			return response_models.ProductResponse{}, err
		}
		product.Images = images
	}
	if req.Status != "" {
		// Sellers can only toggle active/inactive; suspension is reserved
		// for the subscription cascade and admin action.
		if product.Status == db_models.ProductStatusSuspended {
			return response_models.ProductResponse{}, utils.ErrForbidden
		}
		product.Status = db_models.ProductStatus(req.Status)
	}

	product.Category = db_models.Category{}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return response_models.ProductResponse{}, utils.ErrDatabaseError
	}
	return toProductResponse(product), nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ProductService) MyProducts(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.ProductResponse, int64, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return nil, 0, utils.ErrForbidden
	}
	store, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	if store == nil {
		return nil, 0, utils.RecordNotFound
	}

	products, total, err := s.productRepo.ListByStore(ctx, store.ID, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return toProductResponses(products), total, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (response_models.ProductResponse, error) {
	id, err := parseUUID(productID)
	if err != nil {
		return response_models.ProductResponse{}, utils.RecordNotFound
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return response_models.ProductResponse{}, utils.ErrDatabaseError
	}
	if product == nil {
		return response_models.ProductResponse{}, utils.RecordNotFound
	}
	return toProductResponse(product), nil
}

func (s *ProductService) Search(ctx context.Context, query, categoryID string, page, pageSize int) ([]response_models.ProductResponse, int64, error) {
	var catID *uuid.UUID
	if categoryID != "" {
		id, err := parseUUID(categoryID)
		if err != nil {
			return nil, 0, utils.RecordNotFound
		}
		catID = &id
	}

	products, total, err := s.productRepo.Search(ctx, query, catID, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return toProductResponses(products), total, nil
}

// productLimit resolves the store's ceiling from its current active
// subscription, falling back to the basic plan when there is none.
func (s *ProductService) productLimit(ctx context.Context, storeID uuid.UUID) (int, error) {
	sub, err := s.subRepo.CurrentActiveForStore(ctx, storeID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if sub != nil {
		return sub.Plan.ProductLimit, nil
	}

	basic, err := s.planRepo.GetByType(ctx, db_models.PlanBasic)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if basic == nil {
		return 0, nil
	}
	return basic.ProductLimit, nil
}

func (s *ProductService) activeOwnedStore(ctx context.Context, ownerID string) (*db_models.Store, error) {
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
	if store.Status != db_models.StoreStatusActive {
		return nil, utils.ErrStoreNotActive
	}
	return store, nil
}

func (s *ProductService) ownedProduct(ctx context.Context, ownerID, productID string) (*db_models.Product, error) {
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

	id, err := parseUUID(productID)
	if err != nil {
		return nil, utils.RecordNotFound
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.RecordNotFound
	}
	if product.StoreID != store.ID {
		return nil, utils.ErrForbidden
	}
	return product, nil
}

func imagesJSON(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func toProductResponse(product *db_models.Product) response_models.ProductResponse {
	var images []string
	if len(product.Images) > 0 {
		_ = json.Unmarshal(product.Images, &images)
	}
	return response_models.ProductResponse{
		ID:          product.ID,
		StoreID:     product.StoreID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Unit:        product.Unit,
		PriceMinor:  product.PriceMinor,
		Quantity:    product.Quantity,
		Images:      images,
		Status:      string(product.Status),
	}
}

func toProductResponses(products []db_models.Product) []response_models.ProductResponse {
	out := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}
