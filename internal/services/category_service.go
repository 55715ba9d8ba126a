package services

import (
	"context"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

type CategoryServiceInterface interface {
	List(ctx context.Context) ([]response_models.CategoryResponse, error)
	Create(ctx context.Context, req request_models.CategoryRequest) (response_models.CategoryResponse, error)
	Update(ctx context.Context, id string, req request_models.CategoryRequest) (response_models.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService struct {
	categoryRepo repositories.ICategoryRepository
}

func NewCategoryService(categoryRepo repositories.ICategoryRepository) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]response_models.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, req request_models.CategoryRequest) (response_models.CategoryResponse, error) {
	category := &db_models.Category{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return response_models.CategoryResponse{}, utils.ErrDatabaseError
	}
	return toCategoryResponse(category), nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req request_models.CategoryRequest) (response_models.CategoryResponse, error) {
	categoryID, err := parseUUID(id)
	if err != nil {
		return response_models.CategoryResponse{}, utils.RecordNotFound
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return response_models.CategoryResponse{}, utils.ErrDatabaseError
	}
	if category == nil {
		return response_models.CategoryResponse{}, utils.RecordNotFound
	}

	category.Name = req.Name
	category.Slug = utils.Slugify(req.Name)
	category.Description = req.Description
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return response_models.CategoryResponse{}, utils.ErrDatabaseError
	}
	return toCategoryResponse(category), nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	categoryID, err := parseUUID(id)
	if err != nil {
		return utils.RecordNotFound
	}
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toCategoryResponse(category *db_models.Category) response_models.CategoryResponse {
	return response_models.CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		Slug:          category.Slug,
		Description:   category.Description,
		TotalProducts: category.TotalProducts,
	}
}
