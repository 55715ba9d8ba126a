package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/services"
	"petromart/pkg/utils"
)

type ProductController struct {
	productService services.ProductServiceInterface
}

func NewProductController(productService services.ProductServiceInterface) *ProductController {
	return &ProductController{productService: productService}
}

// CreateProduct godoc
// @Summary Create a product
// @Description Rejected when the store has reached its plan's product limit
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateProductRequest true "Product payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /seller/products [post]
func (p *ProductController) CreateProduct(c *gin.Context) {
	var req request_models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := p.productService.CreateProduct(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, product, "Product created")
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id"
// @Param request body request_models.UpdateProductRequest true "Product payload"
// @Success 200 {object} utils.APIResponse
// @Router /seller/products/{id} [put]
func (p *ProductController) UpdateProduct(c *gin.Context) {
	var req request_models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := p.productService.UpdateProduct(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, product, "Product updated")
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id"
// @Success 200 {object} utils.APIResponse
// @Router /seller/products/{id} [delete]
func (p *ProductController) DeleteProduct(c *gin.Context) {
	if err := p.productService.DeleteProduct(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Product deleted")
}

// MyProducts godoc
// @Summary List the seller's products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /seller/products [get]
func (p *ProductController) MyProducts(c *gin.Context) {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	products, total, err := p.productService.MyProducts(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PagedResponse{
		Items:    products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, "Products fetched")
}
