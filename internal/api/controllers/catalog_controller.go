package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"petromart/internal/models/response_models"
	"petromart/internal/services"
	"petromart/pkg/utils"
)

// CatalogController serves the unauthenticated storefront: categories,
// product search, store pages, plans and the promoted sections.
type CatalogController struct {
	categoryService  services.CategoryServiceInterface
	productService   services.ProductServiceInterface
	storeService     services.StoreServiceInterface
	planService      services.PlanServiceInterface
	promotionService services.PromotionServiceInterface
}

func NewCatalogController(
	categoryService services.CategoryServiceInterface,
	productService services.ProductServiceInterface,
	storeService services.StoreServiceInterface,
	planService services.PlanServiceInterface,
	promotionService services.PromotionServiceInterface,
) *CatalogController {
	return &CatalogController{
		categoryService:  categoryService,
		productService:   productService,
		storeService:     storeService,
		planService:      planService,
		promotionService: promotionService,
	}
}

// ListCategories godoc
// @Summary List product categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /categories [get]
func (ct *CatalogController) ListCategories(c *gin.Context) {
	categories, err := ct.categoryService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, categories, "Categories fetched")
}

// SearchProducts godoc
// @Summary Search active products
// @Tags Catalog
// @Produce json
// @Param q query string false "Name filter"
// @Param category_id query string false "Category filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /products [get]
func (ct *CatalogController) SearchProducts(c *gin.Context) {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	products, total, err := ct.productService.Search(c.Request.Context(), c.Query("q"), c.Query("category_id"), page, pageSize)
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

// GetProduct godoc
// @Summary Product detail
// @Tags Catalog
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /products/{id} [get]
func (ct *CatalogController) GetProduct(c *gin.Context) {
	product, err := ct.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, product, "Product fetched")
}

// GetStore godoc
// @Summary Store page by slug
// @Tags Catalog
// @Produce json
// @Param slug path string true "Store slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /stores/{slug} [get]
func (ct *CatalogController) GetStore(c *gin.Context) {
	store, err := ct.storeService.GetStoreBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, store, "Store fetched")
}

// ListPlans godoc
// @Summary List subscription plans
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (ct *CatalogController) ListPlans(c *gin.Context) {
	plans, err := ct.planService.ListPlans(c.Request.Context(), false)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans fetched")
}

// FeaturedProducts godoc
// @Summary Currently featured products
// @Tags Catalog
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {object} utils.APIResponse
// @Router /featured [get]
func (ct *CatalogController) FeaturedProducts(c *gin.Context) {
	featured, err := ct.promotionService.PublicFeatured(c.Request.Context(), listLimit(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, featured, "Featured products fetched")
}

// HotDeals godoc
// @Summary Hot deals currently in their window
// @Tags Catalog
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {object} utils.APIResponse
// @Router /hot-deals [get]
func (ct *CatalogController) HotDeals(c *gin.Context) {
	deals, err := ct.promotionService.PublicHotDeals(c.Request.Context(), listLimit(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, deals, "Hot deals fetched")
}

func listLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > maxPageSize {
		return 20
	}
	return limit
}
