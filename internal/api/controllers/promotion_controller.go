package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petromart/internal/models/request_models"
	"petromart/internal/services"
	"petromart/pkg/utils"
)

type PromotionController struct {
	promotionService services.PromotionServiceInterface
}

func NewPromotionController(promotionService services.PromotionServiceInterface) *PromotionController {
	return &PromotionController{promotionService: promotionService}
}

// FeatureProduct godoc
// @Summary Feature a product on the storefront
// @Description Consumes one featured slot on the current subscription
// @Tags Promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.FeatureProductRequest true "Product selection"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Slot limit reached"
// @Router /seller/promotions/featured [post]
func (p *PromotionController) FeatureProduct(c *gin.Context) {
	var req request_models.FeatureProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	featured, err := p.promotionService.FeatureProduct(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, featured, "Product featured")
}

// CreateHotDeal godoc
// @Summary Create a time-boxed hot deal
// @Description Consumes one hot deal slot on the current subscription
// @Tags Promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateHotDealRequest true "Deal payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Slot limit reached"
// @Router /seller/promotions/hot-deals [post]
func (p *PromotionController) CreateHotDeal(c *gin.Context) {
	var req request_models.CreateHotDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	deal, err := p.promotionService.CreateHotDeal(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, deal, "Hot deal created")
}

// MyPromotions godoc
// @Summary The seller's promotions with remaining slots
// @Tags Promotions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /seller/promotions [get]
func (p *PromotionController) MyPromotions(c *gin.Context) {
	promotions, err := p.promotionService.MyPromotions(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, promotions, "Promotions fetched")
}
