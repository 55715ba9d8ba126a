package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petromart/internal/models/request_models"
	"petromart/internal/services"
	"petromart/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// Subscribe godoc
// @Summary Request a paid subscription
// @Description Creates a pending subscription awaiting admin approval
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SubscribeRequest true "Plan selection"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /seller/subscriptions [post]
func (s *SubscriptionController) Subscribe(c *gin.Context) {
	var req request_models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	sub, err := s.subscriptionService.Subscribe(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, sub, "Subscription requested")
}

// MySubscription godoc
// @Summary The seller's latest subscription with slot usage
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /seller/subscriptions/current [get]
func (s *SubscriptionController) MySubscription(c *gin.Context) {
	sub, err := s.subscriptionService.MySubscription(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Subscription fetched")
}
