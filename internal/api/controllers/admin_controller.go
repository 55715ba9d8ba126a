package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/services"
	"petromart/pkg/utils"
)

// SweepRunner triggers an immediate expiry sweep, outside the normal tick.
type SweepRunner interface {
	RunOnce(ctx context.Context) error
}

type AdminController struct {
	adminService        services.AdminServiceInterface
	subscriptionService services.SubscriptionServiceInterface
	categoryService     services.CategoryServiceInterface
	planService         services.PlanServiceInterface
	reportService       services.ReportServiceInterface
	sweeper             SweepRunner
}

func NewAdminController(
	adminService services.AdminServiceInterface,
	subscriptionService services.SubscriptionServiceInterface,
	categoryService services.CategoryServiceInterface,
	planService services.PlanServiceInterface,
	reportService services.ReportServiceInterface,
	sweeper SweepRunner,
) *AdminController {
	return &AdminController{
		adminService:        adminService,
		subscriptionService: subscriptionService,
		categoryService:     categoryService,
		planService:         planService,
		reportService:       reportService,
		sweeper:             sweeper,
	}
}

// PendingSubscriptions godoc
// @Summary Subscriptions awaiting review
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/subscriptions/pending [get]
func (a *AdminController) PendingSubscriptions(c *gin.Context) {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	subs, total, err := a.subscriptionService.ListPending(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PagedResponse{
		Items:    subs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, "Pending subscriptions fetched")
}

// ApproveSubscription godoc
// @Summary Approve a pending subscription
// @Description Activates the subscription and starts its period now
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/subscriptions/{id}/approve [post]
func (a *AdminController) ApproveSubscription(c *gin.Context) {
	sub, err := a.subscriptionService.Approve(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Subscription approved")
}

// RejectSubscription godoc
// @Summary Reject a pending subscription
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/subscriptions/{id}/reject [post]
func (a *AdminController) RejectSubscription(c *gin.Context) {
	if err := a.subscriptionService.Reject(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Subscription rejected")
}

// ListStores godoc
// @Summary List all stores
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/stores [get]
func (a *AdminController) ListStores(c *gin.Context) {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	stores, total, err := a.adminService.ListStores(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PagedResponse{
		Items:    stores,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, "Stores fetched")
}

// ReviewDocument godoc
// @Summary Approve or reject a verification document
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document id"
// @Param request body request_models.ReviewDocumentRequest true "Review payload"
// @Success 200 {object} utils.APIResponse
// @Router /admin/documents/{id}/review [post]
func (a *AdminController) ReviewDocument(c *gin.Context) {
	var req request_models.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.adminService.ReviewDocument(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Document reviewed")
}

// SuspendStore godoc
// @Summary Suspend a store
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/stores/{id}/suspend [post]
func (a *AdminController) SuspendStore(c *gin.Context) {
	if err := a.adminService.SuspendStore(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Store suspended")
}

// ReactivateStore godoc
// @Summary Reactivate a suspended store
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/stores/{id}/reactivate [post]
func (a *AdminController) ReactivateStore(c *gin.Context) {
	if err := a.adminService.ReactivateStore(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Store reactivated")
}

// OpenReports godoc
// @Summary Open store reports
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/reports [get]
func (a *AdminController) OpenReports(c *gin.Context) {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	reports, total, err := a.reportService.ListOpenReports(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PagedResponse{
		Items:    reports,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, "Reports fetched")
}

// ResolveReport godoc
// @Summary Resolve or dismiss a store report
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report id"
// @Param request body request_models.ResolveReportRequest true "Resolution payload"
// @Success 200 {object} utils.APIResponse
// @Router /admin/reports/{id}/resolve [post]
func (a *AdminController) ResolveReport(c *gin.Context) {
	var req request_models.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.reportService.ResolveReport(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Report resolved")
}

// CreateCategory godoc
// @Summary Create a product category
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CategoryRequest true "Category payload"
// @Success 201 {object} utils.APIResponse
// @Router /admin/categories [post]
func (a *AdminController) CreateCategory(c *gin.Context) {
	var req request_models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := a.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, category, "Category created")
}

// UpdateCategory godoc
// @Summary Update a product category
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Param request body request_models.CategoryRequest true "Category payload"
// @Success 200 {object} utils.APIResponse
// @Router /admin/categories/{id} [put]
func (a *AdminController) UpdateCategory(c *gin.Context) {
	var req request_models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := a.categoryService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, category, "Category updated")
}

// DeleteCategory godoc
// @Summary Delete a product category
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/categories/{id} [delete]
func (a *AdminController) DeleteCategory(c *gin.Context) {
	if err := a.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Category deleted")
}

// UpsertPlan godoc
// @Summary Create or update a subscription plan tier
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpsertPlanRequest true "Plan payload"
// @Success 200 {object} utils.APIResponse
// @Router /admin/plans [put]
func (a *AdminController) UpsertPlan(c *gin.Context) {
	var req request_models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := a.planService.UpsertPlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Plan saved")
}

// AuditLog godoc
// @Summary Admin action audit trail
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/audit-log [get]
func (a *AdminController) AuditLog(c *gin.Context) {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	entries, total, err := a.adminService.ListAuditLog(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.PagedResponse{
		Items:    entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, "Audit log fetched")
}

// RunSweep godoc
// @Summary Trigger an expiry sweep immediately
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /admin/sweeps/run [post]
func (a *AdminController) RunSweep(c *gin.Context) {
	if err := a.sweeper.RunOnce(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Sweep completed")
}
