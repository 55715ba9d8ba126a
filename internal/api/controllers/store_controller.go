package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petromart/internal/models/request_models"
	"petromart/internal/services"
	"petromart/pkg/utils"
)

type StoreController struct {
	storeService  services.StoreServiceInterface
	reportService services.ReportServiceInterface
}

func NewStoreController(
	storeService services.StoreServiceInterface,
	reportService services.ReportServiceInterface,
) *StoreController {
	return &StoreController{
		storeService:  storeService,
		reportService: reportService,
	}
}

// CreateStore godoc
// @Summary Create the seller's store
// @Description One store per account; new stores start pending verification
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateStoreRequest true "Store payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /seller/store [post]
func (s *StoreController) CreateStore(c *gin.Context) {
	var req request_models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	store, err := s.storeService.CreateStore(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, store, "Store created")
}

// UpdateStore godoc
// @Summary Update the seller's store
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpdateStoreRequest true "Store payload"
// @Success 200 {object} utils.APIResponse
// @Router /seller/store [put]
func (s *StoreController) UpdateStore(c *gin.Context) {
	var req request_models.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	store, err := s.storeService.UpdateStore(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, store, "Store updated")
}

// MyStore godoc
// @Summary The seller's own store
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /seller/store [get]
func (s *StoreController) MyStore(c *gin.Context) {
	store, err := s.storeService.MyStore(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, store, "Store fetched")
}

// SubmitDocument godoc
// @Summary Submit a verification document
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SubmitDocumentRequest true "Document payload"
// @Success 201 {object} utils.APIResponse
// @Router /seller/store/documents [post]
func (s *StoreController) SubmitDocument(c *gin.Context) {
	var req request_models.SubmitDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doc, err := s.storeService.SubmitDocument(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, doc, "Document submitted")
}

// MyDocuments godoc
// @Summary Verification documents for the seller's store
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /seller/store/documents [get]
func (s *StoreController) MyDocuments(c *gin.Context) {
	docs, err := s.storeService.MyDocuments(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, docs, "Documents fetched")
}

// ReportStore godoc
// @Summary Report a store
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.ReportStoreRequest true "Report payload"
// @Success 201 {object} utils.APIResponse
// @Router /reports [post]
func (s *StoreController) ReportStore(c *gin.Context) {
	var req request_models.ReportStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	report, err := s.reportService.ReportStore(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, report, "Report submitted")
}
