package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respondErrorData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError maps service-layer sentinels onto HTTP responses.
// Anything unrecognized becomes a 500 without leaking internals.
func HandleServiceError(c *gin.Context, err error) {
	var slotErr *SlotLimitError
	switch {
	case errors.As(err, &slotErr):
		respondErrorData(c, http.StatusConflict, "Promotion slot limit reached", gin.H{
			"promotion_type":  slotErr.PromotionType,
			"max_slots":       slotErr.MaxSlots,
			"remaining_slots": slotErr.Remaining,
		})
	case errors.Is(err, RecordNotFound):
		RespondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, ErrSubscriptionNotFound):
		RespondError(c, http.StatusNotFound, "No subscription found")
	case errors.Is(err, ErrEmailTaken):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrStoreExists):
		RespondError(c, http.StatusConflict, "Store already exists for this account")
	case errors.Is(err, ErrProductLimitReached):
		RespondError(c, http.StatusConflict, "Product limit for current plan reached")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrStoreNotActive):
		RespondError(c, http.StatusUnprocessableEntity, "Store is not active")
	case errors.Is(err, ErrSubscriptionInvalid):
		RespondError(c, http.StatusUnprocessableEntity, "Subscription is not pending")
	case errors.Is(err, ErrInvalidDealWindow):
		RespondError(c, http.StatusBadRequest, "Invalid hot deal window")
	case errors.Is(err, ErrInvalidDealPrice):
		RespondError(c, http.StatusBadRequest, "Deal price must be below the product price")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
