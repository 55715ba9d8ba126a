package utils

import (
	"errors"
	"fmt"
)

var (
	RecordNotFound          = errors.New("record not found")
	ErrDatabaseError        = errors.New("database error")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrForbidden            = errors.New("forbidden")
	ErrStoreExists          = errors.New("store already exists for this account")
	ErrStoreNotActive       = errors.New("store is not active")
	ErrSlotLimitReached     = errors.New("promotion slot limit reached")
	ErrProductLimitReached  = errors.New("product limit for current plan reached")
	ErrSubscriptionNotFound = errors.New("no subscription found")
	ErrSubscriptionInvalid  = errors.New("subscription is not pending")
	ErrInvalidDealWindow    = errors.New("invalid hot deal window")
	ErrInvalidDealPrice     = errors.New("deal price must be below the product price")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
)

// SlotLimitError carries the remaining-slot count back to the API layer.
// Always wraps ErrSlotLimitReached so errors.Is keeps working.
type SlotLimitError struct {
	PromotionType string
	MaxSlots      int
	Remaining     int
}

func (e *SlotLimitError) Error() string {
	return fmt.Sprintf("%s slot limit reached (max %d, remaining %d)", e.PromotionType, e.MaxSlots, e.Remaining)
}

func (e *SlotLimitError) Unwrap() error { return ErrSlotLimitReached }
