package order

import "warehouse-be/internal/apperror"

var (
	ErrInvalidQuantity   = apperror.Validation("quantity must be a positive integer")
	ErrInvalidStatus     = apperror.Validation("unknown order status")
	ErrInvalidOrderID    = apperror.Validation("order id is required")
	ErrOrderNotFound     = apperror.NotFound("order not found")
	ErrProductNotFound   = apperror.NotFound("product not found")
	ErrUserNotFound      = apperror.NotFound("user not found")
	ErrInsufficientStock = apperror.InsufficientStock("not enough stock for this order")
	ErrNotOrderOwner     = apperror.New(apperror.KindForbidden, "order belongs to another customer")
)
