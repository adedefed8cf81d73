package product

import "warehouse-be/internal/apperror"

var (
	ErrMissingFields    = apperror.Validation("name, weight, price and quantity are required")
	ErrInvalidPrice     = apperror.Validation("price must be a non-negative number such as 100.00")
	ErrInvalidQuantity  = apperror.Validation("quantity must be a non-negative integer")
	ErrInvalidProductID = apperror.Validation("product id is required")
	ErrNothingToUpdate  = apperror.Validation("provide at least one field to change")
	ErrProductNotFound  = apperror.NotFound("product not found")
)
