package history

import "warehouse-be/internal/apperror"

var ErrEmptyDescription = apperror.Validation("history description must not be empty")
